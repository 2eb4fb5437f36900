// Package board holds the client-side view-model for a sprint's kanban
// board: a flat task list partitioned into fixed status columns, with
// drag-and-drop moves applied optimistically and reverted when the server
// rejects them.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rgould/sprintdeck/internal/domain/task"
)

var (
	// ErrTaskNotOnBoard indicates the task is not in any column.
	ErrTaskNotOnBoard = errors.New("task not on board")
	// ErrMovePending indicates the task already has an unresolved move.
	ErrMovePending = errors.New("task has a pending move")
	// ErrInvalidColumn indicates the destination status is not a board
	// column.
	ErrInvalidColumn = errors.New("destination is not a board column")
)

// API is the server surface the board depends on.
type API interface {
	// SprintTasks returns the authoritative task list for a sprint.
	SprintTasks(ctx context.Context, sprintID string) ([]task.View, error)
	// Transition asks the server to move a task to a new status.
	Transition(ctx context.Context, taskID string, status task.Status, sprintID *string) (*task.View, error)
}

// Column is one status lane of the board.
type Column struct {
	Status task.Status
	Tasks  []task.View
}

// Board partitions a sprint's tasks into status columns. All methods are
// safe for concurrent use; the UI may run one Move per drag gesture in its
// own goroutine.
type Board struct {
	mu       sync.Mutex
	api      API
	sprintID string
	logger   *slog.Logger

	columns map[task.Status][]task.View
	// pending holds task IDs with an unresolved transition request. A
	// second drag on such a card is rejected instead of racing the first.
	pending map[string]struct{}
}

// New creates a board for one sprint. Call Load before rendering.
func New(api API, sprintID string, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		api:      api,
		sprintID: sprintID,
		logger:   logger,
		columns:  make(map[task.Status][]task.View),
		pending:  make(map[string]struct{}),
	}
}

// Load fetches the sprint's tasks and replaces all column contents.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.SprintTasks(ctx, b.sprintID)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}

	b.mu.Lock()
	b.columns = partition(tasks)
	b.mu.Unlock()
	return nil
}

// Columns returns a snapshot of the board in display order.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make([]Column, 0, len(task.BoardStatuses))
	for _, status := range task.BoardStatuses {
		tasks := make([]task.View, len(b.columns[status]))
		copy(tasks, b.columns[status])
		cols = append(cols, Column{Status: status, Tasks: tasks})
	}
	return cols
}

// Pending reports whether a task has an unresolved move.
func (b *Board) Pending(taskID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[taskID]
	return ok
}

// Move handles a drop of taskID into the column for `to` at `position`.
//
// A drop within the source column reorders locally and never calls the
// server; column ordering is not durable. A drop into another column is
// applied optimistically, then confirmed with a transition request. On
// failure the optimistic state is discarded and the authoritative list is
// re-fetched.
func (b *Board) Move(ctx context.Context, taskID string, to task.Status, position int) error {
	if !isBoardStatus(to) {
		return ErrInvalidColumn
	}

	b.mu.Lock()
	if _, exists := b.pending[taskID]; exists {
		b.mu.Unlock()
		return ErrMovePending
	}

	from, index, ok := b.locate(taskID)
	if !ok {
		b.mu.Unlock()
		return ErrTaskNotOnBoard
	}

	if from == to {
		defer b.mu.Unlock()
		position = clamp(position, len(b.columns[from])-1)
		if position == index {
			return nil
		}
		col := b.columns[from]
		moved := col[index]
		col = append(col[:index], col[index+1:]...)
		col = append(col[:position], append([]task.View{moved}, col[position:]...)...)
		b.columns[from] = col
		return nil
	}

	// Optimistic cross-column move: mutate locally first, then confirm.
	snapshot := b.snapshot()
	moved := b.columns[from][index]
	moved.Status = to
	b.columns[from] = append(b.columns[from][:index], b.columns[from][index+1:]...)
	dest := b.columns[to]
	position = clamp(position, len(dest))
	dest = append(dest[:position], append([]task.View{moved}, dest[position:]...)...)
	b.columns[to] = dest
	b.pending[taskID] = struct{}{}
	b.mu.Unlock()

	updated, err := b.api.Transition(ctx, taskID, to, nil)
	if err != nil {
		b.logger.Warn("move rejected, reverting", "task", taskID, "status", to, "error", err)
		b.revert(ctx, taskID, snapshot)
		return fmt.Errorf("moving task %s: %w", taskID, err)
	}

	b.mu.Lock()
	delete(b.pending, taskID)
	if col, i, ok := b.locate(taskID); ok {
		// The transition response carries the bare task; keep the
		// display names the card already shows.
		view := b.columns[col][i]
		view.Task = updated.Task
		b.columns[col][i] = view
	}
	b.mu.Unlock()
	return nil
}

// revert discards the optimistic mutation after a failed transition. The
// authoritative list is preferred; if the re-fetch also fails, the
// pre-move snapshot is restored so the board never shows the unconfirmed
// state.
func (b *Board) revert(ctx context.Context, taskID string, snapshot map[task.Status][]task.View) {
	tasks, err := b.api.SprintTasks(ctx, b.sprintID)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, taskID)
	if err != nil {
		b.logger.Warn("refetch after failed move also failed", "error", err)
		b.columns = snapshot
		return
	}
	b.columns = partition(tasks)
}

// locate finds a task's column and index. Caller holds the lock.
func (b *Board) locate(taskID string) (task.Status, int, bool) {
	for _, status := range task.BoardStatuses {
		for i, tsk := range b.columns[status] {
			if tsk.ID == taskID {
				return status, i, true
			}
		}
	}
	return "", 0, false
}

// snapshot deep-copies the columns. Caller holds the lock.
func (b *Board) snapshot() map[task.Status][]task.View {
	snap := make(map[task.Status][]task.View, len(b.columns))
	for status, col := range b.columns {
		tasks := make([]task.View, len(col))
		copy(tasks, col)
		snap[status] = tasks
	}
	return snap
}

func partition(tasks []task.View) map[task.Status][]task.View {
	columns := make(map[task.Status][]task.View)
	for _, tsk := range tasks {
		if !isBoardStatus(tsk.Status) {
			continue
		}
		columns[tsk.Status] = append(columns[tsk.Status], tsk)
	}
	return columns
}

func isBoardStatus(status task.Status) bool {
	for _, s := range task.BoardStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func clamp(position, max int) int {
	if position < 0 {
		return 0
	}
	if position > max {
		return max
	}
	return position
}
