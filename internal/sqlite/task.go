package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgould/sprintdeck/internal/domain/task"
	"github.com/rgould/sprintdeck/internal/repository"
)

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, tsk *task.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, assignee, project_id, sprint_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tsk.ID,
		tsk.Title,
		tsk.Description,
		tsk.Status,
		tsk.Priority,
		tsk.Assignee,
		tsk.ProjectID,
		tsk.SprintID,
		tsk.CreatedAt,
		tsk.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

const taskViewQuery = `
	SELECT
		t.id, t.title, t.description, t.status, t.priority, t.assignee,
		t.project_id, t.sprint_id, t.created_at, t.updated_at,
		COALESCE(p.name, '') as project_name,
		COALESCE(s.name, '') as sprint_name
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN sprints s ON s.id = t.sprint_id
`

func scanTaskView(scan func(dest ...any) error) (*task.View, error) {
	var view task.View
	var sprintID sql.NullString
	err := scan(
		&view.ID,
		&view.Title,
		&view.Description,
		&view.Status,
		&view.Priority,
		&view.Assignee,
		&view.ProjectID,
		&sprintID,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.ProjectName,
		&view.SprintName,
	)
	if err != nil {
		return nil, err
	}
	if sprintID.Valid {
		view.SprintID = &sprintID.String
	}
	return &view, nil
}

// Get retrieves a task by ID with project and sprint names resolved
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.View, error) {
	query := taskViewQuery + ` WHERE t.id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	view, err := scanTaskView(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return view, nil
}

// List returns denormalized task views matching the filter, ordered by
// creation time ascending
func (r *TaskRepository) List(ctx context.Context, filter task.Filter) ([]task.View, error) {
	query := taskViewQuery

	args := []any{}
	conditions := []string{}

	if filter.ProjectID != "" {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.SprintID != "" {
		conditions = append(conditions, "t.sprint_id = ?")
		args = append(args, filter.SprintID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "t.status = ?")
		args = append(args, *filter.Status)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY t.created_at ASC, t.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var views []task.View
	for rows.Next() {
		view, err := scanTaskView(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		views = append(views, *view)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return views, nil
}

// Update replaces a task document. Status and sprint land in the same
// write, so a transition is atomic at the store level.
func (r *TaskRepository) Update(ctx context.Context, tsk *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, assignee = ?, sprint_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		tsk.Title,
		tsk.Description,
		tsk.Status,
		tsk.Priority,
		tsk.Assignee,
		tsk.SprintID,
		tsk.UpdatedAt,
		tsk.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
