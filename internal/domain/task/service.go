package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rgould/sprintdeck/internal/repository/repoerr"
)

// Service handles task queries and status transitions.
type Service struct {
	tasks    Repository
	projects ProjectRepository
	logger   *slog.Logger
}

// NewService creates a new task service.
func NewService(tasks Repository, projects ProjectRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tasks: tasks, projects: projects, logger: logger}
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Assignee    string
	ProjectID   string
	SprintID    *string
}

// UpdateRequest describes a partial task update. Nil fields are left
// unchanged. Status and SprintID together drive the transition rules.
type UpdateRequest struct {
	ID          string
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Assignee    *string
	SprintID    *string
}

// TransitionRequest describes a status change, optionally carrying the
// destination sprint for moves out of the backlog.
type TransitionRequest struct {
	ID       string
	Status   Status
	SprintID *string
}

// Create creates a new task with validation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.projects.Get(ctx, req.ProjectID); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrUnknownProject
		}
		return nil, fmt.Errorf("resolving project: %w", err)
	}

	status := req.Status
	if status == "" {
		status = StatusBacklog
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	tsk := &Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Assignee:    req.Assignee,
		ProjectID:   req.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := applyStatus(tsk, status, req.SprintID); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, tsk); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return tsk, nil
}

// Get returns a task by ID with its references resolved.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	view, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return view, nil
}

// List returns denormalized task views matching the filter, ordered by
// creation time ascending. Unknown project or sprint IDs yield an empty
// result rather than an error.
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	if filter.BacklogOnly {
		if filter.Status != nil {
			return nil, ErrConflictingFilter
		}
		backlog := StatusBacklog
		filter.Status = &backlog
	}
	return s.tasks.List(ctx, filter)
}

// Update applies the non-nil fields of req to an existing task. A status
// change goes through the same rules as Transition: moving to Backlog
// clears the sprint, moving out of it requires one.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Task, error) {
	view, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := view.Task
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	if req.Assignee != nil {
		updated.Assignee = *req.Assignee
	}

	status := updated.Status
	if req.Status != nil {
		status = *req.Status
	}
	if err := applyStatus(&updated, status, req.SprintID); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &updated); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return &updated, nil
}

// Transition atomically updates a task's status and sprint fields in a
// single write.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (*Task, error) {
	view, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := view.Task
	if err := applyStatus(&updated, req.Status, req.SprintID); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &updated); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("transitioning task: %w", err)
	}

	s.logger.Debug("task transitioned",
		"task", updated.ID, "status", updated.Status)

	return &updated, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// applyStatus sets the status and sprint fields together. Backlog tasks
// carry no sprint; every other status requires one. No transition graph
// restricts which status may follow which.
func applyStatus(tsk *Task, status Status, sprintID *string) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}

	if status == StatusBacklog {
		tsk.Status = status
		tsk.SprintID = nil
		return nil
	}

	if sprintID != nil && *sprintID != "" {
		tsk.SprintID = sprintID
	}
	if tsk.SprintID == nil || *tsk.SprintID == "" {
		return ErrSprintRequired
	}
	tsk.Status = status
	return nil
}
