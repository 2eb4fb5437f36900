package sprint

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

// Service handles sprint operations.
type Service struct {
	repo     Repository
	projects ProjectRepository
	logger   *slog.Logger
}

// NewService creates a new sprint service.
func NewService(repo Repository, projects ProjectRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

// CreateRequest defines sprint creation inputs.
type CreateRequest struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	ProjectID string
}

// UpdateRequest replaces a sprint document. Updates are full-replace style,
// matching how sprint edits arrive from the client.
type UpdateRequest struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	ProjectID string
}

// Create creates a new sprint after validating its dates and project
// reference.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Sprint, error) {
	if err := s.validate(ctx, req.Name, req.StartDate, req.EndDate, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	spr := &Sprint{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
		ProjectID: req.ProjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, spr); err != nil {
		return nil, fmt.Errorf("creating sprint: %w", err)
	}

	return spr, nil
}

// Get fetches a sprint by ID with its project denormalized.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	view, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, fmt.Errorf("getting sprint: %w", err)
	}
	return view, nil
}

// List returns sprints, optionally filtered by project. An unknown project
// ID yields an empty list, not an error.
func (s *Service) List(ctx context.Context, projectID string) ([]View, error) {
	return s.repo.List(ctx, projectID)
}

// Update replaces the sprint document.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Sprint, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, req.Name, req.StartDate, req.EndDate, req.ProjectID); err != nil {
		return nil, err
	}

	updated := &Sprint{
		ID:        req.ID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
		ProjectID: req.ProjectID,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, fmt.Errorf("updating sprint: %w", err)
	}

	return updated, nil
}

// Delete removes a sprint. Tasks assigned to it survive with a dangling
// sprint reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrSprintNotFound
		}
		return fmt.Errorf("deleting sprint: %w", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, name string, start, end time.Time, projectID string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(projectID) == "" {
		return ErrInvalidInput
	}
	if start.IsZero() || end.IsZero() {
		return ErrInvalidInput
	}
	if end.Before(start) {
		return ErrInvalidDates
	}

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrUnknownProject
		}
		return fmt.Errorf("resolving project: %w", err)
	}

	return nil
}
