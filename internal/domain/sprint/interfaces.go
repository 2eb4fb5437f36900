package sprint

import (
	"context"

	"github.com/rgould/sprintdeck/internal/domain/project"
)

// Repository provides persistence for sprints.
type Repository interface {
	Create(ctx context.Context, spr *Sprint) error
	Get(ctx context.Context, id string) (*View, error)
	List(ctx context.Context, projectID string) ([]View, error)
	Update(ctx context.Context, spr *Sprint) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository resolves project references.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
