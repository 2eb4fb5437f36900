package task

import (
	"context"

	"github.com/rgould/sprintdeck/internal/domain/project"
)

// Repository provides persistence for tasks. Get and List return views
// with project and sprint names resolved lazily at read time.
type Repository interface {
	Create(ctx context.Context, tsk *Task) error
	Get(ctx context.Context, id string) (*View, error)
	List(ctx context.Context, filter Filter) ([]View, error)
	Update(ctx context.Context, tsk *Task) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository resolves project references.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
