package repository

import (
	"context"

	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
)

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
}

// SprintRepository manages sprint persistence
type SprintRepository interface {
	Create(ctx context.Context, spr *sprint.Sprint) error
	Get(ctx context.Context, id string) (*sprint.View, error)
	List(ctx context.Context, projectID string) ([]sprint.View, error)
	Update(ctx context.Context, spr *sprint.Sprint) error
	Delete(ctx context.Context, id string) error
}

// TaskRepository manages task persistence. Reads resolve project and
// sprint display names lazily; a dangling reference resolves to an empty
// name, never an error.
type TaskRepository interface {
	Create(ctx context.Context, tsk *task.Task) error
	Get(ctx context.Context, id string) (*task.View, error)
	List(ctx context.Context, filter task.Filter) ([]task.View, error)
	Update(ctx context.Context, tsk *task.Task) error
	Delete(ctx context.Context, id string) error
}
