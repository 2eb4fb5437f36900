package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SprintRepository is a mock for repository.SprintRepository.
type SprintRepository struct {
	mock.Mock
}

func (m *SprintRepository) Create(ctx context.Context, spr *sprint.Sprint) error {
	args := m.Called(ctx, spr)
	return args.Error(0)
}

func (m *SprintRepository) Get(ctx context.Context, id string) (*sprint.View, error) {
	args := m.Called(ctx, id)
	if view, ok := args.Get(0).(*sprint.View); ok {
		return view, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SprintRepository) List(ctx context.Context, projectID string) ([]sprint.View, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]sprint.View); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SprintRepository) Update(ctx context.Context, spr *sprint.Sprint) error {
	args := m.Called(ctx, spr)
	return args.Error(0)
}

func (m *SprintRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, tsk *task.Task) error {
	args := m.Called(ctx, tsk)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.View, error) {
	args := m.Called(ctx, id)
	if view, ok := args.Get(0).(*task.View); ok {
		return view, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, filter task.Filter) ([]task.View, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]task.View); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, tsk *task.Task) error {
	args := m.Called(ctx, tsk)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
