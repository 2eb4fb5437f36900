// Package memory provides an in-process implementation of the repository
// ports. It backs the "memory" store driver and keeps tests free of disk
// state. Semantics mirror the sqlite adapter: no cascading deletes, and
// dangling references resolve to empty display names.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
	"github.com/rgould/sprintdeck/internal/repository"
)

// Store holds all collections behind one lock.
type Store struct {
	mu       sync.RWMutex
	projects map[string]project.Project
	sprints  map[string]sprint.Sprint
	tasks    map[string]task.Task

	// seq orders entities with identical creation times deterministically.
	seq     map[string]int64
	nextSeq int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		projects: make(map[string]project.Project),
		sprints:  make(map[string]sprint.Sprint),
		tasks:    make(map[string]task.Task),
		seq:      make(map[string]int64),
	}
}

// Ping reports store health. It always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) claimSeq(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

// Projects returns the project repository over this store.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{store: s} }

// Sprints returns the sprint repository over this store.
func (s *Store) Sprints() *SprintRepository { return &SprintRepository{store: s} }

// Tasks returns the task repository over this store.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{store: s} }

// ProjectRepository implements repository.ProjectRepository in memory.
type ProjectRepository struct {
	store *Store
}

func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.projects[proj.ID] = *proj
	r.store.claimSeq(proj.ID)
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	proj, ok := r.store.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &proj, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var projects []project.Project
	for _, proj := range r.store.projects {
		projects = append(projects, proj)
	}
	sort.Slice(projects, func(i, j int) bool {
		return r.store.seq[projects[i].ID] < r.store.seq[projects[j].ID]
	})
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.projects[proj.ID]; !ok {
		return repository.ErrNotFound
	}
	r.store.projects[proj.ID] = *proj
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.projects, id)
	return nil
}

// SprintRepository implements repository.SprintRepository in memory.
type SprintRepository struct {
	store *Store
}

func (r *SprintRepository) Create(ctx context.Context, spr *sprint.Sprint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sprints[spr.ID] = *spr
	r.store.claimSeq(spr.ID)
	return nil
}

func (r *SprintRepository) Get(ctx context.Context, id string) (*sprint.View, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	spr, ok := r.store.sprints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	view := r.store.sprintView(spr)
	return &view, nil
}

func (r *SprintRepository) List(ctx context.Context, projectID string) ([]sprint.View, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var views []sprint.View
	for _, spr := range r.store.sprints {
		if projectID != "" && spr.ProjectID != projectID {
			continue
		}
		views = append(views, r.store.sprintView(spr))
	}
	sort.Slice(views, func(i, j int) bool {
		if !views[i].StartDate.Equal(views[j].StartDate) {
			return views[i].StartDate.Before(views[j].StartDate)
		}
		return r.store.seq[views[i].ID] < r.store.seq[views[j].ID]
	})
	return views, nil
}

func (r *SprintRepository) Update(ctx context.Context, spr *sprint.Sprint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sprints[spr.ID]; !ok {
		return repository.ErrNotFound
	}
	r.store.sprints[spr.ID] = *spr
	return nil
}

func (r *SprintRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sprints[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.sprints, id)
	return nil
}

func (s *Store) sprintView(spr sprint.Sprint) sprint.View {
	view := sprint.View{Sprint: spr}
	if proj, ok := s.projects[spr.ProjectID]; ok {
		view.ProjectName = proj.Name
	}
	for _, tsk := range s.tasks {
		if tsk.SprintID != nil && *tsk.SprintID == spr.ID {
			view.TaskCount++
		}
	}
	return view
}

// TaskRepository implements repository.TaskRepository in memory.
type TaskRepository struct {
	store *Store
}

func (r *TaskRepository) Create(ctx context.Context, tsk *task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tasks[tsk.ID] = *tsk
	r.store.claimSeq(tsk.ID)
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*task.View, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tsk, ok := r.store.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	view := r.store.taskView(tsk)
	return &view, nil
}

func (r *TaskRepository) List(ctx context.Context, filter task.Filter) ([]task.View, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var views []task.View
	for _, tsk := range r.store.tasks {
		if filter.ProjectID != "" && tsk.ProjectID != filter.ProjectID {
			continue
		}
		if filter.SprintID != "" && (tsk.SprintID == nil || *tsk.SprintID != filter.SprintID) {
			continue
		}
		if filter.Status != nil && tsk.Status != *filter.Status {
			continue
		}
		views = append(views, r.store.taskView(tsk))
	}
	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		return r.store.seq[views[i].ID] < r.store.seq[views[j].ID]
	})
	return views, nil
}

func (r *TaskRepository) Update(ctx context.Context, tsk *task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tasks[tsk.ID]; !ok {
		return repository.ErrNotFound
	}
	r.store.tasks[tsk.ID] = *tsk
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.tasks, id)
	return nil
}

func (s *Store) taskView(tsk task.Task) task.View {
	view := task.View{Task: tsk}
	if tsk.SprintID != nil {
		sprintID := *tsk.SprintID
		view.SprintID = &sprintID
		if spr, ok := s.sprints[sprintID]; ok {
			view.SprintName = spr.Name
		}
	}
	if proj, ok := s.projects[tsk.ProjectID]; ok {
		view.ProjectName = proj.Name
	}
	return view
}
