package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rgould/sprintdeck/internal/domain/task"
	"github.com/rgould/sprintdeck/internal/repository"
)

func newTask(id, projectID string, sprintID *string, status task.Status, created time.Time) *task.Task {
	return &task.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    status,
		Priority:  task.PriorityMedium,
		ProjectID: projectID,
		SprintID:  sprintID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	sprintRepo := NewSprintRepository(db)
	require.NoError(t, sprintRepo.Create(ctx, newSprint("s1", "p1", time.Now())))

	sprintID := "s1"
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", &sprintID, task.StatusTodo, time.Now())))

	view, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Alpha", view.ProjectName)
	require.Equal(t, "Sprint s1", view.SprintName)
	require.Equal(t, task.StatusTodo, view.Status)
	require.NotNil(t, view.SprintID)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_BacklogTaskHasNoSprint(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", nil, task.StatusBacklog, time.Now())))

	view, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, view.SprintID)
	require.Empty(t, view.SprintName)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	seedProject(t, db, "p2", "Beta")
	sprintRepo := NewSprintRepository(db)
	require.NoError(t, sprintRepo.Create(ctx, newSprint("s1", "p1", time.Now())))

	base := time.Now()
	sprintID := "s1"
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", &sprintID, task.StatusTodo, base)))
	require.NoError(t, repo.Create(ctx, newTask("t2", "p1", &sprintID, task.StatusDone, base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, newTask("t3", "p1", nil, task.StatusBacklog, base.Add(2*time.Second))))
	require.NoError(t, repo.Create(ctx, newTask("t4", "p2", nil, task.StatusBacklog, base.Add(3*time.Second))))

	all, err := repo.List(ctx, task.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "t1", all[0].ID, "ordered by creation time ascending")

	byProject, err := repo.List(ctx, task.Filter{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, byProject, 3)

	bySprint, err := repo.List(ctx, task.Filter{SprintID: "s1"})
	require.NoError(t, err)
	require.Len(t, bySprint, 2)

	done := task.StatusDone
	byStatus, err := repo.List(ctx, task.Filter{Status: &done})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, "t2", byStatus[0].ID)

	backlog := task.StatusBacklog
	backlogP2, err := repo.List(ctx, task.Filter{ProjectID: "p2", Status: &backlog})
	require.NoError(t, err)
	require.Len(t, backlogP2, 1)
	require.Equal(t, "t4", backlogP2[0].ID)

	unknown, err := repo.List(ctx, task.Filter{ProjectID: "nonexistent"})
	require.NoError(t, err)
	require.Empty(t, unknown)
}

func TestTaskRepository_UpdateTransitionIsAtomic(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	sprintID := "s1"
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", &sprintID, task.StatusTodo, time.Now())))

	view, err := repo.Get(ctx, "t1")
	require.NoError(t, err)

	updated := view.Task
	updated.Status = task.StatusBacklog
	updated.SprintID = nil
	updated.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, &updated))

	after, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, task.StatusBacklog, after.Status)
	require.Nil(t, after.SprintID)

	require.ErrorIs(t, repo.Update(ctx, newTask("missing", "p1", nil, task.StatusBacklog, time.Now())), repository.ErrNotFound)
}

// Deleting a sprint leaves its tasks fetchable with an unresolved sprint
// reference.
func TestTaskRepository_SprintDeleteLeavesDanglingReference(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	sprintRepo := NewSprintRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	require.NoError(t, sprintRepo.Create(ctx, newSprint("s1", "p1", time.Now())))
	sprintID := "s1"
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", &sprintID, task.StatusTodo, time.Now())))

	require.NoError(t, sprintRepo.Delete(ctx, "s1"))

	view, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, view.SprintID)
	require.Equal(t, "s1", *view.SprintID)
	require.Empty(t, view.SprintName)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedProject(t, db, "p1", "Alpha")
	require.NoError(t, repo.Create(ctx, newTask("t1", "p1", nil, task.StatusBacklog, time.Now())))
	require.NoError(t, repo.Delete(ctx, "t1"))

	_, err := repo.Get(ctx, "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "t1"), repository.ErrNotFound)
}
