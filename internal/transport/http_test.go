package transport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
	"github.com/rgould/sprintdeck/internal/memory"
	"github.com/rgould/sprintdeck/internal/transport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := transport.NewServer(
		project.NewService(store.Projects(), logger),
		sprint.NewService(store.Sprints(), store.Projects(), logger),
		task.NewService(store.Tasks(), store.Projects(), logger),
		logger,
	)

	ts := httptest.NewServer(srv.Router(transport.RouterConfig{Ping: store.Ping}))
	t.Cleanup(ts.Close)
	return ts
}

// do sends a JSON request and decodes the response body into out when it
// is non-nil.
func do(t *testing.T, ts *httptest.Server, method, path string, body, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createProject(t *testing.T, ts *httptest.Server, name string) project.Project {
	t.Helper()
	var proj project.Project
	status := do(t, ts, http.MethodPost, "/api/projects", map[string]string{"name": name}, &proj)
	require.Equal(t, http.StatusCreated, status)
	return proj
}

func createSprint(t *testing.T, ts *httptest.Server, name, projectID string) sprint.Sprint {
	t.Helper()
	var spr sprint.Sprint
	status := do(t, ts, http.MethodPost, "/api/sprints", map[string]any{
		"name":      name,
		"startDate": "2024-01-01",
		"endDate":   "2024-01-14",
		"project":   projectID,
	}, &spr)
	require.Equal(t, http.StatusCreated, status)
	return spr
}

func createTask(t *testing.T, ts *httptest.Server, body map[string]any) task.Task {
	t.Helper()
	var tsk task.Task
	status := do(t, ts, http.MethodPost, "/api/tasks", body, &tsk)
	require.Equal(t, http.StatusCreated, status)
	return tsk
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	status := do(t, ts, http.MethodGet, "/healthz", nil, &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestProjectCRUD(t *testing.T) {
	ts := newTestServer(t)

	proj := createProject(t, ts, "Alpha")
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Alpha", proj.Name)

	var got project.Project
	status := do(t, ts, http.MethodGet, "/api/projects/"+proj.ID, nil, &got)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, proj.ID, got.ID)

	var updated project.Project
	status = do(t, ts, http.MethodPut, "/api/projects/"+proj.ID, map[string]string{"name": "Alpha 2"}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Alpha 2", updated.Name)

	var list []project.Project
	status = do(t, ts, http.MethodGet, "/api/projects", nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)

	var msg map[string]string
	status = do(t, ts, http.MethodDelete, "/api/projects/"+proj.ID, nil, &msg)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, msg["message"])

	status = do(t, ts, http.MethodGet, "/api/projects/"+proj.ID, nil, &msg)
	require.Equal(t, http.StatusNotFound, status)
	require.NotEmpty(t, msg["message"])
}

func TestCreateProjectRequiresName(t *testing.T) {
	ts := newTestServer(t)

	var msg map[string]string
	status := do(t, ts, http.MethodPost, "/api/projects", map[string]string{"name": "   "}, &msg)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, msg["message"])
}

func TestSprintListEmptyForUnknownProject(t *testing.T) {
	ts := newTestServer(t)

	var list []sprint.View
	status := do(t, ts, http.MethodGet, "/api/sprints?projectId=nonexistent", nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestSprintValidation(t *testing.T) {
	ts := newTestServer(t)
	proj := createProject(t, ts, "Alpha")

	var msg map[string]string
	status := do(t, ts, http.MethodPost, "/api/sprints", map[string]any{
		"name":      "Backwards",
		"startDate": "2024-02-01",
		"endDate":   "2024-01-01",
		"project":   proj.ID,
	}, &msg)
	require.Equal(t, http.StatusBadRequest, status)

	status = do(t, ts, http.MethodPost, "/api/sprints", map[string]any{
		"name":      "Orphan",
		"startDate": "2024-01-01",
		"endDate":   "2024-01-14",
		"project":   "nonexistent",
	}, &msg)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSprintTaskListing(t *testing.T) {
	ts := newTestServer(t)

	proj := createProject(t, ts, "Alpha")
	spr := createSprint(t, ts, "Sprint 1", proj.ID)

	createTask(t, ts, map[string]any{
		"title":   "Fix bug",
		"status":  "To Do",
		"project": proj.ID,
		"sprint":  spr.ID,
	})
	createTask(t, ts, map[string]any{
		"title":   "Someday",
		"project": proj.ID,
	})

	var list []task.View
	status := do(t, ts, http.MethodGet, "/api/tasks?sprintId="+spr.ID, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	require.Equal(t, "Fix bug", list[0].Title)
	require.Equal(t, "Alpha", list[0].ProjectName)
	require.Equal(t, "Sprint 1", list[0].SprintName)

	var sprints []sprint.View
	status = do(t, ts, http.MethodGet, "/api/sprints?projectId="+proj.ID, nil, &sprints)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, sprints, 1)
	require.Equal(t, 1, sprints[0].TaskCount)
}

func TestTaskFilters(t *testing.T) {
	ts := newTestServer(t)

	alpha := createProject(t, ts, "Alpha")
	beta := createProject(t, ts, "Beta")
	spr := createSprint(t, ts, "Sprint 1", alpha.ID)

	createTask(t, ts, map[string]any{"title": "A1", "status": "To Do", "project": alpha.ID, "sprint": spr.ID})
	createTask(t, ts, map[string]any{"title": "A2", "project": alpha.ID})
	createTask(t, ts, map[string]any{"title": "B1", "project": beta.ID})

	var list []task.View
	status := do(t, ts, http.MethodGet, "/api/tasks?projectId="+alpha.ID, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)
	for _, tsk := range list {
		require.Equal(t, alpha.ID, tsk.ProjectID)
	}

	list = nil // backlog responses omit "sprint"; don't reuse decoded elements
	status = do(t, ts, http.MethodGet, "/api/tasks/backlog", nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)
	for _, tsk := range list {
		require.Equal(t, task.StatusBacklog, tsk.Status)
		require.Nil(t, tsk.SprintID)
	}

	var msg map[string]string
	status = do(t, ts, http.MethodGet, "/api/tasks/backlog?status=Done", nil, &msg)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestTaskTransitions(t *testing.T) {
	ts := newTestServer(t)

	proj := createProject(t, ts, "Alpha")
	spr := createSprint(t, ts, "Sprint 1", proj.ID)
	tsk := createTask(t, ts, map[string]any{"title": "Fix bug", "project": proj.ID})
	require.Equal(t, task.StatusBacklog, tsk.Status)
	require.Nil(t, tsk.SprintID)

	// Out of the backlog without a sprint is rejected.
	var msg map[string]string
	status := do(t, ts, http.MethodPut, "/api/tasks/"+tsk.ID, map[string]any{"status": "In Progress"}, &msg)
	require.Equal(t, http.StatusBadRequest, status)

	var updated task.Task
	status = do(t, ts, http.MethodPut, "/api/tasks/"+tsk.ID, map[string]any{
		"status": "In Progress",
		"sprint": spr.ID,
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, task.StatusInProgress, updated.Status)
	require.NotNil(t, updated.SprintID)
	require.Equal(t, spr.ID, *updated.SprintID)

	// Back to the backlog clears the sprint assignment.
	updated = task.Task{} // the response omits "sprint"; don't keep the stale pointer
	status = do(t, ts, http.MethodPut, "/api/tasks/"+tsk.ID, map[string]any{"status": "Backlog"}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, task.StatusBacklog, updated.Status)
	require.Nil(t, updated.SprintID)

	// Repeating the same transition is idempotent.
	status = do(t, ts, http.MethodPut, "/api/tasks/"+tsk.ID, map[string]any{"status": "Backlog"}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, task.StatusBacklog, updated.Status)
}

func TestTaskLegacyStatusSpellings(t *testing.T) {
	ts := newTestServer(t)

	proj := createProject(t, ts, "Alpha")
	spr := createSprint(t, ts, "Sprint 1", proj.ID)

	tsk := createTask(t, ts, map[string]any{
		"title":    "Old client",
		"status":   "in-progress",
		"priority": "high",
		"project":  proj.ID,
		"sprint":   spr.ID,
	})
	require.Equal(t, task.StatusInProgress, tsk.Status)
	require.Equal(t, task.PriorityHigh, tsk.Priority)

	var msg map[string]string
	status := do(t, ts, http.MethodPost, "/api/tasks", map[string]any{
		"title":   "Bad status",
		"status":  "blocked",
		"project": proj.ID,
	}, &msg)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSprintDeleteLeavesTasksFetchable(t *testing.T) {
	ts := newTestServer(t)

	proj := createProject(t, ts, "Alpha")
	spr := createSprint(t, ts, "Sprint 1", proj.ID)
	tsk := createTask(t, ts, map[string]any{
		"title":   "Survivor",
		"status":  "To Do",
		"project": proj.ID,
		"sprint":  spr.ID,
	})

	status := do(t, ts, http.MethodDelete, "/api/sprints/"+spr.ID, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var view task.View
	status = do(t, ts, http.MethodGet, "/api/tasks/"+tsk.ID, nil, &view)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Survivor", view.Title)
	require.Empty(t, view.SprintName)
}

func TestTaskNotFound(t *testing.T) {
	ts := newTestServer(t)

	var msg map[string]string
	status := do(t, ts, http.MethodGet, "/api/tasks/nonexistent", nil, &msg)
	require.Equal(t, http.StatusNotFound, status)
	require.NotEmpty(t, msg["message"])
}

func TestInvalidBodyRejected(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/projects", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
