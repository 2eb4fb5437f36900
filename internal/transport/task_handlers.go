package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgould/sprintdeck/internal/domain/task"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Assignee    string  `json:"assignee"`
	Project     string  `json:"project"`
	Sprint      *string `json:"sprint"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Assignee    *string `json:"assignee"`
	Sprint      *string `json:"sprint"`
}

// taskFilterFromQuery builds the typed filter from query parameters.
func (s *Server) taskFilterFromQuery(w http.ResponseWriter, r *http.Request, backlogOnly bool) (task.Filter, bool) {
	q := r.URL.Query()
	filter := task.Filter{
		ProjectID:   q.Get("projectId"),
		SprintID:    q.Get("sprintId"),
		BacklogOnly: backlogOnly,
	}

	if raw := q.Get("status"); raw != "" {
		status, err := task.ParseStatus(raw)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return filter, false
		}
		filter.Status = &status
	}

	return filter, true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.taskFilterFromQuery(w, r, false)
	if !ok {
		return
	}

	views, err := s.tasks.List(r.Context(), filter)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondList(w, views)
}

func (s *Server) handleListBacklog(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.taskFilterFromQuery(w, r, true)
	if !ok {
		return
	}

	views, err := s.tasks.List(r.Context(), filter)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondList(w, views)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	createReq := task.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		ProjectID:   req.Project,
		SprintID:    req.Sprint,
	}

	if req.Status != "" {
		status, err := task.ParseStatus(req.Status)
		if err != nil {
			s.respondDomainError(w, r, err)
			return
		}
		createReq.Status = status
	}

	priority, err := task.ParsePriority(req.Priority)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	createReq.Priority = priority

	tsk, err := s.tasks.Create(r.Context(), createReq)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, tsk)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	view, err := s.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updateReq := task.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		SprintID:    req.Sprint,
	}

	if req.Status != nil {
		status, err := task.ParseStatus(*req.Status)
		if err != nil {
			s.respondDomainError(w, r, err)
			return
		}
		updateReq.Status = &status
	}
	if req.Priority != nil {
		priority, err := task.ParsePriority(*req.Priority)
		if err != nil {
			s.respondDomainError(w, r, err)
			return
		}
		updateReq.Priority = &priority
	}

	tsk, err := s.tasks.Update(r.Context(), updateReq)
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tsk)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Task deleted")
}
