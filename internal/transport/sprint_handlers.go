package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rgould/sprintdeck/internal/domain/sprint"
)

type sprintRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  bool   `json:"isActive"`
	Project   string `json:"project"`
}

// parseDate accepts both RFC 3339 timestamps and bare dates, which is what
// the date-picker client sends.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *Server) decodeSprintRequest(w http.ResponseWriter, r *http.Request) (sprintRequest, time.Time, time.Time, bool) {
	var req sprintRequest
	if !decodeJSON(w, r, &req) {
		return req, time.Time{}, time.Time{}, false
	}

	start, ok := parseDate(req.StartDate)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid start date")
		return req, time.Time{}, time.Time{}, false
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid end date")
		return req, time.Time{}, time.Time{}, false
	}

	return req, start, end, true
}

func (s *Server) handleListSprints(w http.ResponseWriter, r *http.Request) {
	sprints, err := s.sprints.List(r.Context(), r.URL.Query().Get("projectId"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondList(w, sprints)
}

func (s *Server) handleCreateSprint(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := s.decodeSprintRequest(w, r)
	if !ok {
		return
	}

	spr, err := s.sprints.Create(r.Context(), sprint.CreateRequest{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
		ProjectID: req.Project,
	})
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, spr)
}

func (s *Server) handleGetSprint(w http.ResponseWriter, r *http.Request) {
	view, err := s.sprints.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateSprint(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := s.decodeSprintRequest(w, r)
	if !ok {
		return
	}

	spr, err := s.sprints.Update(r.Context(), sprint.UpdateRequest{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
		ProjectID: req.Project,
	})
	if err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, spr)
}

func (s *Server) handleDeleteSprint(w http.ResponseWriter, r *http.Request) {
	if err := s.sprints.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondDomainError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Sprint deleted")
}
