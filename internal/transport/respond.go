package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondList writes a JSON array, substituting an empty array for a nil
// slice so clients never see null.
func respondList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	respondJSON(w, http.StatusOK, items)
}

var notFoundErrors = []error{
	project.ErrProjectNotFound,
	sprint.ErrSprintNotFound,
	task.ErrTaskNotFound,
}

var validationErrors = []error{
	project.ErrInvalidInput,
	sprint.ErrInvalidInput,
	sprint.ErrInvalidDates,
	sprint.ErrUnknownProject,
	task.ErrInvalidInput,
	task.ErrInvalidStatus,
	task.ErrInvalidPriority,
	task.ErrSprintRequired,
	task.ErrUnknownProject,
	task.ErrConflictingFilter,
}

// respondDomainError maps domain sentinel errors onto the HTTP taxonomy:
// validation failures are 400s, missing documents are 404s, everything
// else is a 500 with the detail kept out of the response.
func (s *Server) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondMessage(w, http.StatusNotFound, sentinel.Error())
			return
		}
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			respondMessage(w, http.StatusBadRequest, sentinel.Error())
			return
		}
	}

	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondMessage(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
