package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid input for task operations.
	ErrInvalidInput = errors.New("invalid task input")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrSprintRequired indicates a non-backlog task has no sprint.
	ErrSprintRequired = errors.New("a task outside the backlog must belong to a sprint")
	// ErrUnknownProject indicates the referenced project doesn't exist.
	ErrUnknownProject = errors.New("task references unknown project")
	// ErrConflictingFilter indicates backlogOnly was combined with an
	// explicit status filter.
	ErrConflictingFilter = errors.New("backlog filter conflicts with status filter")
)
