package sprint

import "errors"

var (
	// ErrSprintNotFound indicates the sprint doesn't exist.
	ErrSprintNotFound = errors.New("sprint not found")
	// ErrInvalidInput indicates invalid sprint input.
	ErrInvalidInput = errors.New("invalid sprint input")
	// ErrInvalidDates indicates the end date precedes the start date.
	ErrInvalidDates = errors.New("sprint end date precedes start date")
	// ErrUnknownProject indicates the referenced project doesn't exist.
	ErrUnknownProject = errors.New("sprint references unknown project")
)
