package task

import "strings"

// legacyStatuses maps the lowercase-hyphenated spellings a previous client
// generation sent to the canonical enumeration.
var legacyStatuses = map[string]Status{
	"backlog":     StatusBacklog,
	"todo":        StatusTodo,
	"in-progress": StatusInProgress,
	"review":      StatusInReview,
	"done":        StatusDone,
}

// ParseStatus normalizes a status spelling to the canonical enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return Status(s), nil
	}
	if st, ok := legacyStatuses[strings.ToLower(s)]; ok {
		return st, nil
	}
	return "", ErrInvalidStatus
}

// ParsePriority normalizes a priority spelling. The empty string yields the
// default, Medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", ErrInvalidPriority
}
