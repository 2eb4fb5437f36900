package task

import "time"

// Status is the workflow column a task sits in. The capitalized spellings
// are canonical; legacy lowercase-hyphenated spellings are normalized by
// ParseStatus at the edges.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusInReview   Status = "In Review"
	StatusDone       Status = "Done"
)

// BoardStatuses are the statuses shown as board columns, in display order.
// Backlog tasks never appear on a board.
var BoardStatuses = []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Task is a unit of work belonging to a project and optionally a sprint.
// A nil SprintID means the task is in the backlog.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee,omitempty"`
	ProjectID   string    `json:"project"`
	SprintID    *string   `json:"sprint,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View is a task with its project and sprint names denormalized for
// listing. Names are empty when the reference no longer resolves.
type View struct {
	Task
	ProjectName string `json:"projectName,omitempty"`
	SprintName  string `json:"sprintName,omitempty"`
}
