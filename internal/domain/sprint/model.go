package sprint

import "time"

// Sprint is a time-boxed iteration belonging to a project
type Sprint struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
	ProjectID string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View is a sprint with its project name and task count denormalized for
// listing. ProjectName is empty when the project reference no longer
// resolves.
type View struct {
	Sprint
	ProjectName string `json:"projectName,omitempty"`
	TaskCount   int    `json:"taskCount"`
}
