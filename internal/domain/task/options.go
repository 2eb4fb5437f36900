package task

// Filter provides filtering options for listing tasks. Zero-valued fields
// are ignored; no filters means all tasks. BacklogOnly is shorthand for
// Status=Backlog and is mutually exclusive with an explicit Status.
type Filter struct {
	ProjectID   string
	SprintID    string
	Status      *Status
	BacklogOnly bool
}
