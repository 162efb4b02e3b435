package models

// StatusNotDone is assigned to tasks created without an explicit status
const StatusNotDone = "not done"

// Task represents a task owned by a user
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	OwnerID     int64   `json:"owner_id"`
}

// TaskSummary is a task as nested inside a user detail view
type TaskSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// TaskPatch carries the fields of a task write; nil means untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	OwnerID     *int64
	// ClearDescription sets description to NULL when the request sent an explicit null.
	ClearDescription bool
}

// Apply overwrites the fields of t that are present in p.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	} else if p.ClearDescription {
		t.Description = nil
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.OwnerID != nil {
		t.OwnerID = *p.OwnerID
	}
}
