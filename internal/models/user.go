package models

// User represents a user in the system
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
}

// UserListItem is the list view of a user, without nested tasks
type UserListItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserDetail is the single-resource view of a user with its tasks ordered by id
type UserDetail struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Tasks    []TaskSummary `json:"tasks"`
}

// UserPatch carries the fields of a partial user update; nil means untouched.
// Password is plaintext and is hashed before it reaches the store.
type UserPatch struct {
	Username *string
	Password *string
}

// NewUserDetail builds the detail view of u.
func NewUserDetail(u *User, tasks []Task) UserDetail {
	d := UserDetail{ID: u.ID, Username: u.Username, Tasks: make([]TaskSummary, 0, len(tasks))}
	for _, t := range tasks {
		d.Tasks = append(d.Tasks, TaskSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
		})
	}
	return d
}
