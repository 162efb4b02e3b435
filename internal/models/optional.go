package models

import "encoding/json"

// Optional records whether a JSON field was present, and whether it was null.
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Field is a request field kept as raw JSON until validation decides what
// type it must hold.
type Field = Optional[json.RawMessage]

// TaskInput is the request body of task create and update.
type TaskInput struct {
	Title       Field `json:"title"`
	Description Field `json:"description"`
	Status      Field `json:"status"`
	OwnerID     Field `json:"owner_id"`
}

// UserInput is the request body of registration and user update.
type UserInput struct {
	Username Field `json:"username"`
	Password Field `json:"password"`
}

// LoginInput is the request body of login.
type LoginInput struct {
	Username Field `json:"username"`
	Password Field `json:"password"`
}
