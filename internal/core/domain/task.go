package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

// Task is a unit of work on a client case. Status reuses the case stage
// vocabulary as a loose workflow tag; it is not a strict machine. Tasks are
// only ever assigned to CPA or ADMIN users.
type Task struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	ClientID     string       `json:"client_id" bson:"client_id"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description" bson:"description"`
	Status       ClientStatus `json:"status" bson:"status"`
	AssignedToID string       `json:"assigned_to_id" bson:"assigned_to_id"`
	DueDate      time.Time    `json:"due_date" bson:"due_date"`
	IsCompleted  bool         `json:"is_completed" bson:"is_completed"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
