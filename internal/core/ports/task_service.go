package ports

import (
	"context"
	"time"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// CreateTaskInput carries the data for a new task on a client case.
type CreateTaskInput struct {
	ClientID     string
	Title        string
	Description  string
	AssignedToID string
	DueDate      time.Time
}

// UpdateTaskInput is a partial edit of a task. Setting IsCompleted toggles
// the completion timestamp.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	AssignedToID *string
	DueDate      *time.Time
	IsCompleted  *bool
}

// ListTasksInput carries the optional filters for the task listing.
type ListTasksInput struct {
	Status       string
	ClientID     string
	AssignedToID string
	Search       string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, actor domain.Actor, in ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateTaskInput) (*domain.Task, error)
}
