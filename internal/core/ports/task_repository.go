package ports

import (
	"context"
	"time"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// ListTasksFilter carries query parameters for listing tasks. Scope applies
// to the owning client case, not to the task's own assignee.
type ListTasksFilter struct {
	Scope        domain.AccessScope
	Status       string
	ClientID     string
	AssignedToID string
	Search       string // partial match on title or description
}

// TaskUpdate is a partial field set applied to a task. The service computes
// CompletedAt; the repository clears the stored value when IsCompleted is
// set to false.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *domain.ClientStatus
	AssignedToID *string
	DueDate      *time.Time
	IsCompleted  *bool
	CompletedAt  *time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks ordered incomplete-first, then by due date, then by
	// creation time descending.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	Update(ctx context.Context, id string, upd TaskUpdate) (*domain.Task, error)
	CountByStatus(ctx context.Context, scope domain.AccessScope) (map[domain.ClientStatus]int64, error)
	CountCompletedSince(ctx context.Context, scope domain.AccessScope, since time.Time) (int64, error)
	CountOverdue(ctx context.Context, scope domain.AccessScope, now time.Time) (int64, error)
	ListDueBetween(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]*domain.Task, error)
}
