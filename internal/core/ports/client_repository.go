package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// ListClientsFilter carries all query parameters for listing clients.
// Scope is always derived from the actor's role by the service layer; the
// repository never widens it.
type ListClientsFilter struct {
	Scope  domain.AccessScope
	Status string // optional: filter by workflow stage
	Search string // optional: case-insensitive partial match on name or email
}

// ClientUpdate is a partial field set applied to a client record. Nil
// pointers are left untouched. Status and ProgressPercentage are always set
// together by the service; the repository does not recompute progress.
type ClientUpdate struct {
	Name               *string
	Email              *string
	Phone              *string
	BusinessName       *string
	Status             *domain.ClientStatus
	ProgressPercentage *int
}

// ClientRepository defines persistence operations for client cases.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindAccessByID returns only the owner/assignee projection used for
	// authorization, without loading the rest of the record.
	FindAccessByID(ctx context.Context, id string) (*domain.ClientAccess, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, error)
	Update(ctx context.Context, id string, upd ClientUpdate) (*domain.Client, error)
	// CountAssigned returns the number of cases currently assigned to a CPA.
	CountAssigned(ctx context.Context, cpaID string) (int64, error)
	Count(ctx context.Context, scope domain.AccessScope) (int64, error)
	CountByStatus(ctx context.Context, scope domain.AccessScope) (map[domain.ClientStatus]int64, error)
}
