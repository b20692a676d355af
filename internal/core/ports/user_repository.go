package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user listing.
type ListUsersFilter struct {
	Role   string // optional: filter by role
	Search string // optional: case-insensitive partial match on name or email
}

// UserUpdate is a partial field set applied to a user record. When Role
// would demote an ADMIN, the repository verifies inside the same transaction
// that another ADMIN remains, failing with domain.ErrLastAdmin otherwise.
// When PasswordHash is set, the paired credential record is updated in the
// same transaction.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	PasswordHash *string
}

// UserRepository defines persistence operations for users and their paired
// credential records.
type UserRepository interface {
	// Create inserts the user and its "credentials" provider record as one
	// transaction.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	// Delete removes the user; deleting the last remaining ADMIN fails with
	// domain.ErrLastAdmin and leaves the record unchanged.
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
