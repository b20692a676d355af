package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// CreateUserInput carries the data for a new user account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial edit of a user account.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

// UserSummary is the admin listing view of a user.
type UserSummary struct {
	User                 *domain.User
	AssignedClientsCount int64
}

// UserService defines the ADMIN-only user management operations. The role
// gate itself lives in the HTTP layer; the service re-checks it so the
// policy holds for any caller.
type UserService interface {
	List(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]*UserSummary, error)
	Create(ctx context.Context, actor domain.Actor, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
