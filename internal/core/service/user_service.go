package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

// UserService implements the ADMIN-only user management surface. The
// last-admin invariant is enforced transactionally by the repository; this
// layer does validation and the role gate.
type UserService struct {
	users   ports.UserRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, clients ports.ClientRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, clients: clients, logger: logger}
}

// List returns all users with their assigned-client counts.
func (s *UserService) List(ctx context.Context, actor domain.Actor, filter ports.ListUsersFilter) ([]*ports.UserSummary, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ports.UserSummary, 0, len(users))
	for _, u := range users {
		count, err := s.clients.CountAssigned(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &ports.UserSummary{User: u, AssignedClientsCount: count})
	}
	return summaries, nil
}

// Create adds a user account plus its credential record in one transaction.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validateUserInput(in.Name, in.Email, in.Password, in.Role, true); err != nil {
		return nil, err
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies a partial edit. Demoting an ADMIN or changing a password
// runs guarded and paired inside the repository transaction.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}

	upd := ports.UserUpdate{}

	if in.Name != nil {
		if len(strings.TrimSpace(*in.Name)) < 2 {
			return nil, &domain.ValidationError{Field: "name", Reason: "must be at least 2 characters"}
		}
		upd.Name = in.Name
	}

	if in.Email != nil {
		if !strings.Contains(*in.Email, "@") {
			return nil, &domain.ValidationError{Field: "email", Reason: "must be a valid email"}
		}
		existing, err := s.users.FindByEmail(ctx, *in.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrUserExists
		}
		upd.Email = in.Email
	}

	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, &domain.ValidationError{Field: "role", Reason: "must be ADMIN, CPA or CLIENT"}
		}
		upd.Role = in.Role
	}

	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		upd.PasswordHash = &hashStr
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes a user; deleting the last ADMIN fails with ErrLastAdmin.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func validateUserInput(name, email, password, role string, passwordRequired bool) error {
	if len(strings.TrimSpace(name)) < 2 {
		return &domain.ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if !strings.Contains(email, "@") {
		return &domain.ValidationError{Field: "email", Reason: "must be a valid email"}
	}
	if passwordRequired && len(password) < 8 {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if !domain.ValidRole(role) {
		return &domain.ValidationError{Field: "role", Reason: "must be ADMIN, CPA or CLIENT"}
	}
	return nil
}
