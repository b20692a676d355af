package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

type ClientService struct {
	clients ports.ClientRepository
	users   ports.UserRepository
	docs    ports.DocumentRepository
	tasks   ports.TaskRepository
	logger  zerolog.Logger
}

func NewClientService(
	clients ports.ClientRepository,
	users ports.UserRepository,
	docs ports.DocumentRepository,
	tasks ports.TaskRepository,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{clients: clients, users: users, docs: docs, tasks: tasks, logger: logger}
}

// Create runs client intake: validation, duplicate-email rejection, greedy
// CPA auto-assignment, and creation of a shadow CLIENT portal user with a
// temporary credential. The new case always starts at INTAKE with progress 0;
// the 20% INTAKE value only applies on the first explicit status update.
func (s *ClientService) Create(ctx context.Context, actor domain.Actor, in ports.CreateClientInput) (*ports.CreateClientResult, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleCPA {
		return nil, domain.ErrForbidden
	}
	if err := validateIntake(in); err != nil {
		return nil, err
	}

	if existing, err := s.clients.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	cpaID, err := s.pickCPA(ctx)
	if err != nil {
		return nil, err
	}

	tempPassword, portalUser, err := s.createPortalUser(ctx, in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		UserID:             portalUser.ID,
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		BusinessName:       in.BusinessName,
		EntityType:         domain.EntityType(in.EntityType),
		TaxYear:            in.TaxYear,
		Status:             domain.StatusIntake,
		ProgressPercentage: 0,
		AssignedCPAID:      cpaID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().
		Str("client_id", created.ID).
		Str("assigned_cpa_id", cpaID).
		Int("tax_year", in.TaxYear).
		Msg("client created")

	return &ports.CreateClientResult{Client: created, TemporaryPassword: tempPassword}, nil
}

// Get returns the full case view. Authorization runs against the minimal
// owner/assignee projection before the record or any child data is loaded.
func (s *ClientService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.ClientDetail, error) {
	access, err := s.clients.FindAccessByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.ClientDetail{Client: client}

	if client.AssignedCPAID != "" {
		cpa, err := s.users.FindByID(ctx, client.AssignedCPAID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		detail.AssignedCPA = cpa
	}

	docs, err := s.docs.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Documents = docs

	tasks, err := s.tasks.List(ctx, ports.ListTasksFilter{ClientID: id})
	if err != nil {
		return nil, err
	}
	detail.Tasks = tasks

	return detail, nil
}

// List returns the cases visible to the actor, optionally filtered by
// status and search term.
func (s *ClientService) List(ctx context.Context, actor domain.Actor, in ports.ListClientsInput) ([]*domain.Client, error) {
	if in.Status != "" && in.Status != "ALL" && !domain.ClientStatus(in.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}
	filter := ports.ListClientsFilter{
		Scope:  actor.Scope(),
		Search: in.Search,
	}
	if in.Status != "" && in.Status != "ALL" {
		filter.Status = in.Status
	}
	return s.clients.List(ctx, filter)
}

// Update applies a partial edit. A status change forces the stage's fixed
// progress percentage; other fields never touch progress.
func (s *ClientService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateClientInput) (*domain.Client, error) {
	access, err := s.clients.FindAccessByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	upd := ports.ClientUpdate{
		Name:         in.Name,
		Phone:        in.Phone,
		BusinessName: in.BusinessName,
	}

	if in.Status != nil {
		status := domain.ClientStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		progress := status.Progress()
		upd.Status = &status
		upd.ProgressPercentage = &progress
	}

	if in.Email != nil {
		existing, err := s.clients.FindByEmail(ctx, *in.Email)
		if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicateEmail
		}
		upd.Email = in.Email
	}

	updated, err := s.clients.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		s.logger.Info().
			Str("client_id", id).
			Str("status", string(updated.Status)).
			Int("progress", updated.ProgressPercentage).
			Msg("client status updated")
	}
	return updated, nil
}

// pickCPA selects the CPA with the fewest assigned cases, ties broken by
// repository order. Returns empty when no CPA exists; concurrent intakes may
// both pick the same CPA, which is accepted skew.
func (s *ClientService) pickCPA(ctx context.Context) (string, error) {
	cpas, err := s.users.ListByRole(ctx, domain.RoleCPA)
	if err != nil {
		return "", err
	}
	if len(cpas) == 0 {
		return "", nil
	}

	var bestID string
	var bestCount int64 = -1
	for _, cpa := range cpas {
		count, err := s.clients.CountAssigned(ctx, cpa.ID)
		if err != nil {
			return "", err
		}
		if bestCount < 0 || count < bestCount {
			bestID = cpa.ID
			bestCount = count
		}
	}
	return bestID, nil
}

// createPortalUser issues a CLIENT account with a random temporary password
// so the taxpayer can log in to the portal. If an account with the same
// email already exists it is linked instead of recreated.
func (s *ClientService) createPortalUser(ctx context.Context, name, email string) (string, *domain.User, error) {
	tempPassword := generateTempPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			existing, findErr := s.users.FindByEmail(ctx, email)
			if findErr != nil {
				return "", nil, findErr
			}
			s.logger.Info().Str("user_id", existing.ID).Msg("linking existing portal user")
			return "", existing, nil
		}
		return "", nil, err
	}
	return tempPassword, created, nil
}

func generateTempPassword() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from current nanoseconds
		return fmt.Sprintf("tmp-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// validateIntake applies the intake field rules, first failure wins.
func validateIntake(in ports.CreateClientInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return &domain.ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	// Intentionally weak check; email is not a security boundary here.
	if !strings.Contains(in.Email, "@") {
		return &domain.ValidationError{Field: "email", Reason: "must be a valid email"}
	}
	if in.EntityType == "" || !domain.EntityType(in.EntityType).Valid() {
		return &domain.ValidationError{Field: "entity_type", Reason: "must be a known entity type"}
	}
	year := time.Now().UTC().Year()
	if in.TaxYear < year-10 || in.TaxYear > year+1 {
		return &domain.ValidationError{Field: "tax_year", Reason: fmt.Sprintf("must be between %d and %d", year-10, year+1)}
	}
	return nil
}
