package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// CreateClientInput carries intake data for a new client case.
type CreateClientInput struct {
	Name         string
	Email        string
	Phone        string
	BusinessName string
	EntityType   string
	TaxYear      int
}

// CreateClientResult is returned after intake. TemporaryPassword is the
// random credential issued to the shadow CLIENT user; password reset is an
// external concern.
type CreateClientResult struct {
	Client            *domain.Client
	TemporaryPassword string
}

// UpdateClientInput is a partial edit of a client case. A non-nil Status
// triggers the stage transition and forces the matching progress value;
// every other field is applied independently.
type UpdateClientInput struct {
	Name         *string
	Email        *string
	Phone        *string
	BusinessName *string
	Status       *string
}

// ListClientsInput carries the optional filters for the client listing.
type ListClientsInput struct {
	Status string
	Search string
}

// ClientDetail is the full case view: the record plus its assigned CPA and
// child collections.
type ClientDetail struct {
	Client      *domain.Client
	AssignedCPA *domain.User
	Documents   []*domain.Document
	Tasks       []*domain.Task
}

// ClientService defines use-case operations for client cases.
type ClientService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateClientInput) (*CreateClientResult, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*ClientDetail, error)
	List(ctx context.Context, actor domain.Actor, in ListClientsInput) ([]*domain.Client, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateClientInput) (*domain.Client, error)
}
