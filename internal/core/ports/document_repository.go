package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// DocumentRepository defines persistence operations for document metadata.
// The file bytes themselves live behind FileStore.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// ListByClient returns documents newest-first.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Document, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Document, error)
}
