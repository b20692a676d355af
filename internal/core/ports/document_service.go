package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// UploadDocumentInput carries an uploaded file and its target case.
type UploadDocumentInput struct {
	ClientID    string
	FileName    string
	ContentType string
	Data        []byte
}

// DocumentService defines use-case operations for documents.
type DocumentService interface {
	Upload(ctx context.Context, actor domain.Actor, in UploadDocumentInput) (*domain.Document, error)
	ListByClient(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.Document, error)
	SetVerified(ctx context.Context, actor domain.Actor, id string, verified bool) (*domain.Document, error)
}
