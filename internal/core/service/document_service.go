package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

type DocumentService struct {
	docs       ports.DocumentRepository
	clients    ports.ClientRepository
	store      ports.FileStore
	classifier ports.DocumentClassifier
	logger     zerolog.Logger
}

func NewDocumentService(
	docs ports.DocumentRepository,
	clients ports.ClientRepository,
	store ports.FileStore,
	classifier ports.DocumentClassifier,
	logger zerolog.Logger,
) *DocumentService {
	return &DocumentService{docs: docs, clients: clients, store: store, classifier: classifier, logger: logger}
}

// Upload validates the file, classifies it by name, stores the bytes, and
// records the document. All checks run before any byte is written.
func (s *DocumentService) Upload(ctx context.Context, actor domain.Actor, in ports.UploadDocumentInput) (*domain.Document, error) {
	if in.ClientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "is required"}
	}
	if in.FileName == "" {
		return nil, &domain.ValidationError{Field: "file", Reason: "is required"}
	}
	if !domain.AllowedFileType(in.ContentType) {
		return nil, domain.ErrFileTypeNotAllowed
	}
	if int64(len(in.Data)) > domain.MaxUploadSize {
		return nil, domain.ErrFileTooLarge
	}

	access, err := s.clients.FindAccessByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	fileURL, err := s.store.Save(ctx, in.ClientID, in.FileName, in.Data)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to store document")
		return nil, err
	}

	docType, confidence := s.classifier.Classify(in.FileName)

	doc := &domain.Document{
		ClientID:     in.ClientID,
		FileName:     in.FileName,
		FileURL:      fileURL,
		FileSize:     int64(len(in.Data)),
		FileType:     in.ContentType,
		DocumentType: docType,
		Confidence:   confidence,
		IsVerified:   false,
		UploadedByID: actor.ID,
		UploadedAt:   time.Now().UTC(),
	}

	created, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("client_id", in.ClientID).
		Str("document_type", string(docType)).
		Float64("confidence", confidence).
		Msg("document uploaded")

	return created, nil
}

// ListByClient returns the case's documents, newest first.
func (s *DocumentService) ListByClient(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.Document, error) {
	if clientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "is required"}
	}
	access, err := s.clients.FindAccessByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}
	return s.docs.ListByClient(ctx, clientID)
}

// SetVerified flips the verification flag. Only ADMIN or the assigned CPA
// may verify documents; clients cannot self-verify.
func (s *DocumentService) SetVerified(ctx context.Context, actor domain.Actor, id string, verified bool) (*domain.Document, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleCPA {
		return nil, domain.ErrForbidden
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	access, err := s.clients.FindAccessByID(ctx, doc.ClientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}
	return s.docs.SetVerified(ctx, id, verified)
}
