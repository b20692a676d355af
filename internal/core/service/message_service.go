package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, clients ports.ClientRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, clients: clients, logger: logger}
}

// ListByClient returns the thread chronologically, then marks messages from
// other parties as read for the caller. A failed read-marking does not fail
// the listing.
func (s *MessageService) ListByClient(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.Message, error) {
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

	msgs, err := s.messages.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := s.messages.MarkRead(ctx, clientID, actor.ID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to mark messages read")
	}
	return msgs, nil
}

// Send records a new message on a case. A reply must reference a parent on
// the same case.
func (s *MessageService) Send(ctx context.Context, actor domain.Actor, in ports.SendMessageInput) (*domain.Message, error) {
	if in.ClientID == "" {
		return nil, &domain.ValidationError{Field: "client_id", Reason: "is required"}
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	if len(content) > domain.MaxMessageLength {
		return nil, &domain.ValidationError{Field: "content", Reason: "cannot exceed 5000 characters"}
	}

	access, err := s.clients.FindAccessByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(access.UserID, access.AssignedCPAID) {
		return nil, domain.ErrForbidden
	}

	if in.ParentMessageID != "" {
		parent, err := s.messages.FindByID(ctx, in.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if parent.ClientID != in.ClientID {
			return nil, domain.ErrParentMismatch
		}
	}

	msg := &domain.Message{
		ClientID:        in.ClientID,
		SenderID:        actor.ID,
		SenderType:      domain.SenderUser,
		Content:         content,
		ParentMessageID: in.ParentMessageID,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to create message")
		return nil, err
	}
	return created, nil
}
