package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// SendMessageInput carries a new message for a client case.
type SendMessageInput struct {
	ClientID        string
	Content         string
	ParentMessageID string
}

// MessageService defines use-case operations for case messages.
type MessageService interface {
	// ListByClient returns the case's thread chronologically and marks the
	// other parties' messages as read for the caller.
	ListByClient(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.Message, error)
	Send(ctx context.Context, actor domain.Actor, in SendMessageInput) (*domain.Message, error)
}
