package ports

import (
	"context"
	"time"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// MessageRepository defines persistence operations for case messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByClient returns messages in chronological order.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Message, error)
	// MarkRead marks all messages on the case not sent by readerID as read.
	MarkRead(ctx context.Context, clientID, readerID string, at time.Time) error
	CountUnread(ctx context.Context, scope domain.AccessScope) (int64, error)
}
