package domain

import (
	"errors"
	"time"
)

const (
	SenderUser   = "USER"
	SenderSystem = "SYSTEM"
)

// MaxMessageLength caps message content size.
const MaxMessageLength = 5000

var ErrMessageNotFound = errors.New("message not found")
var ErrParentMismatch = errors.New("parent message does not belong to this client")

// Message is a single entry in a client case's conversation thread.
// ParentMessageID is a single-level threading reference, not ownership.
type Message struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	ClientID        string     `json:"client_id" bson:"client_id"`
	SenderID        string     `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
	SenderType      string     `json:"sender_type" bson:"sender_type"`
	Content         string     `json:"content" bson:"content"`
	IsRead          bool       `json:"is_read" bson:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`
	ParentMessageID string     `json:"parent_message_id,omitempty" bson:"parent_message_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}
