// Package chat holds one-to-one conversations between users: the
// conversation and message shapes, the store contract, its Firestore and
// in-memory implementations, and the display timeline composer.
package chat

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a conversation does not exist or the caller
// is not one of its participants. The two cases are deliberately not
// distinguished so that conversation IDs cannot be probed.
var ErrNotFound = errors.New("chat: conversation not found")

// Conversation is a chat between two users.
type Conversation struct {
	ID           string
	Participants []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Message is a single chat message.
type Message struct {
	ID     string
	Sender string
	Text   string
	SentAt time.Time
}

// Service is the conversation store contract. Every operation that takes a
// userID enforces participant access: a caller outside the conversation
// gets ErrNotFound.
type Service interface {
	CreateConversation(ctx context.Context, participants []string) (*Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*Conversation, error)
	Messages(ctx context.Context, conversationID, userID string) ([]Message, error)
	Send(ctx context.Context, conversationID, userID, text string) (*Message, error)
}
