package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore implements Service with in-memory storage for testing.
type MockStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	messages      map[string][]Message
}

// NewMockStore creates a new in-memory conversation store.
func NewMockStore() *MockStore {
	return &MockStore{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string][]Message),
	}
}

func (m *MockStore) CreateConversation(_ context.Context, participants []string) (*Conversation, error) {
	trimmed := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) < 2 {
		return nil, fmt.Errorf("chat: a conversation needs at least two participants")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	conv := &Conversation{
		ID:           uuid.NewString(),
		Participants: trimmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.conversations[conv.ID] = conv

	return cloneConversation(conv), nil
}

func (m *MockStore) ListConversations(_ context.Context, userID string) ([]*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userID = strings.TrimSpace(userID)
	result := make([]*Conversation, 0)
	for _, conv := range m.conversations {
		if isParticipant(conv, userID) {
			result = append(result, cloneConversation(conv))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (m *MockStore) Messages(_ context.Context, conversationID, userID string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversations[strings.TrimSpace(conversationID)]
	if !ok || !isParticipant(conv, strings.TrimSpace(userID)) {
		return nil, ErrNotFound
	}

	msgs := m.messages[conv.ID]
	result := make([]Message, len(msgs))
	copy(result, msgs)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SentAt.Before(result[j].SentAt)
	})
	return result, nil
}

func (m *MockStore) Send(_ context.Context, conversationID, userID, text string) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[strings.TrimSpace(conversationID)]
	if !ok || !isParticipant(conv, strings.TrimSpace(userID)) {
		return nil, ErrNotFound
	}

	msg := Message{
		ID:     uuid.NewString(),
		Sender: strings.TrimSpace(userID),
		Text:   text,
		SentAt: time.Now().UTC(),
	}
	m.messages[conv.ID] = append(m.messages[conv.ID], msg)
	conv.UpdatedAt = msg.SentAt

	return &msg, nil
}

func isParticipant(conv *Conversation, userID string) bool {
	for _, p := range conv.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func cloneConversation(conv *Conversation) *Conversation {
	out := *conv
	out.Participants = make([]string, len(conv.Participants))
	copy(out.Participants, conv.Participants)
	return &out
}
