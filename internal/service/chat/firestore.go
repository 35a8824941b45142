package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

// FirestoreStore implements Service on Cloud Firestore. A conversation is
// one document in "conversations" with a participants array; its messages
// live in a "messages" subcollection, one document per message.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed conversation store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(conversationID string) *firestore.DocumentRef {
	return s.client.Collection(conversationsCollection).Doc(conversationID)
}

func (s *FirestoreStore) CreateConversation(ctx context.Context, participants []string) (*Conversation, error) {
	trimmed := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	if len(trimmed) < 2 {
		return nil, fmt.Errorf("chat: a conversation needs at least two participants")
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := s.doc(id).Create(ctx, map[string]any{
		"participants": trimmed,
		"created_at":   now,
		"updated_at":   now,
	}); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	return &Conversation{
		ID:           id,
		Participants: trimmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *FirestoreStore) ListConversations(ctx context.Context, userID string) ([]*Conversation, error) {
	query := s.client.Collection(conversationsCollection).
		Where("participants", "array-contains", strings.TrimSpace(userID))
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	conversations := make([]*Conversation, 0, len(docs))
	for _, doc := range docs {
		conversations = append(conversations, conversationFromDoc(doc))
	}
	// Most recently active first.
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	return conversations, nil
}

func (s *FirestoreStore) Messages(ctx context.Context, conversationID, userID string) ([]Message, error) {
	doc, err := s.requireParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	docs, err := doc.Collection(messagesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]Message, 0, len(docs))
	for _, m := range docs {
		messages = append(messages, messageFromDoc(m))
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt.Before(messages[j].SentAt)
	})
	return messages, nil
}

func (s *FirestoreStore) Send(ctx context.Context, conversationID, userID, text string) (*Message, error) {
	doc, err := s.requireParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	msg := Message{
		ID:     uuid.NewString(),
		Sender: strings.TrimSpace(userID),
		Text:   text,
		SentAt: time.Now().UTC(),
	}
	if _, err := doc.Collection(messagesCollection).Doc(msg.ID).Create(ctx, map[string]any{
		"sender":  msg.Sender,
		"text":    msg.Text,
		"sent_at": msg.SentAt,
	}); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	// Bump the conversation so it sorts to the top of the list. The
	// message is already durable, so a failure here is not fatal.
	_, _ = doc.Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: msg.SentAt},
	})

	return &msg, nil
}

// requireParticipant loads the conversation document and verifies that
// userID is one of its participants. A missing document and a
// non-participant caller both map to ErrNotFound.
func (s *FirestoreStore) requireParticipant(ctx context.Context, conversationID, userID string) (*firestore.DocumentRef, error) {
	doc := s.doc(strings.TrimSpace(conversationID))
	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	conv := conversationFromDoc(snap)
	userID = strings.TrimSpace(userID)
	for _, p := range conv.Participants {
		if p == userID {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

func conversationFromDoc(doc *firestore.DocumentSnapshot) *Conversation {
	data := doc.Data()
	conv := &Conversation{ID: doc.Ref.ID}
	if raw, ok := data["participants"].([]any); ok {
		for _, p := range raw {
			if s, ok := p.(string); ok {
				conv.Participants = append(conv.Participants, s)
			}
		}
	}
	if t, ok := data["created_at"].(time.Time); ok {
		conv.CreatedAt = t
	}
	if t, ok := data["updated_at"].(time.Time); ok {
		conv.UpdatedAt = t
	}
	return conv
}

func messageFromDoc(doc *firestore.DocumentSnapshot) Message {
	data := doc.Data()
	msg := Message{ID: doc.Ref.ID}
	if s, ok := data["sender"].(string); ok {
		msg.Sender = s
	}
	if s, ok := data["text"].(string); ok {
		msg.Text = s
	}
	if t, ok := data["sent_at"].(time.Time); ok {
		msg.SentAt = t
	}
	return msg
}
