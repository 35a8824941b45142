package chats

import (
	"github.com/lingopeer/lingopeer-api/internal/platform/timeutil"
	chatsvc "github.com/lingopeer/lingopeer-api/internal/service/chat"
)

// Conversation represents a chat between two users.
type Conversation struct {
	ID           string        `json:"id"           example:"4a1e9a9e-6e5f-4f0f-9d3a-2f9c7b1d8e21"`
	Participants []string      `json:"participants" example:"user-123,user-456"`
	CreatedAt    timeutil.Time `json:"created_at"   example:"2026-01-15T10:30:00.000Z"`
	UpdatedAt    timeutil.Time `json:"updated_at"   example:"2026-01-15T10:30:00.000Z"`
}

// ListData is the conversation list response body.
type ListData struct {
	Conversations []Conversation `json:"conversations"`
}

// Message is a single chat message response.
type Message struct {
	ID     string        `json:"id"      example:"7c2f1b3a-0d4e-4c8b-b1a2-5e6f7a8b9c0d"`
	Sender string        `json:"sender"  example:"user-123"`
	Text   string        `json:"text"    example:"Guten Tag!"`
	SentAt timeutil.Time `json:"sent_at" example:"2026-01-15T10:30:00.000Z"`
}

// TimelineEntry is a message decorated with display decisions.
type TimelineEntry struct {
	Message
	ShowDivider bool   `json:"show_divider"`
	DayLabel    string `json:"day_label,omitempty" example:"Jan 15, 2026"`
	ShowTime    bool   `json:"show_time"`
	TimeLabel   string `json:"time_label,omitempty" example:"10:30 AM"`
}

// MessagesData is the conversation messages response body.
type MessagesData struct {
	Messages []TimelineEntry `json:"messages"`
}

func toConversation(conv *chatsvc.Conversation) Conversation {
	return Conversation{
		ID:           conv.ID,
		Participants: conv.Participants,
		CreatedAt:    timeutil.Time{Time: conv.CreatedAt},
		UpdatedAt:    timeutil.Time{Time: conv.UpdatedAt},
	}
}

func toMessage(m chatsvc.Message) Message {
	return Message{
		ID:     m.ID,
		Sender: m.Sender,
		Text:   m.Text,
		SentAt: timeutil.Time{Time: m.SentAt},
	}
}

func toTimelineEntry(e chatsvc.Entry) TimelineEntry {
	return TimelineEntry{
		Message:     toMessage(e.Message),
		ShowDivider: e.ShowDivider,
		DayLabel:    e.DayLabel,
		ShowTime:    e.ShowTime,
		TimeLabel:   e.TimeLabel,
	}
}
