package chats

// CreateInput for POST /chats. The authenticated caller becomes the other
// participant.
type CreateInput struct {
	Participant string `json:"participant" validate:"required,notblank"`
}

// SendInput for POST /chats/{chat_id}/messages.
type SendInput struct {
	Text string `json:"text" validate:"required,notblank"`
}

// MessagesInput defines query parameters for reading a conversation.
type MessagesInput struct {
	Timezone string `query:"tz"`
}
