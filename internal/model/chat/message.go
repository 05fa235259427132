package chat

import "time"

// Sender values used in transcripts.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	IsCrisis  bool      `json:"isCrisis,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
