package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type MessageID string

// NewMessageID generates a new unique MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Validate checks if the role is valid
func (r MessageRole) Validate() error {
	switch r {
	case MessageRoleUser, MessageRoleAssistant:
		return nil
	default:
		return goerr.New("invalid message role", goerr.V("role", r))
	}
}

// MessageMetadata holds processing accounting for a message. TokensUsed and
// Model are set only on assistant messages.
type MessageMetadata struct {
	ProcessingTimeMillis int64
	TokensUsed           int
	Model                string
}

// Message is a single turn of a conversation. Messages are immutable once
// created and ordered by creation timestamp. They are always written in
// same-round pairs: one user message followed by one assistant message.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Role           MessageRole
	Content        string
	Metadata       MessageMetadata
	CreatedAt      time.Time
}
