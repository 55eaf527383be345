package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type ConversationID string

// NewConversationID generates a new unique ConversationID
func NewConversationID() ConversationID {
	return ConversationID(uuid.New().String())
}

type ConversationStatus string

const (
	ConversationStatusActive  ConversationStatus = "active"
	ConversationStatusDeleted ConversationStatus = "deleted"
)

// Validate checks if the status is valid
func (s ConversationStatus) Validate() error {
	switch s {
	case ConversationStatusActive, ConversationStatusDeleted:
		return nil
	default:
		return goerr.New("invalid conversation status", goerr.V("status", s))
	}
}

// ConversationMetadata holds running counters for a conversation. The values
// are maintained incrementally after each successful query round, never
// recomputed from the stored messages.
type ConversationMetadata struct {
	TotalMessages   int
	LastQueryTime   time.Time
	TotalTokensUsed int
}

// Conversation is a multi-turn exchange owned by a single user. Status only
// transitions active to deleted (soft delete).
type Conversation struct {
	ID          ConversationID
	OwnerID     UserID
	Title       string
	Description string
	Status      ConversationStatus
	Metadata    ConversationMetadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
