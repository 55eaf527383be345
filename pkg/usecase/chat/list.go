package chat

import (
	"context"
	"time"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const previewLength = 100

// MessagePreview is a truncated view of the most recent message
type MessagePreview struct {
	Role      model.MessageRole
	Content   string
	CreatedAt time.Time
}

// ConversationSummary is a conversation with optional preview data
type ConversationSummary struct {
	*model.Conversation
	MessageCount int
	LastMessage  *MessagePreview
}

// ListConversations returns the active conversations of a user, most
// recently updated first. With includePreview each summary carries a message
// count and the latest message truncated to 100 characters.
func (u *UseCase) ListConversations(ctx context.Context, ownerID model.UserID, includePreview bool) ([]*ConversationSummary, error) {
	convs, err := u.repo.ListConversationsByOwner(ctx, ownerID, model.ConversationStatusActive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations", goerr.V("owner_id", ownerID))
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := &ConversationSummary{Conversation: conv}

		if includePreview {
			count, err := u.repo.CountMessages(ctx, conv.ID)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to count messages", goerr.V("conversation_id", conv.ID))
			}
			summary.MessageCount = count

			latest, err := u.repo.LatestMessage(ctx, conv.ID)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to get latest message", goerr.V("conversation_id", conv.ID))
			}
			if latest != nil {
				summary.LastMessage = &MessagePreview{
					Role:      latest.Role,
					Content:   truncatePreview(latest.Content),
					CreatedAt: latest.CreatedAt,
				}
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
