package chat

import (
	"context"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// ConversationDetail is a conversation with its full ordered message history
type ConversationDetail struct {
	*model.Conversation
	Messages []*model.Message
}

// GetConversation returns one active conversation of the user, optionally
// with all of its messages in chronological order
func (u *UseCase) GetConversation(ctx context.Context, id model.ConversationID, ownerID model.UserID, includeMessages bool) (*ConversationDetail, error) {
	conv, err := u.repo.GetConversationByOwner(ctx, id, ownerID, model.ConversationStatusActive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up conversation", goerr.V("conversation_id", id))
	}
	if conv == nil {
		return nil, goerr.New("conversation not found or access denied",
			goerr.T(model.ErrTagForbidden),
			goerr.V("conversation_id", id))
	}

	detail := &ConversationDetail{Conversation: conv}
	if includeMessages {
		msgs, err := u.repo.ListMessages(ctx, id, false, 0)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list messages", goerr.V("conversation_id", id))
		}
		detail.Messages = msgs
	}

	return detail, nil
}
