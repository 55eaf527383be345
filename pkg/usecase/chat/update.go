package chat

import (
	"context"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// UpdateInput contains the mutable conversation fields. Nil means keep the
// current value.
type UpdateInput struct {
	Title       *string
	Description *string
}

// UpdateConversation updates title and/or description of an active
// conversation owned by the user
func (u *UseCase) UpdateConversation(ctx context.Context, id model.ConversationID, ownerID model.UserID, input UpdateInput) (*model.Conversation, error) {
	conv, err := u.repo.GetConversationByOwner(ctx, id, ownerID, model.ConversationStatusActive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up conversation", goerr.V("conversation_id", id))
	}
	if conv == nil {
		return nil, goerr.New("conversation not found or access denied",
			goerr.T(model.ErrTagForbidden),
			goerr.V("conversation_id", id))
	}

	if input.Title != nil {
		conv.Title = *input.Title
	}
	if input.Description != nil {
		conv.Description = *input.Description
	}
	conv.UpdatedAt = u.now()

	if err := u.repo.UpdateConversation(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to update conversation",
			goerr.T(model.ErrTagPersistence),
			goerr.V("conversation_id", id))
	}

	return conv, nil
}
