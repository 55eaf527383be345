package chat

import (
	"context"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DeleteConversation removes all messages of the conversation and then marks
// it deleted. The order is fixed: messages are purged before the status flip,
// so a deleted conversation never retains orphaned messages.
func (u *UseCase) DeleteConversation(ctx context.Context, id model.ConversationID, ownerID model.UserID) error {
	conv, err := u.repo.GetConversationByOwner(ctx, id, ownerID, model.ConversationStatusActive)
	if err != nil {
		return goerr.Wrap(err, "failed to look up conversation", goerr.V("conversation_id", id))
	}
	if conv == nil {
		return goerr.New("conversation not found or access denied",
			goerr.T(model.ErrTagForbidden),
			goerr.V("conversation_id", id))
	}

	if err := u.repo.DeleteMessagesByConversation(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete messages",
			goerr.T(model.ErrTagPersistence),
			goerr.V("conversation_id", id))
	}

	conv.Status = model.ConversationStatusDeleted
	conv.UpdatedAt = u.now()
	if err := u.repo.UpdateConversation(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to mark conversation deleted",
			goerr.T(model.ErrTagPersistence),
			goerr.V("conversation_id", id))
	}

	logging.From(ctx).Info("conversation deleted", "conversation_id", id)
	return nil
}
