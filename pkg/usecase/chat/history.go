package chat

import (
	"context"

	"github.com/m-mizutani/atlas/pkg/adapter"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// windowHistory returns the most recent turns of a conversation reduced to
// role and content. The repository query is newest-first so the window can be
// selected with a limit, then the slice is reversed because generation
// requires chronological order. An empty conversation yields an empty slice.
func (u *UseCase) windowHistory(ctx context.Context, conversationID model.ConversationID) ([]adapter.Turn, error) {
	msgs, err := u.repo.ListMessages(ctx, conversationID, true, u.historyWindow)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent messages", goerr.V("conversation_id", conversationID))
	}

	turns := make([]adapter.Turn, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		turns = append(turns, adapter.Turn{
			Role:    string(msgs[i].Role),
			Content: msgs[i].Content,
		})
	}

	return turns, nil
}
