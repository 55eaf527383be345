package chat

import (
	"context"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// CreateInput contains parameters for creating a conversation from its
// opening query
type CreateInput struct {
	OwnerID model.UserID
	Query   string
	Title   string // optional; generated from the query when empty
}

// CreateConversation validates the owner, derives a title, creates the
// conversation with zeroed counters and then runs the first query round. If
// the round fails the conversation is left in place so the caller can retry
// against the same ID.
func (u *UseCase) CreateConversation(ctx context.Context, input CreateInput) (*QueryResult, error) {
	user, err := u.repo.GetUser(ctx, input.OwnerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V("user_id", input.OwnerID))
	}
	if user == nil {
		return nil, goerr.New("user not found", goerr.T(model.ErrTagNotFound), goerr.V("user_id", input.OwnerID))
	}

	title := input.Title
	if title == "" {
		title, err = u.gemini.GenerateTitle(ctx, input.Query)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate conversation title", goerr.T(model.ErrTagGeneration))
		}
	}

	now := u.now()
	conv := &model.Conversation{
		ID:      model.NewConversationID(),
		OwnerID: input.OwnerID,
		Title:   title,
		Status:  model.ConversationStatusActive,
		Metadata: model.ConversationMetadata{
			LastQueryTime: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.PutConversation(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to create conversation", goerr.T(model.ErrTagPersistence))
	}

	return u.SubmitQuery(ctx, QueryInput{
		ConversationID: conv.ID,
		OwnerID:        input.OwnerID,
		Query:          input.Query,
	})
}
