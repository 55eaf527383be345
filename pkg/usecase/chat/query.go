package chat

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// QueryInput contains parameters for a single query round
type QueryInput struct {
	ConversationID model.ConversationID
	OwnerID        model.UserID
	Query          string
}

// QueryResult is the outcome of a successful query round
type QueryResult struct {
	ConversationID       model.ConversationID
	Query                string
	Answer               string
	TokensUsed           int
	Model                string
	ProcessingTimeMillis int64
	MessageID            model.MessageID
}

// SubmitQuery runs one query round against an existing active conversation:
// authorize, window history, retrieve top-k documents, build the prompt,
// generate, persist the user/assistant message pair, and update the
// conversation counters. Failures abort the round with a classifying error
// tag and no further writes, except the documented case where the assistant
// message write fails after the user message was stored.
//
// The metadata update is a read-modify-write; concurrent rounds on the same
// conversation can lose an update. Callers needing strict counters must
// serialize rounds per conversation.
func (u *UseCase) SubmitQuery(ctx context.Context, input QueryInput) (*QueryResult, error) {
	startedAt := u.now()

	conv, err := u.repo.GetConversationByOwner(ctx, input.ConversationID, input.OwnerID, model.ConversationStatusActive)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up conversation", goerr.V("conversation_id", input.ConversationID))
	}
	if conv == nil {
		return nil, goerr.New("conversation not found or access denied",
			goerr.T(model.ErrTagForbidden),
			goerr.V("conversation_id", input.ConversationID))
	}

	history, err := u.windowHistory(ctx, conv.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load conversation history", goerr.T(model.ErrTagNotFound))
	}

	vector, err := u.gemini.Embedding(ctx, input.Query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query", goerr.T(model.ErrTagRetrieval))
	}

	docs, err := u.repo.SearchSimilarDocuments(ctx, firestore.Vector32(vector), u.topK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search similar documents", goerr.T(model.ErrTagRetrieval))
	}

	prompt, err := buildPrompt(input.Query, assembleContext(docs))
	if err != nil {
		return nil, err
	}

	// The retrieved context is already embedded in the prompt, so the extra
	// context slot stays empty to avoid supplying it twice.
	gen, err := u.gemini.Generate(ctx, prompt, "", history)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate answer", goerr.T(model.ErrTagGeneration))
	}

	elapsed := u.now().Sub(startedAt).Milliseconds()

	userMsg := &model.Message{
		ID:             model.NewMessageID(),
		ConversationID: conv.ID,
		Role:           model.MessageRoleUser,
		Content:        input.Query,
		Metadata: model.MessageMetadata{
			ProcessingTimeMillis: elapsed,
		},
		CreatedAt: u.now(),
	}
	if err := u.repo.PutMessage(ctx, userMsg); err != nil {
		return nil, goerr.Wrap(err, "failed to save user message", goerr.T(model.ErrTagPersistence))
	}

	assistantMsg := &model.Message{
		ID:             model.NewMessageID(),
		ConversationID: conv.ID,
		Role:           model.MessageRoleAssistant,
		Content:        gen.Answer,
		Metadata: model.MessageMetadata{
			ProcessingTimeMillis: elapsed,
			TokensUsed:           gen.TokensUsed,
			Model:                gen.Model,
		},
		CreatedAt: u.now(),
	}
	if err := u.repo.PutMessage(ctx, assistantMsg); err != nil {
		// The user message is already stored and the store has no multi-row
		// transaction, so report the orphan instead of rolling back.
		return nil, goerr.Wrap(err, "failed to save assistant message",
			goerr.T(model.ErrTagPersistence),
			goerr.V("orphaned_user_message_id", userMsg.ID))
	}

	now := u.now()
	conv.Metadata.TotalMessages += 2
	conv.Metadata.LastQueryTime = now
	conv.Metadata.TotalTokensUsed += gen.TokensUsed
	conv.UpdatedAt = now
	if err := u.repo.UpdateConversation(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to update conversation metadata",
			goerr.T(model.ErrTagPersistence),
			goerr.V("conversation_id", conv.ID))
	}

	logging.From(ctx).Debug("query round completed",
		"conversation_id", conv.ID,
		"tokens_used", gen.TokensUsed,
		"elapsed_ms", elapsed)

	return &QueryResult{
		ConversationID:       conv.ID,
		Query:                input.Query,
		Answer:               gen.Answer,
		TokensUsed:           gen.TokensUsed,
		Model:                gen.Model,
		ProcessingTimeMillis: elapsed,
		MessageID:            assistantMsg.ID,
	}, nil
}
