package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/repository"
	"github.com/m-mizutani/gt"
)

var memoryBase = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func putMessage(t *testing.T, repo repository.Repository, conversationID model.ConversationID, content string, createdAt time.Time) {
	t.Helper()

	gt.NoError(t, repo.PutMessage(context.Background(), &model.Message{
		ID:             model.NewMessageID(),
		ConversationID: conversationID,
		Role:           model.MessageRoleUser,
		Content:        content,
		CreatedAt:      createdAt,
	}))
}

func TestMemoryMessageOrdering(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	convID := model.NewConversationID()

	// Stored out of order on purpose
	putMessage(t, repo, convID, "third", memoryBase.Add(3*time.Minute))
	putMessage(t, repo, convID, "first", memoryBase.Add(time.Minute))
	putMessage(t, repo, convID, "second", memoryBase.Add(2*time.Minute))

	chrono, err := repo.ListMessages(ctx, convID, false, 0)
	gt.NoError(t, err)
	gt.A(t, chrono).Length(3)
	gt.Equal(t, chrono[0].Content, "first")
	gt.Equal(t, chrono[2].Content, "third")

	newest, err := repo.ListMessages(ctx, convID, true, 2)
	gt.NoError(t, err)
	gt.A(t, newest).Length(2)
	gt.Equal(t, newest[0].Content, "third")
	gt.Equal(t, newest[1].Content, "second")
}

func TestMemoryMessageTieBreak(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	convID := model.NewConversationID()

	// Equal timestamps keep insertion order
	putMessage(t, repo, convID, "question", memoryBase)
	putMessage(t, repo, convID, "answer", memoryBase)

	msgs, err := repo.ListMessages(ctx, convID, false, 0)
	gt.NoError(t, err)
	gt.A(t, msgs).Length(2)
	gt.Equal(t, msgs[0].Content, "question")
	gt.Equal(t, msgs[1].Content, "answer")
}

func TestMemoryLatestMessage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	convID := model.NewConversationID()

	latest, err := repo.LatestMessage(ctx, convID)
	gt.NoError(t, err)
	gt.Nil(t, latest)

	putMessage(t, repo, convID, "older", memoryBase)
	putMessage(t, repo, convID, "newer", memoryBase.Add(time.Minute))

	latest, err = repo.LatestMessage(ctx, convID)
	gt.NoError(t, err)
	gt.V(t, latest).NotNil()
	gt.Equal(t, latest.Content, "newer")
}

func TestMemoryDeleteMessages(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	convID := model.NewConversationID()
	otherID := model.NewConversationID()

	putMessage(t, repo, convID, "doomed", memoryBase)
	putMessage(t, repo, otherID, "survivor", memoryBase)

	gt.NoError(t, repo.DeleteMessagesByConversation(ctx, convID))

	count, err := repo.CountMessages(ctx, convID)
	gt.NoError(t, err)
	gt.Equal(t, count, 0)

	count, err = repo.CountMessages(ctx, otherID)
	gt.NoError(t, err)
	gt.Equal(t, count, 1)
}

func TestMemoryConversationLookup(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	ownerID := model.NewUserID()

	conv := &model.Conversation{
		ID:        model.NewConversationID(),
		OwnerID:   ownerID,
		Title:     "lookup target",
		Status:    model.ConversationStatusActive,
		CreatedAt: memoryBase,
		UpdatedAt: memoryBase,
	}
	gt.NoError(t, repo.PutConversation(ctx, conv))

	found, err := repo.GetConversationByOwner(ctx, conv.ID, ownerID, model.ConversationStatusActive)
	gt.NoError(t, err)
	gt.V(t, found).NotNil()
	gt.Equal(t, found.Title, "lookup target")

	// Wrong owner, wrong status and unknown ID all miss without error
	missed, err := repo.GetConversationByOwner(ctx, conv.ID, model.NewUserID(), model.ConversationStatusActive)
	gt.NoError(t, err)
	gt.Nil(t, missed)

	missed, err = repo.GetConversationByOwner(ctx, conv.ID, ownerID, model.ConversationStatusDeleted)
	gt.NoError(t, err)
	gt.Nil(t, missed)

	missed, err = repo.GetConversationByOwner(ctx, model.NewConversationID(), ownerID, model.ConversationStatusActive)
	gt.NoError(t, err)
	gt.Nil(t, missed)
}

func TestMemoryListConversationsByOwner(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	ownerID := model.NewUserID()

	for i := range 3 {
		gt.NoError(t, repo.PutConversation(ctx, &model.Conversation{
			ID:        model.NewConversationID(),
			OwnerID:   ownerID,
			Title:     fmt.Sprintf("conversation %d", i),
			Status:    model.ConversationStatusActive,
			CreatedAt: memoryBase,
			UpdatedAt: memoryBase.Add(time.Duration(i) * time.Hour),
		}))
	}

	convs, err := repo.ListConversationsByOwner(ctx, ownerID, model.ConversationStatusActive)
	gt.NoError(t, err)
	gt.A(t, convs).Length(3)
	gt.Equal(t, convs[0].Title, "conversation 2")
	gt.Equal(t, convs[2].Title, "conversation 0")
}

func TestMemoryStoredValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	user := &model.User{ID: model.NewUserID(), Email: "a@example.com", CreatedAt: memoryBase}
	gt.NoError(t, repo.PutUser(ctx, user))
	user.Email = "mutated@example.com"

	stored, err := repo.GetUser(ctx, user.ID)
	gt.NoError(t, err)
	gt.Equal(t, stored.Email, "a@example.com")
}

func TestMemorySearchSimilarDocuments(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	docs := []*model.Document{
		{ID: "exact", Content: "exact match", Embedding: []float32{1, 0, 0}},
		{ID: "close", Content: "close match", Embedding: []float32{0.9, 0.1, 0}},
		{ID: "far", Content: "unrelated", Embedding: []float32{0, 0, 1}},
	}
	for _, doc := range docs {
		doc.CreatedAt = memoryBase
		gt.NoError(t, repo.PutDocument(ctx, doc))
	}

	results, err := repo.SearchSimilarDocuments(ctx, []float32{1, 0, 0}, 2)
	gt.NoError(t, err)
	gt.A(t, results).Length(2)
	gt.Equal(t, results[0].DocumentID, model.DocumentID("exact"))
	gt.Equal(t, results[1].DocumentID, model.DocumentID("close"))
}
