package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/atlas/pkg/adapter"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// mockGemini is a mock implementation of adapter.Gemini for testing
type mockGemini struct {
	generateFunc  func(ctx context.Context, prompt, extraContext string, history []adapter.Turn) (*adapter.Generation, error)
	titleFunc     func(ctx context.Context, query string) (string, error)
	embeddingFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockGemini) Generate(ctx context.Context, prompt, extraContext string, history []adapter.Turn) (*adapter.Generation, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, extraContext, history)
	}
	return &adapter.Generation{
		Answer:     "generated answer",
		TokensUsed: 42,
		Model:      "gemini-test",
	}, nil
}

func (m *mockGemini) GenerateTitle(ctx context.Context, query string) (string, error) {
	if m.titleFunc != nil {
		return m.titleFunc(ctx, query)
	}
	return "Test Conversation", nil
}

func (m *mockGemini) Embedding(ctx context.Context, text string) ([]float32, error) {
	if m.embeddingFunc != nil {
		return m.embeddingFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// flakyRepo fails PutMessage after a number of successful calls
type flakyRepo struct {
	repository.Repository
	failAfter int
	calls     int
}

func (r *flakyRepo) PutMessage(ctx context.Context, msg *model.Message) error {
	r.calls++
	if r.calls > r.failAfter {
		return goerr.New("store write failed")
	}
	return r.Repository.PutMessage(ctx, msg)
}

var baseTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

// tick returns a clock that advances one second per call
func tick() func() time.Time {
	current := baseTime
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func seedUser(t *testing.T, repo repository.Repository) model.UserID {
	t.Helper()

	user := &model.User{
		ID:        model.NewUserID(),
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: baseTime,
	}
	gt.NoError(t, repo.PutUser(context.Background(), user))
	return user.ID
}

func seedConversation(t *testing.T, repo repository.Repository, ownerID model.UserID) *model.Conversation {
	t.Helper()

	conv := &model.Conversation{
		ID:        model.NewConversationID(),
		OwnerID:   ownerID,
		Title:     "Seeded Conversation",
		Status:    model.ConversationStatusActive,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	gt.NoError(t, repo.PutConversation(context.Background(), conv))
	return conv
}

func seedMessage(t *testing.T, repo repository.Repository, conversationID model.ConversationID, role model.MessageRole, content string, createdAt time.Time) {
	t.Helper()

	gt.NoError(t, repo.PutMessage(context.Background(), &model.Message{
		ID:             model.NewMessageID(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      createdAt,
	}))
}
