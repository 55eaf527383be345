package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/atlas/pkg/model"
)

// Memory implements Repository with in-process maps. It is used by unit
// tests and local experiments; it is not safe for durable storage.
type Memory struct {
	mu            sync.Mutex
	users         map[model.UserID]*model.User
	conversations map[model.ConversationID]*model.Conversation
	messages      map[model.ConversationID][]*model.Message
	documents     []*model.Document
}

// NewMemory creates a new in-memory repository
func NewMemory() *Memory {
	return &Memory{
		users:         make(map[model.UserID]*model.User),
		conversations: make(map[model.ConversationID]*model.Conversation),
		messages:      make(map[model.ConversationID][]*model.Message),
	}
}

func (m *Memory) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *Memory) PutUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *Memory) PutConversation(ctx context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *conv
	m.conversations[conv.ID] = &copied
	return nil
}

func (m *Memory) GetConversationByOwner(ctx context.Context, id model.ConversationID, ownerID model.UserID, status model.ConversationStatus) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[id]
	if !ok || conv.OwnerID != ownerID || conv.Status != status {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (m *Memory) UpdateConversation(ctx context.Context, conv *model.Conversation) error {
	return m.PutConversation(ctx, conv)
}

func (m *Memory) ListConversationsByOwner(ctx context.Context, ownerID model.UserID, status model.ConversationStatus) ([]*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var convs []*model.Conversation
	for _, conv := range m.conversations {
		if conv.OwnerID != ownerID || conv.Status != status {
			continue
		}
		copied := *conv
		convs = append(convs, &copied)
	}

	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (m *Memory) PutMessage(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *msg
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], &copied)
	return nil
}

func (m *Memory) ListMessages(ctx context.Context, conversationID model.ConversationID, newestFirst bool, limit int) ([]*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.messages[conversationID]
	msgs := make([]*model.Message, 0, len(stored))
	for _, msg := range stored {
		copied := *msg
		msgs = append(msgs, &copied)
	}

	// Insertion order breaks ties between equal timestamps
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	if newestFirst {
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
	}

	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (m *Memory) CountMessages(ctx context.Context, conversationID model.ConversationID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.messages[conversationID]), nil
}

func (m *Memory) LatestMessage(ctx context.Context, conversationID model.ConversationID) (*model.Message, error) {
	msgs, err := m.ListMessages(ctx, conversationID, true, 1)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs[0], nil
}

func (m *Memory) DeleteMessagesByConversation(ctx context.Context, conversationID model.ConversationID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.messages, conversationID)
	return nil
}

func (m *Memory) PutDocument(ctx context.Context, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *doc
	m.documents = append(m.documents, &copied)
	return nil
}

func (m *Memory) SearchSimilarDocuments(ctx context.Context, embedding firestore.Vector32, limit int) ([]*model.RetrievedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type scored struct {
		doc   *model.Document
		score float64
	}

	candidates := make([]scored, 0, len(m.documents))
	for _, doc := range m.documents {
		candidates = append(candidates, scored{doc: doc, score: cosineSimilarity(embedding, doc.Embedding)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	docs := make([]*model.RetrievedDocument, 0, len(candidates))
	for _, c := range candidates {
		docs = append(docs, &model.RetrievedDocument{
			DocumentID: c.doc.ID,
			Content:    c.doc.Content,
		})
	}
	return docs, nil
}

func cosineSimilarity(a, b firestore.Vector32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return -1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
