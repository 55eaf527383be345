package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/atlas/pkg/model"
)

// Repository defines the interface for conversation data persistence and
// vector search over the document index. Lookup methods return (nil, nil)
// when no matching record exists; an error always means the store call
// itself failed.
type Repository interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// PutUser saves a user
	PutUser(ctx context.Context, user *model.User) error

	// PutConversation saves a conversation
	PutConversation(ctx context.Context, conv *model.Conversation) error

	// GetConversationByOwner retrieves a conversation only when it is owned
	// by the given user and has the given status
	GetConversationByOwner(ctx context.Context, id model.ConversationID, ownerID model.UserID, status model.ConversationStatus) (*model.Conversation, error)

	// UpdateConversation overwrites an existing conversation
	UpdateConversation(ctx context.Context, conv *model.Conversation) error

	// ListConversationsByOwner retrieves conversations of a user with the
	// given status, most recently updated first
	ListConversationsByOwner(ctx context.Context, ownerID model.UserID, status model.ConversationStatus) ([]*model.Conversation, error)

	// PutMessage saves a message
	PutMessage(ctx context.Context, msg *model.Message) error

	// ListMessages retrieves messages of a conversation ordered by creation
	// time. With newestFirst the most recent message comes first. A limit of
	// 0 means no limit.
	ListMessages(ctx context.Context, conversationID model.ConversationID, newestFirst bool, limit int) ([]*model.Message, error)

	// CountMessages returns the number of messages in a conversation
	CountMessages(ctx context.Context, conversationID model.ConversationID) (int, error)

	// LatestMessage retrieves the most recent message of a conversation
	LatestMessage(ctx context.Context, conversationID model.ConversationID) (*model.Message, error)

	// DeleteMessagesByConversation removes all messages of a conversation
	DeleteMessagesByConversation(ctx context.Context, conversationID model.ConversationID) error

	// PutDocument saves a document into the vector index
	PutDocument(ctx context.Context, doc *model.Document) error

	// SearchSimilarDocuments performs vector search and returns the documents
	// nearest to the embedding, most similar first
	SearchSimilarDocuments(ctx context.Context, embedding firestore.Vector32, limit int) ([]*model.RetrievedDocument, error)
}
