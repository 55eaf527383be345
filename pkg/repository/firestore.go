package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionUsers         = "users"
	collectionConversations = "conversations"
	collectionMessages      = "messages"
	collectionDocuments     = "documents"
)

// Firestore implements Repository using Cloud Firestore. Documents carry
// their embedding as firestore.Vector32 and are searched with FindNearest.
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	doc, err := f.client.Collection(collectionUsers).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", id))
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("user_id", id))
	}
	return &user, nil
}

func (f *Firestore) PutUser(ctx context.Context, user *model.User) error {
	if _, err := f.client.Collection(collectionUsers).Doc(string(user.ID)).Set(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("user_id", user.ID))
	}
	return nil
}

func (f *Firestore) PutConversation(ctx context.Context, conv *model.Conversation) error {
	if _, err := f.client.Collection(collectionConversations).Doc(string(conv.ID)).Set(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to put conversation", goerr.V("conversation_id", conv.ID))
	}
	return nil
}

func (f *Firestore) GetConversationByOwner(ctx context.Context, id model.ConversationID, ownerID model.UserID, st model.ConversationStatus) (*model.Conversation, error) {
	doc, err := f.client.Collection(collectionConversations).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get conversation", goerr.V("conversation_id", id))
	}

	var conv model.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, goerr.Wrap(err, "failed to decode conversation", goerr.V("conversation_id", id))
	}

	if conv.OwnerID != ownerID || conv.Status != st {
		return nil, nil
	}
	return &conv, nil
}

func (f *Firestore) UpdateConversation(ctx context.Context, conv *model.Conversation) error {
	if _, err := f.client.Collection(collectionConversations).Doc(string(conv.ID)).Set(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to update conversation", goerr.V("conversation_id", conv.ID))
	}
	return nil
}

func (f *Firestore) ListConversationsByOwner(ctx context.Context, ownerID model.UserID, status model.ConversationStatus) ([]*model.Conversation, error) {
	iter := f.client.Collection(collectionConversations).
		Where("OwnerID", "==", string(ownerID)).
		Where("Status", "==", string(status)).
		OrderBy("UpdatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var convs []*model.Conversation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate conversations", goerr.V("owner_id", ownerID))
		}

		var conv model.Conversation
		if err := doc.DataTo(&conv); err != nil {
			return nil, goerr.Wrap(err, "failed to decode conversation", goerr.V("doc_id", doc.Ref.ID))
		}
		convs = append(convs, &conv)
	}

	return convs, nil
}

func (f *Firestore) PutMessage(ctx context.Context, msg *model.Message) error {
	if _, err := f.client.Collection(collectionMessages).Doc(string(msg.ID)).Set(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to put message", goerr.V("message_id", msg.ID))
	}
	return nil
}

func (f *Firestore) messagesQuery(conversationID model.ConversationID) firestore.Query {
	return f.client.Collection(collectionMessages).
		Where("ConversationID", "==", string(conversationID))
}

func (f *Firestore) ListMessages(ctx context.Context, conversationID model.ConversationID, newestFirst bool, limit int) ([]*model.Message, error) {
	dir := firestore.Asc
	if newestFirst {
		dir = firestore.Desc
	}

	q := f.messagesQuery(conversationID).OrderBy("CreatedAt", dir)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var msgs []*model.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages", goerr.V("conversation_id", conversationID))
		}

		var msg model.Message
		if err := doc.DataTo(&msg); err != nil {
			return nil, goerr.Wrap(err, "failed to decode message", goerr.V("doc_id", doc.Ref.ID))
		}
		msgs = append(msgs, &msg)
	}

	return msgs, nil
}

func (f *Firestore) CountMessages(ctx context.Context, conversationID model.ConversationID) (int, error) {
	query := f.messagesQuery(conversationID)
	result, err := query.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count messages", goerr.V("conversation_id", conversationID))
	}

	value, ok := result["count"]
	if !ok {
		return 0, goerr.New("count aggregation result is missing", goerr.V("conversation_id", conversationID))
	}
	count, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation value", goerr.V("value", value))
	}

	return int(count.GetIntegerValue()), nil
}

func (f *Firestore) LatestMessage(ctx context.Context, conversationID model.ConversationID) (*model.Message, error) {
	msgs, err := f.ListMessages(ctx, conversationID, true, 1)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs[0], nil
}

func (f *Firestore) DeleteMessagesByConversation(ctx context.Context, conversationID model.ConversationID) error {
	iter := f.messagesQuery(conversationID).Documents(ctx)
	defer iter.Stop()

	bw := f.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate messages for deletion", goerr.V("conversation_id", conversationID))
		}

		job, err := bw.Delete(doc.Ref)
		if err != nil {
			return goerr.Wrap(err, "failed to enqueue message deletion", goerr.V("doc_id", doc.Ref.ID))
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to delete message", goerr.V("conversation_id", conversationID))
		}
	}

	return nil
}

func (f *Firestore) PutDocument(ctx context.Context, doc *model.Document) error {
	if _, err := f.client.Collection(collectionDocuments).Doc(string(doc.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put document", goerr.V("document_id", doc.ID))
	}
	return nil
}

func (f *Firestore) SearchSimilarDocuments(ctx context.Context, embedding firestore.Vector32, limit int) ([]*model.RetrievedDocument, error) {
	iter := f.client.Collection(collectionDocuments).
		FindNearest("Embedding", embedding, limit, firestore.DistanceMeasureCosine, nil).
		Documents(ctx)
	defer iter.Stop()

	var docs []*model.RetrievedDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search documents")
		}

		var d model.Document
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document", goerr.V("doc_id", doc.Ref.ID))
		}
		docs = append(docs, &model.RetrievedDocument{
			DocumentID: d.ID,
			Content:    d.Content,
		})
	}

	return docs, nil
}
