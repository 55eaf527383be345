package model

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type DocumentID string

// NewDocumentID generates a new unique DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

// Document is an indexed knowledge source searchable by vector similarity
type Document struct {
	ID        DocumentID
	Content   string
	Embedding firestore.Vector32
	CreatedAt time.Time
}

// RetrievedDocument is a search hit supplied to prompt construction. It is
// transient and never persisted; similarity rank is implicit in return order.
type RetrievedDocument struct {
	DocumentID DocumentID
	Content    string
}
