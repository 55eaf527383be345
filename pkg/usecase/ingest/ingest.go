package ingest

import (
	"context"
	"io"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/atlas/pkg/adapter"
	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/repository"
	"github.com/m-mizutani/atlas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Manifest describes a set of documents to index
type Manifest struct {
	Documents []ManifestEntry `yaml:"documents"`
}

// ManifestEntry is one document source: either inline content or the key of
// a Cloud Storage object
type ManifestEntry struct {
	ID      string `yaml:"id,omitempty"`
	Content string `yaml:"content,omitempty"`
	Object  string `yaml:"object,omitempty"`
}

// UseCase indexes corpus documents: resolve content, embed it and store the
// document with its vector
type UseCase struct {
	repo    repository.Repository
	gemini  adapter.Gemini
	storage adapter.Storage
	now     func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithNow overrides the clock, mainly for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new ingest UseCase instance. The storage may be nil when the
// manifest only carries inline content.
func New(repo repository.Repository, gemini adapter.Gemini, storage adapter.Storage, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:    repo,
		gemini:  gemini,
		storage: storage,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Run reads a YAML manifest and indexes every document it lists. It returns
// the number of documents stored.
func (u *UseCase) Run(ctx context.Context, manifest io.Reader) (int, error) {
	data, err := io.ReadAll(manifest)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return 0, goerr.Wrap(err, "failed to parse manifest YAML")
	}
	if len(m.Documents) == 0 {
		return 0, goerr.New("manifest lists no documents")
	}

	logger := logging.From(ctx)
	for _, entry := range m.Documents {
		content, err := u.resolveContent(ctx, entry)
		if err != nil {
			return 0, err
		}

		vector, err := u.gemini.Embedding(ctx, content)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to embed document", goerr.V("document_id", entry.ID))
		}

		id := model.DocumentID(entry.ID)
		if id == "" {
			id = model.NewDocumentID()
		}

		doc := &model.Document{
			ID:        id,
			Content:   content,
			Embedding: firestore.Vector32(vector),
			CreatedAt: u.now(),
		}
		if err := u.repo.PutDocument(ctx, doc); err != nil {
			return 0, goerr.Wrap(err, "failed to store document", goerr.V("document_id", id))
		}

		logger.Info("document indexed", "document_id", id, "bytes", len(content))
	}

	return len(m.Documents), nil
}

func (u *UseCase) resolveContent(ctx context.Context, entry ManifestEntry) (string, error) {
	switch {
	case entry.Content != "":
		return entry.Content, nil

	case entry.Object != "":
		if u.storage == nil {
			return "", goerr.New("manifest references an object but no storage is configured", goerr.V("object", entry.Object))
		}

		reader, err := u.storage.Get(ctx, entry.Object)
		if err != nil {
			return "", goerr.Wrap(err, "failed to open corpus object", goerr.V("object", entry.Object))
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read corpus object", goerr.V("object", entry.Object))
		}
		return string(data), nil

	default:
		return "", goerr.New("manifest entry has neither content nor object", goerr.V("document_id", entry.ID))
	}
}
