package chat

import (
	"time"

	"github.com/m-mizutani/atlas/pkg/adapter"
	"github.com/m-mizutani/atlas/pkg/repository"
)

const (
	defaultHistoryWindow = 10
	defaultTopK          = 3
)

// UseCase provides conversation management and query processing. It is
// stateless per call; every operation is an independent sequential pipeline
// over the repository and the Gemini adapter.
type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini

	historyWindow int
	topK          int
	now           func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithHistoryWindow sets how many recent messages are supplied as generation
// context
func WithHistoryWindow(n int) Option {
	return func(uc *UseCase) {
		uc.historyWindow = n
	}
}

// WithTopK sets how many documents are retrieved per query
func WithTopK(k int) Option {
	return func(uc *UseCase) {
		uc.topK = k
	}
}

// WithNow overrides the clock, mainly for tests
func WithNow(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new chat UseCase instance
func New(repo repository.Repository, gemini adapter.Gemini, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:          repo,
		gemini:        gemini,
		historyWindow: defaultHistoryWindow,
		topK:          defaultTopK,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
