package chat_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/atlas/pkg/usecase/chat"
	"github.com/m-mizutani/gt"
)

func TestAssembleContext(t *testing.T) {
	t.Run("empty input yields empty string", func(t *testing.T) {
		gt.Equal(t, chat.AssembleContextForTest(nil), "")
		gt.Equal(t, chat.AssembleContextForTest([]*model.RetrievedDocument{}), "")
	})

	t.Run("one document per paragraph", func(t *testing.T) {
		docs := []*model.RetrievedDocument{
			{DocumentID: "doc-1", Content: "first content"},
			{DocumentID: "doc-2", Content: "second content"},
		}

		result := chat.AssembleContextForTest(docs)
		gt.Equal(t, result, "documentId: doc-1\nContent: first content\n\ndocumentId: doc-2\nContent: second content")
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := chat.BuildPromptForTest("What is the refund policy?", "documentId: doc-1\nContent: refunds in 30 days")
	gt.NoError(t, err)

	gt.S(t, prompt).Contains("You are Atlas AI")
	gt.S(t, prompt).Contains("What is the refund policy?")
	gt.S(t, prompt).Contains("documentId: doc-1")
	gt.S(t, prompt).Contains("Accuracy First")
	gt.S(t, prompt).Contains("Handling Insufficient Information")
	gt.S(t, prompt).Contains("Ask targeted clarifying questions")
}

func TestBuildPromptEmptyContext(t *testing.T) {
	prompt, err := chat.BuildPromptForTest("anything", "")
	gt.NoError(t, err)

	// The fixed instruction sections stay present even without context
	gt.S(t, prompt).Contains("You are Atlas AI")
	gt.S(t, prompt).Contains("Handling Insufficient Information")
	gt.S(t, prompt).Contains("Response Format")
}

func TestBuildPromptDeterministic(t *testing.T) {
	first, err := chat.BuildPromptForTest("query", "context")
	gt.NoError(t, err)
	second, err := chat.BuildPromptForTest("query", "context")
	gt.NoError(t, err)

	gt.Equal(t, first, second)
}

func TestTruncatePreview(t *testing.T) {
	short := "short message"
	gt.Equal(t, chat.TruncatePreviewForTest(short), short)

	long := ""
	for range 15 {
		long += "0123456789"
	}
	truncated := chat.TruncatePreviewForTest(long)
	gt.Equal(t, len([]rune(truncated)), 103)
	gt.True(t, strings.HasSuffix(truncated, "..."))
	gt.S(t, truncated).Contains("0123456789")
}
