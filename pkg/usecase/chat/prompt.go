package chat

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/atlas/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/query.md
var queryPromptRaw string

var queryPromptTmpl = template.Must(template.New("query").Parse(queryPromptRaw))

// assembleContext formats retrieved documents into a single text block, one
// document per paragraph separated by a blank line. An empty document list
// yields an empty string; the prompt still works and instructs the model to
// ask clarifying questions instead.
func assembleContext(docs []*model.RetrievedDocument) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf("documentId: %s\nContent: %s", doc.DocumentID, doc.Content))
	}
	return strings.Join(parts, "\n\n")
}

// buildPrompt renders the instruction text for a query round. The output is
// deterministic for a given (query, context) pair, and the fixed instruction
// sections are always present regardless of context emptiness.
func buildPrompt(query, context string) (string, error) {
	var buf bytes.Buffer
	if err := queryPromptTmpl.Execute(&buf, map[string]any{
		"Query":   query,
		"Context": context,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute query prompt template")
	}
	return buf.String(), nil
}
