package adapter

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// Turn is a single prior exchange supplied as generation context
type Turn struct {
	Role    string
	Content string
}

// Generation is the outcome of a model call with its usage accounting
type Generation struct {
	Answer     string
	TokensUsed int
	Model      string
}

// Gemini is the interface for answer generation, title generation and query
// embedding
type Gemini interface {
	// Generate produces an answer for the prompt. The history is supplied in
	// chronological order; extraContext is appended to the prompt when not
	// empty.
	Generate(ctx context.Context, prompt, extraContext string, history []Turn) (*Generation, error)

	// GenerateTitle produces a short conversation title summarizing the
	// opening query
	GenerateTitle(ctx context.Context, query string) (string, error)

	// Embedding computes the embedding vector of a text
	Embedding(ctx context.Context, text string) ([]float32, error)
}

const titlePrompt = `Generate a short title (at most 8 words) for a conversation that opens with the following query. Reply with the title only, no quotes.

Query: `

type GeminiClient struct {
	client          *genai.Client
	generativeModel string
	embeddingModel  string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

func WithEmbeddingModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.embeddingModel = model
	}
}

func NewGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-2.5-flash",
		embeddingModel:  "gemini-embedding-001",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt, extraContext string, history []Turn) (*Generation, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	text := prompt
	if extraContext != "" {
		text += "\n\nAdditional context:\n" + extraContext
	}
	contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content")
	}

	answer, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	if resp.UsageMetadata == nil {
		return nil, goerr.New("response is missing usage metadata")
	}

	model := resp.ModelVersion
	if model == "" {
		model = g.generativeModel
	}

	return &Generation{
		Answer:     answer,
		TokensUsed: int(resp.UsageMetadata.TotalTokenCount),
		Model:      model,
	}, nil
}

func (g *GeminiClient) GenerateTitle(ctx context.Context, query string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(titlePrompt+query, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate title")
	}

	title, err := firstText(resp)
	if err != nil {
		return "", err
	}

	return strings.Trim(strings.TrimSpace(title), `"`), nil
}

func (g *GeminiClient) Embedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed content")
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, goerr.New("embedding response is empty")
	}

	return resp.Embeddings[0].Values, nil
}

// firstText extracts the first text part of the first candidate
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", goerr.New("invalid response structure from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}

	return "", goerr.New("response contains no text part")
}
