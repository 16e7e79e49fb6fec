package generator

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"
)

const maxOutputTokens = 4096

// GeminiGenerator is a thin wrapper around the official genai client. It only
// focuses on the API call itself; the coordinator owns timeouts and failure
// isolation.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator constructs a generator for the given model. The API key
// is read by the genai client from its standard environment variables.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

// Generate performs exactly one model call and returns the generated text.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
			MaxOutputTokens:   maxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", req.Kind, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate %s: empty model response", req.Kind)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
