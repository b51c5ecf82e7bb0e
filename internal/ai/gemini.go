package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiCompleter implements Completer using Google's Gemini models.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiCompleter initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiCompleter(ctx context.Context, apiKey string) (*GeminiCompleter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)

	// Low temperature: extraction prompts need deterministic structure far
	// more than creative phrasing.
	model.SetTemperature(0.1)
	model.SetTopP(1)
	model.SetMaxOutputTokens(1024)

	return &GeminiCompleter{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (g *GeminiCompleter) Close() {
	g.client.Close()
}

// Complete streams a completion for the prompt and concatenates the chunks
// into one final string.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	stream := g.model.GenerateContentStream(ctx, genai.Text(prompt))

	var out strings.Builder
	for {
		resp, err := stream.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("gemini: stream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out.WriteString(string(txt))
			}
		}
	}

	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("gemini: API returned empty completion")
	}
	return out.String(), nil
}
