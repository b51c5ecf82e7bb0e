package ai

import (
	"context"
)

// Completer defines the contract for the text-completion collaborator.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// and for substituting fakes in tests.
type Completer interface {
	// Complete submits a prompt and returns the model's full completion text.
	// Streaming backends concatenate their incremental chunks into one
	// final string before returning.
	Complete(ctx context.Context, prompt string) (string, error)
}
