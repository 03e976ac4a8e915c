package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the backend answers without any message.
var ErrEmptyResponse = errors.New("empty response from completion API")

// Client defines the interface for LLM clients.
type Client interface {
	// Request sends a system message and a user prompt and returns the generated text.
	Request(ctx context.Context, systemMessage, userPrompt string) (string, error)
}
