package llm

import (
	"context"
)

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Model names the backing model, for logging and metrics.
	Model() string
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
