package ai

import "context"

// Generator produces a free-text completion for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Embedder converts text into a vector representation.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
