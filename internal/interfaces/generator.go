package interfaces

import "context"

// TextGenerator produces a text completion for a natural-language prompt.
// Options that a page does not care about are left at their zero value.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions carries the per-call knobs a page may set.
type GenerateOptions struct {
	// Model overrides the configured default model when non-empty.
	Model string
	// Temperature is applied only when non-nil; the service default is
	// used otherwise.
	Temperature *float32
}

// Embedder maps text to a dense vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
