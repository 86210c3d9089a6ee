package hookgen

import "context"

// LLMClient abstracts the generative-text backend so the generator can be
// exercised without network access.
type LLMClient interface {
	// Complete sends a single-turn prompt and returns the raw model text.
	Complete(ctx context.Context, prompt string) (string, error)
}
