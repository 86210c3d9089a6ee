// Package hookgen turns curated content into short attention-grabbing hook
// variants for social repurposing, via a generative-text backend.
package hookgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// FallbackMessage is the degenerate one-element result the HTTP surface
// returns when generation fails. Kept for parity with the dashboard copy.
const FallbackMessage = "Error al generar hooks. Revisa tu conexión."

// Generator produces hook variants for a piece of source content.
type Generator struct {
	llm      LLMClient
	variants int
	logger   logger.Logger
}

// NewGenerator creates a Generator producing the given number of variants
// per call.
func NewGenerator(llm LLMClient, variants int, log logger.Logger) *Generator {
	return &Generator{
		llm:      llm,
		variants: variants,
		logger:   log,
	}
}

// GenerateHooks asks the backend for hook variants of the source text.
//
// The contract distinguishes three outcomes:
//   - success: the parsed hook sequence, possibly empty when the model
//     answered with valid JSON that is not an array;
//   - failure: a non-nil error for transport failures and unparseable
//     output. The error never escapes past the HTTP handler, which folds
//     it into the one-element fallback result.
func (g *Generator) GenerateHooks(ctx context.Context, sourceText string, cfg models.HookConfig) ([]string, error) {
	prompt := buildPrompt(sourceText, cfg, g.variants)

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete prompt: %w", err)
	}

	hooks, err := parseHooks(raw)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Hooks generated",
		logger.Int("count", len(hooks)),
		logger.String("type", string(cfg.Type)),
		logger.String("platform", string(cfg.Platform)),
	)
	return hooks, nil
}

// parseHooks decodes the model output as a JSON array of strings. Valid JSON
// that is not an array degrades to an empty sequence; invalid JSON is an
// error.
func parseHooks(raw string) ([]string, error) {
	raw = stripCodeFence(raw)

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	items, ok := value.([]any)
	if !ok {
		return []string{}, nil
	}

	hooks := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			hooks = append(hooks, s)
		}
	}
	return hooks, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// sometimes add despite the JSON-only instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
