package hookgen

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/KUBYKA-DEV/content-scrape/internal/config"
)

// AnthropicLLM implements LLMClient against the Anthropic Messages API.
type AnthropicLLM struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicLLM creates the production LLM client from configuration.
// The API key comes from the environment (API_KEY).
func NewAnthropicLLM(cfg config.AIConfig) (*AnthropicLLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key missing; set API_KEY")
	}
	return &AnthropicLLM{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
	}, nil
}

// Complete sends the prompt as a single user message and concatenates the
// text blocks of the reply.
func (a *AnthropicLLM) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic: empty completion")
	}
	return sb.String(), nil
}
