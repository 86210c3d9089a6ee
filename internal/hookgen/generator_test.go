package hookgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUBYKA-DEV/content-scrape/internal/config"
	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
)

// mockLLM returns a canned completion or error.
type mockLLM struct {
	output string
	err    error

	lastPrompt string
}

func (m *mockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func TestGenerateHooks_Success(t *testing.T) {
	llm := &mockLLM{output: `["Hook uno", "Hook dos", "Hook tres"]`}
	gen := NewGenerator(llm, 3, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido de prueba", models.DefaultHookConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{"Hook uno", "Hook dos", "Hook tres"}, hooks)
}

func TestGenerateHooks_PromptCarriesParameters(t *testing.T) {
	llm := &mockLLM{output: `[]`}
	gen := NewGenerator(llm, 3, logger.NewNop())

	cfg := models.HookConfig{
		Type:     models.HookQuestion,
		Tone:     models.ToneProvocative,
		Platform: models.PlatformTwitter,
	}
	_, err := gen.GenerateHooks(context.Background(), "texto fuente", cfg)
	require.NoError(t, err)

	// The prompt uses the Spanish display labels, not the enum values.
	assert.Contains(t, llm.lastPrompt, "Pregunta")
	assert.Contains(t, llm.lastPrompt, "Provocador")
	assert.Contains(t, llm.lastPrompt, "Twitter")
	assert.Contains(t, llm.lastPrompt, "texto fuente")
	assert.Contains(t, llm.lastPrompt, "3 variantes")
}

func TestGenerateHooks_CodeFencedOutput(t *testing.T) {
	llm := &mockLLM{output: "```json\n[\"Hook uno\", \"Hook dos\"]\n```"}
	gen := NewGenerator(llm, 2, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido", models.DefaultHookConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{"Hook uno", "Hook dos"}, hooks)
}

func TestGenerateHooks_NonArrayJSON_Degrades(t *testing.T) {
	// Valid JSON that is not an array yields an empty result, not an error.
	llm := &mockLLM{output: `{"hooks": ["uno"]}`}
	gen := NewGenerator(llm, 3, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido", models.DefaultHookConfig())

	require.NoError(t, err)
	assert.NotNil(t, hooks)
	assert.Empty(t, hooks)
}

func TestGenerateHooks_InvalidJSON_Errors(t *testing.T) {
	llm := &mockLLM{output: "Claro, aquí tienes tus hooks:"}
	gen := NewGenerator(llm, 3, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido", models.DefaultHookConfig())

	require.Error(t, err)
	assert.Nil(t, hooks)
}

func TestGenerateHooks_TransportError(t *testing.T) {
	llm := &mockLLM{err: errors.New("connection reset")}
	gen := NewGenerator(llm, 3, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido", models.DefaultHookConfig())

	require.Error(t, err)
	assert.Nil(t, hooks)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGenerateHooks_SkipsNonStringElements(t *testing.T) {
	llm := &mockLLM{output: `["Hook uno", 42, "Hook dos", null]`}
	gen := NewGenerator(llm, 3, logger.NewNop())

	hooks, err := gen.GenerateHooks(context.Background(), "contenido", models.DefaultHookConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{"Hook uno", "Hook dos"}, hooks)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `["a"]`, want: `["a"]`},
		{name: "json fence", in: "```json\n[\"a\"]\n```", want: `["a"]`},
		{name: "plain fence", in: "```\n[\"a\"]\n```", want: `["a"]`},
		{name: "padded", in: "  [\"a\"]  ", want: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestNewAnthropicLLM_RequiresKey(t *testing.T) {
	_, err := NewAnthropicLLM(config.AIConfig{Model: "claude-sonnet-4-5", MaxTokens: 1024})
	require.Error(t, err)

	llm, err := NewAnthropicLLM(config.AIConfig{APIKey: "sk-test", Model: "claude-sonnet-4-5", MaxTokens: 1024})
	require.NoError(t, err)
	assert.NotNil(t, llm)
}

func TestFallbackMessage(t *testing.T) {
	assert.True(t, strings.HasPrefix(FallbackMessage, "Error al generar hooks"))
}
