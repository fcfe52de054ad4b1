package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
)

func TestNewGeneratorService_Defaults(t *testing.T) {
	g := NewGeneratorService(&mockLLM{}, nil, GeneratorConfig{})

	assert.Equal(t, domain.DefaultFallbackTimeout, g.timeout)
	assert.Equal(t, defaultFallbackMaxTokens, g.maxTokens)
	assert.InDelta(t, defaultFallbackTemperature, g.temperature, 1e-9)
	assert.Nil(t, g.limiter)
}

func TestGeneratorConfigFromSettings(t *testing.T) {
	cfg := GeneratorConfigFromSettings(domain.FallbackSettings{Timeout: 3 * time.Second, RatePerMinute: 4})

	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.RatePerMinute)
}

func TestGeneratorService_Generate_Success(t *testing.T) {
	llm := &mockLLM{reply: "  Thoughtful AI builds agents.  "}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptFallbackSystem: "system prompt",
		driven.PromptFallbackUser:   "Question: %s",
	}}
	g := NewGeneratorService(llm, prompts, GeneratorConfig{})

	gen := g.Generate(context.Background(), "what is your pricing?")

	require.True(t, gen.OK())
	assert.Equal(t, "Thoughtful AI builds agents.", gen.Text)
	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, "system prompt", llm.messages[0].Content)
	assert.Equal(t, "Question: what is your pricing?", llm.messages[1].Content)
	assert.Equal(t, defaultFallbackMaxTokens, llm.opts.MaxTokens)
}

func TestGeneratorService_Generate_DefaultPrompts(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	g := NewGeneratorService(llm, nil, GeneratorConfig{})

	g.Generate(context.Background(), "pricing")

	require.Len(t, llm.messages, 2)
	assert.Contains(t, llm.messages[0].Content, "Thoughtful AI")
	assert.Equal(t, "pricing", llm.messages[1].Content)
}

func TestRenderUserPrompt(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		query string
		want  string
	}{
		{"placeholder", "Question: %s", "pricing", "Question: pricing"},
		{"literal percent kept", "Be 100% honest. Q: %s", "pricing", "Be 100% honest. Q: pricing"},
		{"no placeholder appends", "Answer briefly. 100% honest.\n", "what is the weather", "Answer briefly. 100% honest.\n\nwhat is the weather"},
		{"only first placeholder", "%s or %s", "a", "a or %s"},
		{"query with verbs", "Q: %s", "50%d off?", "Q: 50%d off?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderUserPrompt(tt.tmpl, tt.query))
		})
	}
}

func TestGeneratorService_Generate_UserPromptWithoutPlaceholder(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptFallbackUser: "Answer briefly. 100% honest.",
	}}
	g := NewGeneratorService(llm, prompts, GeneratorConfig{})

	require.True(t, g.Generate(context.Background(), "what is the weather").OK())
	require.Len(t, llm.messages, 2)
	assert.Equal(t, "Answer briefly. 100% honest.\n\nwhat is the weather", llm.messages[1].Content)
}

func TestGeneratorService_Generate_NilLLM(t *testing.T) {
	g := NewGeneratorService(nil, nil, GeneratorConfig{})

	gen := g.Generate(context.Background(), "q")
	assert.False(t, gen.OK())
	assert.ErrorIs(t, gen.Err, domain.ErrGeneratorDisabled)
}

func TestGeneratorService_Generate_EmptyReply(t *testing.T) {
	g := NewGeneratorService(&mockLLM{reply: "   "}, nil, GeneratorConfig{})

	gen := g.Generate(context.Background(), "q")
	assert.False(t, gen.OK())
	assert.ErrorIs(t, gen.Err, domain.ErrGeneratorMalformed)
}

func TestGeneratorService_Generate_Timeout(t *testing.T) {
	llm := &mockLLM{block: true}
	g := NewGeneratorService(llm, nil, GeneratorConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	gen := g.Generate(context.Background(), "q")

	assert.False(t, gen.OK())
	assert.ErrorIs(t, gen.Err, domain.ErrGeneratorTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGeneratorService_Generate_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"auth", fmt.Errorf("openai: %w", domain.ErrGeneratorAuth), domain.ErrGeneratorAuth},
		{"rate limited", fmt.Errorf("openai: %w", domain.ErrGeneratorRateLimited), domain.ErrGeneratorRateLimited},
		{"malformed", fmt.Errorf("openai: %w", domain.ErrGeneratorMalformed), domain.ErrGeneratorMalformed},
		{"unclassified", errors.New("connection reset"), domain.ErrGeneratorNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeneratorService(&mockLLM{err: tt.err}, nil, GeneratorConfig{})

			gen := g.Generate(context.Background(), "q")
			assert.False(t, gen.OK())
			assert.ErrorIs(t, gen.Err, tt.want)
		})
	}
}

func TestGeneratorService_Generate_SingleAttempt(t *testing.T) {
	llm := &mockLLM{err: errors.New("down")}
	g := NewGeneratorService(llm, nil, GeneratorConfig{})

	g.Generate(context.Background(), "q")

	assert.Equal(t, 1, llm.callCount())
}

func TestGeneratorService_Generate_RateLimited(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	g := NewGeneratorService(llm, nil, GeneratorConfig{RatePerMinute: 1})

	// The burst allows two calls; the third is refused without reaching the LLM.
	require.True(t, g.Generate(context.Background(), "1").OK())
	require.True(t, g.Generate(context.Background(), "2").OK())
	gen := g.Generate(context.Background(), "3")

	assert.ErrorIs(t, gen.Err, domain.ErrGeneratorRateLimited)
	assert.Equal(t, 2, llm.callCount())
}
