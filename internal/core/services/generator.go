package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// Generation defaults.
const (
	defaultFallbackMaxTokens   = 150
	defaultFallbackTemperature = 0.7
	fallbackBurst              = 2
)

// FallbackGenerator produces free-form answers for queries nothing else matched.
type FallbackGenerator interface {
	Generate(ctx context.Context, query string) domain.Generation
}

// Verify interface compliance.
var _ FallbackGenerator = (*GeneratorService)(nil)

// GeneratorConfig bounds a GeneratorService.
type GeneratorConfig struct {
	// Timeout bounds a single call. Defaults to domain.DefaultFallbackTimeout.
	Timeout time.Duration

	// RatePerMinute caps calls. Zero or less disables throttling.
	RatePerMinute int

	// MaxTokens caps the reply length. Defaults to 150.
	MaxTokens int

	// Temperature controls randomness. Defaults to 0.7.
	Temperature float64
}

// GeneratorConfigFromSettings derives a GeneratorConfig from fallback settings.
func GeneratorConfigFromSettings(s domain.FallbackSettings) GeneratorConfig {
	return GeneratorConfig{
		Timeout:       s.Timeout,
		RatePerMinute: s.RatePerMinute,
	}
}

// GeneratorService wraps an LLMService as a single-attempt fallback generator.
// Every failure is returned as a domain.Generation with a classified error.
type GeneratorService struct {
	llm         driven.LLMService
	prompts     driven.PromptStore
	timeout     time.Duration
	limiter     *rate.Limiter
	maxTokens   int
	temperature float64
}

// NewGeneratorService creates a generator over llm. prompts may be nil, in
// which case built-in prompts are used.
func NewGeneratorService(llm driven.LLMService, prompts driven.PromptStore, cfg GeneratorConfig) *GeneratorService {
	g := &GeneratorService{
		llm:         llm,
		prompts:     prompts,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
	if g.timeout <= 0 {
		g.timeout = domain.DefaultFallbackTimeout
	}
	if g.maxTokens <= 0 {
		g.maxTokens = defaultFallbackMaxTokens
	}
	if g.temperature <= 0 {
		g.temperature = defaultFallbackTemperature
	}
	if cfg.RatePerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), fallbackBurst)
	}
	return g
}

// Generate makes one bounded call to the LLM. It never retries.
func (g *GeneratorService) Generate(ctx context.Context, query string) domain.Generation {
	if g == nil || g.llm == nil {
		return domain.GenerationFailed(domain.ErrGeneratorDisabled)
	}
	if g.limiter != nil && !g.limiter.Allow() {
		return domain.GenerationFailed(fmt.Errorf("%w: local call budget exhausted", domain.ErrGeneratorRateLimited))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []driven.ChatMessage{
		{Role: "system", Content: g.loadPrompt(driven.PromptFallbackSystem)},
		{Role: "user", Content: renderUserPrompt(g.loadPrompt(driven.PromptFallbackUser), query)},
	}

	start := time.Now()
	text, err := g.llm.Chat(callCtx, messages, driven.ChatOptions{
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return domain.GenerationFailed(classifyGeneratorError(callCtx, err))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.GenerationFailed(fmt.Errorf("%w: empty reply", domain.ErrGeneratorMalformed))
	}

	logger.Debug("fallback generated %d chars in %v (model=%s)", len(text), time.Since(start), g.llm.ModelName())
	return domain.Generation{Text: text}
}

// loadPrompt returns the named prompt or its built-in default.
func (g *GeneratorService) loadPrompt(name string) string {
	if g.prompts != nil {
		if p, err := g.prompts.Load(name); err == nil && p != "" {
			return p
		}
	}
	switch name {
	case driven.PromptFallbackSystem:
		return defaultFallbackSystemPrompt
	default:
		return queryPlaceholder
	}
}

// queryPlaceholder marks where the user's question goes in the user prompt.
const queryPlaceholder = "%s"

// renderUserPrompt substitutes query for the first placeholder in tmpl.
// Other % characters are left alone. Without a placeholder the query is appended.
func renderUserPrompt(tmpl, query string) string {
	if strings.Contains(tmpl, queryPlaceholder) {
		return strings.Replace(tmpl, queryPlaceholder, query, 1)
	}
	return strings.TrimRight(tmpl, "\n") + "\n\n" + query
}

// defaultFallbackSystemPrompt keeps answers short and on brand when no prompt file exists.
const defaultFallbackSystemPrompt = "You are a helpful customer support agent for Thoughtful AI, " +
	"a company that provides AI-powered automation agents for healthcare. " +
	"Answer in 2-3 sentences."

var generatorSentinels = []error{
	domain.ErrGeneratorAuth,
	domain.ErrGeneratorRateLimited,
	domain.ErrGeneratorNetwork,
	domain.ErrGeneratorMalformed,
	domain.ErrGeneratorTimeout,
}

// classifyGeneratorError maps an adapter error onto a generator sentinel.
// Unclassified errors are treated as network failures.
func classifyGeneratorError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrGeneratorTimeout, err)
	}
	for _, sentinel := range generatorSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrGeneratorNetwork, err)
}
