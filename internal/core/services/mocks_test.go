package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with a fixed lookup table
// keyed by normalised text. Unknown text embeds to unknownVec.
type mockEmbedder struct {
	vectors    map[string][]float32
	unknownVec []float32
	dims       int
	embedErr   error
	batchErr   error
	batchCalls int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	if m.unknownVec != nil {
		return m.unknownVec, nil
	}
	return make([]float32, m.Dimensions()), nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims == 0 {
		return 3
	}
	return m.dims
}

func (m *mockEmbedder) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbedder) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbedder) Close() error {
	return nil
}

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	block    bool
	calls    int
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{})
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	m.messages = messages
	m.opts = opts
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string {
	return "mock-llm"
}

func (m *mockLLM) Ping(_ context.Context) error {
	return m.err
}

func (m *mockLLM) Close() error {
	return nil
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {
	m.reloads++
}

// stubClassifier returns a fixed classification.
type stubClassifier struct {
	intent domain.Intent
	ok     bool
}

func (s stubClassifier) Classify(string) (domain.Intent, bool) {
	return s.intent, s.ok
}

// stubMatcher returns a fixed match result.
type stubMatcher struct {
	result domain.MatchResult
	err    error
	calls  int
}

func (s *stubMatcher) Match(context.Context, string) (domain.MatchResult, error) {
	s.calls++
	return s.result, s.err
}

// stubGenerator returns a fixed generation.
type stubGenerator struct {
	gen   domain.Generation
	calls int
}

func (s *stubGenerator) Generate(context.Context, string) domain.Generation {
	s.calls++
	return s.gen
}

// testPools returns a pool with two replies for every intent.
func testPools() domain.ResponsePool {
	pools := make(domain.ResponsePool)
	for _, intent := range domain.AllIntents() {
		pools[intent] = []string{string(intent) + " one", string(intent) + " two"}
	}
	return pools
}
