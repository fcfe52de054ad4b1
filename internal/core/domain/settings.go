package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// Default matching and fallback values.
const (
	// DefaultThreshold is the minimum similarity for a predefined answer.
	DefaultThreshold = 0.55

	// DefaultFallbackTimeout bounds a single external generator call.
	DefaultFallbackTimeout = 10 * time.Second

	// DefaultFallbackRatePerMinute throttles external generator calls per session.
	DefaultFallbackRatePerMinute = 6

	// DefaultLocalDimensions is the vector size of the local hashing embedder.
	DefaultLocalDimensions = 384
)

// placeholderAPIKey is the value shipped in example env files.
//
//nolint:gosec // G101: not a credential.
const placeholderAPIKey = "your_openai_api_key_here"

// Aggregation defines how similarity is combined across an entry's phrasings.
type Aggregation string

// Available aggregation policies.
const (
	// AggregationMax uses the best-matching phrasing. Any paraphrase counts as a hit.
	AggregationMax Aggregation = "max"

	// AggregationMean averages similarity over all phrasings.
	AggregationMean Aggregation = "mean"
)

// IsValid returns true if the aggregation policy is recognised.
func (a Aggregation) IsValid() bool {
	return a == AggregationMax || a == AggregationMean
}

// String returns the string representation.
func (a Aggregation) String() string {
	return string(a)
}

// RotationMode defines how pool replies are chosen across a session.
type RotationMode string

// Available rotation modes.
const (
	// RotationRoundRobin cycles through a pool in declaration order.
	RotationRoundRobin RotationMode = "round_robin"

	// RotationShuffle picks at random, never repeating the previous reply.
	RotationShuffle RotationMode = "shuffle"
)

// IsValid returns true if the rotation mode is recognised.
func (m RotationMode) IsValid() bool {
	return m == RotationRoundRobin || m == RotationShuffle
}

// String returns the string representation.
func (m RotationMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m RotationMode) Description() string {
	switch m {
	case RotationRoundRobin:
		return "Round robin (in order)"
	case RotationShuffle:
		return "Shuffle (random, no immediate repeat)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderLocal is the built-in hashing embedder. Embeddings only.
	AIProviderLocal AIProvider = "local"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderLocal, AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderLocal
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderLocal:
		return "Built-in (offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// MatchSettings holds semantic matching configuration.
type MatchSettings struct {
	// Threshold is the minimum similarity to accept a predefined answer.
	Threshold float64

	// Aggregation combines similarity across an entry's phrasings.
	Aggregation Aggregation
}

// RotationSettings holds response rotation configuration.
type RotationSettings struct {
	// Mode is the rotation policy for every pool.
	Mode RotationMode
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && !usableAPIKey(e.APIKey) {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration for the external fallback.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
// A placeholder or blank API key counts as not configured.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() || l.Provider == AIProviderLocal {
		return false
	}
	if l.Provider.RequiresAPIKey() && !usableAPIKey(l.APIKey) {
		return false
	}
	return true
}

// usableAPIKey rejects blank and placeholder keys.
func usableAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != placeholderAPIKey
}

// FallbackSettings holds external generator call limits.
type FallbackSettings struct {
	// Timeout bounds a single call.
	Timeout time.Duration

	// RatePerMinute caps calls per session. Zero disables throttling.
	RatePerMinute int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Match holds semantic matching settings.
	Match MatchSettings

	// Rotation holds response rotation settings.
	Rotation RotationSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds external fallback provider settings.
	LLM LLMSettings

	// Fallback holds external fallback call limits.
	Fallback FallbackSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The external LLM is left unconfigured; embeddings use the built-in provider.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Match: MatchSettings{
			Threshold:   DefaultThreshold,
			Aggregation: AggregationMax,
		},
		Rotation: RotationSettings{
			Mode: RotationRoundRobin,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderLocal,
		},
		// LLM is left unconfigured - user must provide a key
		LLM: LLMSettings{},
		Fallback: FallbackSettings{
			Timeout:       DefaultFallbackTimeout,
			RatePerMinute: DefaultFallbackRatePerMinute,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderLocal,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderLocal:  "hashing-v1",
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-3.5-turbo",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"hashing-v1": DefaultLocalDimensions,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
