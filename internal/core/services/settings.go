package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyMatchThreshold   = "match.threshold"
	KeyMatchAggregation = "match.aggregation"
	KeyRotationMode     = "rotation.mode"
	KeyEmbedProvider    = "embedding.provider"
	KeyEmbedModel       = "embedding.model"
	KeyEmbedBaseURL     = "embedding.base_url"
	KeyEmbedAPIKey      = "embedding.api_key"
	KeyLLMProvider      = "llm.provider"
	KeyLLMModel         = "llm.model"
	KeyLLMBaseURL       = "llm.base_url"
	KeyLLMAPIKey        = "llm.api_key"
	KeyFallbackTimeout  = "fallback.timeout_seconds"
	KeyFallbackRate     = "fallback.rate_per_minute"
)

// defaultOllamaURL is used when a local provider is selected without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingKeys returns every key accepted by SetValue, in display order.
func SettingKeys() []string {
	return []string{
		KeyMatchThreshold,
		KeyMatchAggregation,
		KeyRotationMode,
		KeyEmbedProvider,
		KeyEmbedModel,
		KeyEmbedBaseURL,
		KeyEmbedAPIKey,
		KeyLLMProvider,
		KeyLLMModel,
		KeyLLMBaseURL,
		KeyLLMAPIKey,
		KeyFallbackTimeout,
		KeyFallbackRate,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(KeyEmbedProvider, defaults.Embedding.Provider)
	llmProvider := s.getProvider(KeyLLMProvider, defaults.LLM.Provider)

	settings := &domain.AppSettings{
		Match: domain.MatchSettings{
			Threshold:   s.getThreshold(defaults.Match.Threshold),
			Aggregation: s.getAggregation(defaults.Match.Aggregation),
		},
		Rotation: domain.RotationSettings{
			Mode: s.getRotationMode(defaults.Rotation.Mode),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: embedProvider,
			Model:    s.getString(KeyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider]),
			BaseURL:  s.configStore.GetString(KeyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: llmProvider,
			Model:    s.getString(KeyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Fallback: domain.FallbackSettings{
			Timeout:       s.getSeconds(KeyFallbackTimeout, defaults.Fallback.Timeout),
			RatePerMinute: s.getRate(defaults.Fallback.RatePerMinute),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save match settings
	if err := s.configStore.Set(KeyMatchThreshold, settings.Match.Threshold); err != nil {
		return fmt.Errorf("save match threshold: %w", err)
	}
	if err := s.configStore.Set(KeyMatchAggregation, settings.Match.Aggregation.String()); err != nil {
		return fmt.Errorf("save match aggregation: %w", err)
	}

	// Save rotation settings
	if err := s.configStore.Set(KeyRotationMode, settings.Rotation.Mode.String()); err != nil {
		return fmt.Errorf("save rotation mode: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(KeyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(KeyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(KeyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(KeyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// Save LLM settings
	if err := s.configStore.Set(KeyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(KeyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(KeyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(KeyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save fallback limits
	if err := s.configStore.Set(KeyFallbackTimeout, int(settings.Fallback.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save fallback timeout: %w", err)
	}
	if err := s.configStore.Set(KeyFallbackRate, settings.Fallback.RatePerMinute); err != nil {
		return fmt.Errorf("save fallback rate: %w", err)
	}

	return nil
}

// SetThreshold updates the semantic match threshold.
func (s *SettingsService) SetThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("invalid threshold %.2f: must be in (0, 1]", threshold)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Match.Threshold = threshold
	return s.Save(settings)
}

// SetAggregation updates how similarity is combined across phrasings.
func (s *SettingsService) SetAggregation(aggregation domain.Aggregation) error {
	if !aggregation.IsValid() {
		return fmt.Errorf("invalid aggregation: %s", aggregation)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Match.Aggregation = aggregation
	return s.Save(settings)
}

// SetRotationMode updates the pool rotation policy.
func (s *SettingsService) SetRotationMode(mode domain.RotationMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid rotation mode: %s", mode)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Rotation.Mode = mode
	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}

	// Set base URL based on provider type
	if provider == domain.AIProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = defaultOllamaURL
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if !slices.Contains(domain.AllLLMProviders(), provider) {
		return fmt.Errorf("provider %s does not support text generation", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetValue parses and stores a single setting by key.
// Used by "settings set <key> <value>".
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyMatchThreshold:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return s.SetThreshold(f)
	case KeyMatchAggregation:
		return s.SetAggregation(domain.Aggregation(value))
	case KeyRotationMode:
		return s.SetRotationMode(domain.RotationMode(value))
	case KeyEmbedProvider:
		return s.SetEmbeddingProvider(domain.AIProvider(value), "", s.configStore.GetString(KeyEmbedAPIKey))
	case KeyLLMProvider:
		return s.SetLLMProvider(domain.AIProvider(value), "", s.configStore.GetString(KeyLLMAPIKey))
	case KeyEmbedModel, KeyEmbedBaseURL, KeyEmbedAPIKey, KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey:
		return s.configStore.Set(key, value)
	case KeyFallbackTimeout, KeyFallbackRate:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n < 0 || (key == KeyFallbackTimeout && n == 0) {
			return fmt.Errorf("%s: invalid value %d", key, n)
		}
		return s.configStore.Set(key, n)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Match.Threshold <= 0 || settings.Match.Threshold > 1 {
		return fmt.Errorf("invalid match threshold: %.2f", settings.Match.Threshold)
	}
	if !settings.Match.Aggregation.IsValid() {
		return fmt.Errorf("invalid aggregation: %s", settings.Match.Aggregation)
	}
	if !settings.Rotation.Mode.IsValid() {
		return fmt.Errorf("invalid rotation mode: %s", settings.Rotation.Mode)
	}

	// Semantic matching always needs an embedder
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %q is not configured", settings.Embedding.Provider)
	}

	// The external fallback is optional, but a half-configured one is an error
	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q is not configured", settings.LLM.Provider)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getThreshold(defaultVal float64) float64 {
	val := s.configStore.GetFloat(KeyMatchThreshold)
	if val <= 0 || val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

// getRate distinguishes an explicit zero (throttling off) from an unset key.
func (s *SettingsService) getRate(defaultVal int) int {
	if _, exists := s.configStore.Get(KeyFallbackRate); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(KeyFallbackRate)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getAggregation(defaultVal domain.Aggregation) domain.Aggregation {
	agg := domain.Aggregation(s.configStore.GetString(KeyMatchAggregation))
	if !agg.IsValid() {
		return defaultVal
	}
	return agg
}

func (s *SettingsService) getRotationMode(defaultVal domain.RotationMode) domain.RotationMode {
	mode := domain.RotationMode(s.configStore.GetString(KeyRotationMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
