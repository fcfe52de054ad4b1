package driving

import "github.com/custodia-labs/supportbot/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetThreshold updates the semantic match threshold.
	SetThreshold(threshold float64) error

	// SetAggregation updates how similarity is combined across phrasings.
	SetAggregation(aggregation domain.Aggregation) error

	// SetRotationMode updates the pool rotation policy.
	SetRotationMode(mode domain.RotationMode) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the external fallback provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetValue parses and stores a single setting by its config key.
	SetValue(key, value string) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
