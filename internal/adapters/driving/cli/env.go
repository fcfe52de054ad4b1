package cli

import (
	"strings"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// Environment variables read once at startup.
const (
	// EnvLLMAPIKey overrides the configured llm.api_key.
	EnvLLMAPIKey = "SUPPORTBOT_LLM_API_KEY"

	// EnvOpenAIAPIKey enables the OpenAI fallback when no LLM is configured,
	// and supplies a key to OpenAI providers that have none.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"

	// EnvKnowledgeFile points at a knowledge base file replacing the built-in one.
	EnvKnowledgeFile = "SUPPORTBOT_KNOWLEDGE_FILE"
)

// ApplyEnvironment overlays API keys from the environment onto settings.
// Nothing is persisted.
func ApplyEnvironment(settings *domain.AppSettings, getenv func(string) string) {
	if key := strings.TrimSpace(getenv(EnvLLMAPIKey)); key != "" {
		settings.LLM.APIKey = key
	}

	openAIKey := strings.TrimSpace(getenv(EnvOpenAIAPIKey))
	if openAIKey == "" {
		return
	}

	if settings.LLM.Provider == "" {
		settings.LLM.Provider = domain.AIProviderOpenAI
		settings.LLM.Model = domain.DefaultLLMModels()[domain.AIProviderOpenAI]
	}
	if settings.LLM.Provider == domain.AIProviderOpenAI && settings.LLM.APIKey == "" {
		settings.LLM.APIKey = openAIKey
	}
	if settings.Embedding.Provider == domain.AIProviderOpenAI && settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = openAIKey
	}
}
