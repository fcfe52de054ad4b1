package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is called when prompt files change on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptFallbackSystem is the system prompt for the external fallback generator.
	// This prompt has no format placeholders.
	PromptFallbackSystem = "fallback_system"

	// PromptFallbackUser wraps the user's query for the external fallback generator.
	// The prompt template expects a %s placeholder for the query.
	PromptFallbackUser = "fallback_user"
)
