// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KnowledgeSource: Loads the static Q&A entries, intent rules and pools
//   - EmbeddingService: Maps text to fixed-length vectors for semantic matching
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Last-resort text generation. Without it, unmatched queries
//     always receive a generic reply.
//   - PromptStore: User-editable prompt templates. Without it, embedded defaults apply.
//   - AIConfigValidator: Connectivity checks used by the settings commands.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
