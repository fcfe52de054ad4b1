// Package domain defines the core business entities for supportbot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - QAEntry: A predefined question with its variations, facets and answer
//   - IntentRule: Trigger phrases for a conversational intent
//   - KnowledgeBase: The static entries, rules and response pools
//   - Response: What a single turn produced and which stage produced it
//   - ConversationTurn: One query/response exchange in a session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
