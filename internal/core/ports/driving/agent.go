package driving

import (
	"context"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// SupportAgent answers user questions for one interactive session.
// It is the sole entry point the CLI, TUI and MCP adapters call.
type SupportAgent interface {
	// Respond resolves a single query. It never fails: every input,
	// including the empty string, yields a response with non-empty text.
	Respond(ctx context.Context, query string) domain.Response

	// History returns the session's turns in insertion order.
	History() []domain.ConversationTurn

	// Summary returns up to n recent lines ("Q: ..." / "A: ...") for the exit summary.
	Summary(n int) []string

	// ID returns the session identifier.
	ID() string

	// ExternalEnabled reports whether the external fallback generator is configured.
	ExternalEnabled() bool

	// Examples returns sample questions from the knowledge base.
	Examples() []string

	// Entries returns the knowledge base entries in declaration order.
	Entries() []domain.QAEntry
}
