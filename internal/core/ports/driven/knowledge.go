package driven

import "github.com/custodia-labs/supportbot/internal/core/domain"

// KnowledgeSource loads the static knowledge base.
// Implementations must return a validated knowledge base or an error
// wrapping domain.ErrConfiguration; a partial result is never returned.
type KnowledgeSource interface {
	// Load reads and validates the knowledge base.
	Load() (*domain.KnowledgeBase, error)

	// Origin describes where the data came from (file path or "embedded").
	Origin() string
}
