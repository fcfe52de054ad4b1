package domain

import (
	"fmt"
	"strings"
)

// QAEntry is a predefined question with its paraphrases, facets and answer.
// Entries are constructed once at startup and never mutated.
type QAEntry struct {
	// ID is the stable identifier (e.g., "eva").
	ID string

	// Question is the canonical question text.
	Question string

	// Variations are registered paraphrases of Question.
	Variations []string

	// Answer is returned verbatim when the entry matches.
	Answer string

	// Facets are functional keyword phrases ("verify eligibility") that
	// identify the entry by capability rather than by name.
	Facets []string
}

// Phrasings returns the canonical question followed by its variations.
func (e *QAEntry) Phrasings() []string {
	out := make([]string, 0, 1+len(e.Variations))
	out = append(out, e.Question)
	out = append(out, e.Variations...)
	return out
}

// ResponsePool maps each intent to its candidate replies.
type ResponsePool map[Intent][]string

// Responses returns the candidates for an intent.
func (p ResponsePool) Responses(intent Intent) []string {
	return p[intent]
}

// KnowledgeBase is the read-only data the resolver works from.
type KnowledgeBase struct {
	// Entries are the predefined Q&A entries in declaration order.
	Entries []QAEntry

	// Rules are the intent rules in priority order.
	Rules []IntentRule

	// Pools holds the rotating replies per intent.
	Pools ResponsePool

	// Examples are sample questions shown by /examples.
	Examples []string
}

// Entry returns the entry with the given ID.
func (kb *KnowledgeBase) Entry(id string) (*QAEntry, error) {
	for i := range kb.Entries {
		if kb.Entries[i].ID == id {
			return &kb.Entries[i], nil
		}
	}
	return nil, fmt.Errorf("entry %q: %w", id, ErrNotFound)
}

// Validate checks every invariant the resolver depends on.
// It returns a *ConfigurationError describing the first violation.
func (kb *KnowledgeBase) Validate() error {
	if kb == nil {
		return NewConfigurationError("knowledge base is nil")
	}
	if len(kb.Entries) == 0 {
		return NewConfigurationError("no Q&A entries")
	}
	if len(kb.Rules) == 0 {
		return NewConfigurationError("no intent rules")
	}

	seen := make(map[string]struct{}, len(kb.Entries))
	for i := range kb.Entries {
		e := &kb.Entries[i]
		if strings.TrimSpace(e.ID) == "" {
			return NewConfigurationError(fmt.Sprintf("entry %d has no id", i))
		}
		if _, dup := seen[e.ID]; dup {
			return NewConfigurationError(fmt.Sprintf("duplicate entry id %q", e.ID))
		}
		seen[e.ID] = struct{}{}
		if strings.TrimSpace(e.Question) == "" {
			return NewConfigurationError(fmt.Sprintf("entry %q has no question", e.ID))
		}
		if strings.TrimSpace(e.Answer) == "" {
			return NewConfigurationError(fmt.Sprintf("entry %q has no answer", e.ID))
		}
	}

	for _, rule := range kb.Rules {
		if !rule.Intent.IsValid() || rule.Intent == IntentUnknown {
			return NewConfigurationError(fmt.Sprintf("rule has invalid intent %q", rule.Intent))
		}
		if rule.TriggerCount() == 0 {
			return NewConfigurationError(fmt.Sprintf("rule %q has no triggers", rule.Intent))
		}
	}

	for _, intent := range AllIntents() {
		if len(kb.Pools.Responses(intent)) == 0 {
			return NewConfigurationError(fmt.Sprintf("response pool %q is empty", intent))
		}
		for _, r := range kb.Pools.Responses(intent) {
			if strings.TrimSpace(r) == "" {
				return NewConfigurationError(fmt.Sprintf("response pool %q has a blank reply", intent))
			}
		}
	}

	return nil
}
