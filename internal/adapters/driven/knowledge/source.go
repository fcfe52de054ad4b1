// Package knowledge loads the support knowledge base from TOML.
//
// The built-in knowledge base is embedded in the binary. A user-supplied
// file with the same layout replaces it when SUPPORTBOT_KNOWLEDGE_FILE
// names one.
package knowledge

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.KnowledgeSource = (*Source)(nil)

//go:embed default.toml
var defaultKnowledgeBase []byte

// BuiltinOrigin is reported by Origin for the embedded knowledge base.
const BuiltinOrigin = "builtin"

// file mirrors the TOML layout.
type file struct {
	Examples []string            `toml:"examples"`
	Entries  []entryRecord       `toml:"entries"`
	Rules    []ruleRecord        `toml:"rules"`
	Pools    map[string][]string `toml:"pools"`
}

type entryRecord struct {
	ID         string   `toml:"id"`
	Question   string   `toml:"question"`
	Answer     string   `toml:"answer"`
	Variations []string `toml:"variations"`
	Facets     []string `toml:"facets"`
}

type ruleRecord struct {
	Intent  string   `toml:"intent"`
	Exact   []string `toml:"exact"`
	Words   []string `toml:"words"`
	Phrases []string `toml:"phrases"`
}

// Source implements driven.KnowledgeSource.
type Source struct {
	path string
}

// NewSource creates a source for path. An empty path selects the built-in knowledge base.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Origin returns the file path, or "builtin".
func (s *Source) Origin() string {
	if s.path == "" {
		return BuiltinOrigin
	}
	return s.path
}

// Load reads, parses and validates the knowledge base.
func (s *Source) Load() (*domain.KnowledgeBase, error) {
	data := defaultKnowledgeBase
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, domain.WrapConfigurationError("read knowledge base", err)
		}
	}

	kb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Origin(), err)
	}
	return kb, nil
}

// Default returns the built-in knowledge base.
func Default() (*domain.KnowledgeBase, error) {
	return NewSource("").Load()
}

// Parse decodes TOML data into a validated knowledge base.
// Unknown keys are rejected so typos surface as configuration errors.
func Parse(data []byte) (*domain.KnowledgeBase, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("parse knowledge base: %v", err))
	}

	kb := &domain.KnowledgeBase{
		Examples: f.Examples,
		Entries:  make([]domain.QAEntry, 0, len(f.Entries)),
		Rules:    make([]domain.IntentRule, 0, len(f.Rules)),
		Pools:    make(domain.ResponsePool, len(f.Pools)),
	}
	for _, e := range f.Entries {
		kb.Entries = append(kb.Entries, domain.QAEntry{
			ID:         e.ID,
			Question:   e.Question,
			Variations: e.Variations,
			Answer:     e.Answer,
			Facets:     e.Facets,
		})
	}
	for _, r := range f.Rules {
		kb.Rules = append(kb.Rules, domain.IntentRule{
			Intent:  domain.Intent(r.Intent),
			Exact:   r.Exact,
			Words:   r.Words,
			Phrases: r.Phrases,
		})
	}
	for name, replies := range f.Pools {
		intent := domain.Intent(name)
		if !intent.IsValid() {
			return nil, domain.NewConfigurationError(fmt.Sprintf("unknown response pool %q", name))
		}
		kb.Pools[intent] = replies
	}

	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return kb, nil
}
