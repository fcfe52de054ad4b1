package services

import (
	"strings"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// compiledRule is an IntentRule with its triggers pre-normalised.
type compiledRule struct {
	intent  domain.Intent
	exact   []string
	words   map[string]struct{}
	phrases [][]string
}

// IntentClassifier labels input with a conversational intent by keyword pattern.
// Rules are evaluated in the order given; the first match wins.
type IntentClassifier struct {
	rules []compiledRule
}

// NewIntentClassifier compiles the rules. Triggers that normalise to nothing are dropped.
func NewIntentClassifier(rules []domain.IntentRule) *IntentClassifier {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{
			intent: r.Intent,
			words:  make(map[string]struct{}, len(r.Words)),
		}
		for _, e := range r.Exact {
			if n := domain.Normalise(e); n != "" {
				cr.exact = append(cr.exact, n)
			}
		}
		for _, w := range r.Words {
			// A word trigger is a single token; multi-token words become phrases.
			tokens := domain.Tokens(w)
			switch len(tokens) {
			case 0:
			case 1:
				cr.words[tokens[0]] = struct{}{}
			default:
				cr.phrases = append(cr.phrases, tokens)
			}
		}
		for _, p := range r.Phrases {
			if tokens := domain.Tokens(p); len(tokens) > 0 {
				cr.phrases = append(cr.phrases, tokens)
			}
		}
		compiled = append(compiled, cr)
	}
	return &IntentClassifier{rules: compiled}
}

// Classify returns the intent for text and whether any rule matched.
// Empty or punctuation-only input is classified as confusion so it never
// reaches the embedder. No match returns (IntentUnknown, false).
func (c *IntentClassifier) Classify(text string) (domain.Intent, bool) {
	normalised := domain.Normalise(text)
	if normalised == "" {
		logger.Stage("intent", "empty input, treating as %s", domain.IntentConfusion)
		return domain.IntentConfusion, true
	}

	tokens := strings.Fields(normalised)
	for _, rule := range c.rules {
		if trigger, ok := rule.match(normalised, tokens); ok {
			logger.Stage("intent", "%q matched %s via %q", normalised, rule.intent, trigger)
			return rule.intent, true
		}
	}

	return domain.IntentUnknown, false
}

// match checks exact, then word, then phrase triggers.
func (r *compiledRule) match(normalised string, tokens []string) (string, bool) {
	for _, e := range r.exact {
		if normalised == e {
			return e, true
		}
	}
	for _, t := range tokens {
		if _, ok := r.words[t]; ok {
			return t, true
		}
	}
	for _, p := range r.phrases {
		if domain.ContainsPhrase(tokens, p) {
			return strings.Join(p, " "), true
		}
	}
	return "", false
}
