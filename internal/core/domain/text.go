package domain

import (
	"strings"
	"unicode"
)

// Normalise lowercases text, drops apostrophes, replaces other punctuation
// and symbols with spaces and collapses whitespace.
//
// "  Don't   KNOW?! " becomes "dont know".
func Normalise(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\'' || r == '’' || r == '`':
			// Contractions collapse: "don't" -> "dont".
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the whitespace-separated tokens of the normalised text.
func Tokens(text string) []string {
	return strings.Fields(Normalise(text))
}

// ContainsPhrase reports whether phrase occurs in tokens as a whole-word sequence.
// Both arguments must already be normalised tokens.
func ContainsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j := range phrase {
			if tokens[i+j] != phrase[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
