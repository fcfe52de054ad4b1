package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"punctuation only", "?!...", ""},
		{"lowercases", "What Is EVA", "what is eva"},
		{"strips trailing punctuation", "EVA?", "eva"},
		{"collapses whitespace", "  what   is\tcam  ", "what is cam"},
		{"drops apostrophes", "I don't understand", "i dont understand"},
		{"drops curly apostrophes", "I don’t understand", "i dont understand"},
		{"splits on brackets", "agent (EVA) do?", "agent eva do"},
		{"keeps digits", "Top 10 agents", "top 10 agents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalise(tt.input))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"what", "does", "eva", "do"}, Tokens("What does EVA do?"))
	assert.Empty(t, Tokens("  ?? "))
}

func TestContainsPhrase(t *testing.T) {
	tokens := []string{"how", "can", "you", "help", "me"}

	assert.True(t, ContainsPhrase(tokens, []string{"help", "me"}))
	assert.True(t, ContainsPhrase(tokens, []string{"how"}))
	assert.False(t, ContainsPhrase(tokens, []string{"me", "help"}))
	assert.False(t, ContainsPhrase(tokens, []string{"hel"}))
	assert.False(t, ContainsPhrase(tokens, nil))
	assert.False(t, ContainsPhrase([]string{"hi"}, []string{"hi", "there"}))
}
