package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validKnowledgeBase() *KnowledgeBase {
	pools := ResponsePool{}
	for _, intent := range AllIntents() {
		pools[intent] = []string{intent.String() + " one", intent.String() + " two"}
	}
	return &KnowledgeBase{
		Entries: []QAEntry{
			{
				ID:         "eva",
				Question:   "What does EVA do?",
				Variations: []string{"What is EVA?"},
				Answer:     "EVA verifies eligibility.",
				Facets:     []string{"verify eligibility"},
			},
		},
		Rules: []IntentRule{
			{Intent: IntentGreeting, Words: []string{"hi"}},
		},
		Pools:    pools,
		Examples: []string{"What does EVA do?"},
	}
}

func TestQAEntry_Phrasings(t *testing.T) {
	e := QAEntry{Question: "Q", Variations: []string{"V1", "V2"}}

	assert.Equal(t, []string{"Q", "V1", "V2"}, e.Phrasings())
	assert.Equal(t, []string{"Q"}, (&QAEntry{Question: "Q"}).Phrasings())
}

func TestKnowledgeBase_Entry(t *testing.T) {
	kb := validKnowledgeBase()

	entry, err := kb.Entry("eva")
	require.NoError(t, err)
	assert.Equal(t, "What does EVA do?", entry.Question)

	_, err = kb.Entry("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestKnowledgeBase_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(kb *KnowledgeBase)
		wantErr string
	}{
		{"valid", func(*KnowledgeBase) {}, ""},
		{"no entries", func(kb *KnowledgeBase) { kb.Entries = nil }, "no Q&A entries"},
		{"no rules", func(kb *KnowledgeBase) { kb.Rules = nil }, "no intent rules"},
		{"blank id", func(kb *KnowledgeBase) { kb.Entries[0].ID = " " }, "has no id"},
		{"blank answer", func(kb *KnowledgeBase) { kb.Entries[0].Answer = "" }, "has no answer"},
		{"blank question", func(kb *KnowledgeBase) { kb.Entries[0].Question = "" }, "has no question"},
		{"duplicate id", func(kb *KnowledgeBase) {
			kb.Entries = append(kb.Entries, kb.Entries[0])
		}, "duplicate entry id"},
		{"rule without triggers", func(kb *KnowledgeBase) {
			kb.Rules = append(kb.Rules, IntentRule{Intent: IntentHelp})
		}, "has no triggers"},
		{"rule for unknown", func(kb *KnowledgeBase) {
			kb.Rules[0].Intent = IntentUnknown
		}, "invalid intent"},
		{"empty pool", func(kb *KnowledgeBase) { kb.Pools[IntentFarewell] = nil }, `"farewell" is empty`},
		{"blank reply", func(kb *KnowledgeBase) { kb.Pools[IntentUnknown] = []string{"  "} }, "blank reply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := validKnowledgeBase()
			tt.mutate(kb)

			err := kb.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKnowledgeBase_ValidateNil(t *testing.T) {
	var kb *KnowledgeBase
	assert.True(t, errors.Is(kb.Validate(), ErrConfiguration))
}
