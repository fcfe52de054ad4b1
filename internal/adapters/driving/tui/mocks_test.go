package tui

import (
	"context"
	"fmt"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
)

var _ driving.SupportAgent = (*mockAgent)(nil)

// mockAgent answers every query with a canned predefined response.
type mockAgent struct {
	history  []domain.ConversationTurn
	external bool
}

func (m *mockAgent) Respond(_ context.Context, query string) domain.Response {
	resp := domain.Response{
		Text:       "answer to " + query,
		Source:     domain.SourcePredefined,
		Confidence: 0.92,
		EntryID:    "eva",
	}
	m.history = append(m.history, domain.ConversationTurn{Query: query, Response: resp})
	return resp
}

func (m *mockAgent) History() []domain.ConversationTurn {
	return m.history
}

func (m *mockAgent) Summary(n int) []string {
	var lines []string
	for _, t := range m.history {
		lines = append(lines, fmt.Sprintf("Q: %s", t.Query), fmt.Sprintf("A: %s", t.Response.Text))
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func (m *mockAgent) ID() string            { return "session-1" }
func (m *mockAgent) ExternalEnabled() bool { return m.external }
func (m *mockAgent) Examples() []string    { return []string{"What does EVA do?"} }
func (m *mockAgent) Entries() []domain.QAEntry {
	return []domain.QAEntry{{ID: "eva", Question: "What does EVA do?", Answer: "EVA verifies eligibility."}}
}
