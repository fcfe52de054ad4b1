package mcp

import (
	"context"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// mockAgent is a mock implementation of driving.SupportAgent.
type mockAgent struct {
	response domain.Response
	entries  []domain.QAEntry
	examples []string
	queries  []string
}

func (m *mockAgent) Respond(_ context.Context, query string) domain.Response {
	m.queries = append(m.queries, query)
	return m.response
}

func (m *mockAgent) History() []domain.ConversationTurn { return nil }
func (m *mockAgent) Summary(int) []string               { return nil }
func (m *mockAgent) ID() string                         { return "mcp-session" }
func (m *mockAgent) ExternalEnabled() bool              { return false }
func (m *mockAgent) Examples() []string                 { return m.examples }
func (m *mockAgent) Entries() []domain.QAEntry          { return m.entries }

func testEntries() []domain.QAEntry {
	return []domain.QAEntry{
		{
			ID:         "eva",
			Question:   "What does the eligibility verification agent (EVA) do?",
			Variations: []string{"What is EVA?", "Tell me about EVA"},
			Answer:     "EVA automates the process of verifying a patient's eligibility and benefits information in real-time.",
			Facets:     []string{"eva", "eligibility"},
		},
		{
			ID:       "cam",
			Question: "What does the claims processing agent (CAM) do?",
			Answer:   "CAM streamlines the submission and management of claims.",
		},
	}
}
