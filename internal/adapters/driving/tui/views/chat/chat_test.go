package chat

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/supportbot/internal/core/domain"
)

type stubAgent struct {
	queries  []string
	external bool
	panics   bool
}

func (s *stubAgent) Respond(_ context.Context, query string) domain.Response {
	if s.panics {
		panic("embedder exploded")
	}
	s.queries = append(s.queries, query)
	return domain.Response{Text: "EVA automates eligibility checks.", Source: domain.SourcePredefined, Confidence: 0.95}
}

func (s *stubAgent) History() []domain.ConversationTurn {
	turns := make([]domain.ConversationTurn, len(s.queries))
	for i, q := range s.queries {
		turns[i] = domain.ConversationTurn{Query: q}
	}
	return turns
}

func (s *stubAgent) Summary(int) []string      { return nil }
func (s *stubAgent) ID() string                { return "id" }
func (s *stubAgent) ExternalEnabled() bool     { return s.external }
func (s *stubAgent) Examples() []string        { return []string{"What does CAM do?"} }
func (s *stubAgent) Entries() []domain.QAEntry { return nil }

func newTestView(agent *stubAgent) *View {
	v := NewView(nil, nil, agent)
	v.SetDimensions(80, 30)
	return v
}

func enter(v *View, text string) tea.Cmd {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func lastItem(v *View) transcript.Item {
	items := v.Transcript().Items()
	return items[len(items)-1]
}

func TestNewView_ShowsWelcome(t *testing.T) {
	v := newTestView(&stubAgent{})

	items := v.Transcript().Items()
	require.Len(t, items, 1)
	assert.Equal(t, transcript.KindSystem, items[0].Kind)
	assert.Contains(t, items[0].Text, "Welcome to Thoughtful AI Support")
	assert.NotNil(t, v.Init())
}

func TestView_StatusShowsEnhanced(t *testing.T) {
	assert.Contains(t, newTestView(&stubAgent{external: true}).View(), "Enhanced")
	assert.NotContains(t, newTestView(&stubAgent{}).View(), "Enhanced")
}

func TestView_SubmitQuestion(t *testing.T) {
	agent := &stubAgent{}
	v := newTestView(agent)

	cmd := enter(v, "  What does EVA do?  ")

	require.NotNil(t, cmd)
	assert.True(t, v.Thinking())
	assert.Empty(t, v.Input())
	assert.Equal(t, transcript.KindUser, lastItem(v).Kind)
	assert.Equal(t, "What does EVA do?", lastItem(v).Text)
	assert.Contains(t, v.View(), "Thinking...")
}

func TestView_RespondCommandCallsAgent(t *testing.T) {
	agent := &stubAgent{}
	v := newTestView(agent)

	msg := v.respond("What does EVA do?")()

	got, ok := msg.(messages.ResponseReceived)
	require.True(t, ok)
	assert.Equal(t, "What does EVA do?", got.Query)
	assert.Equal(t, domain.SourcePredefined, got.Response.Source)
	assert.Equal(t, []string{"What does EVA do?"}, agent.queries)
}

func TestView_RespondCommandReportsPanic(t *testing.T) {
	v := newTestView(&stubAgent{panics: true})
	enter(v, "What does EVA do?")

	msg := v.respond("What does EVA do?")()

	got, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.Contains(t, got.Err.Error(), "embedder exploded")

	v.Update(msg)
	assert.False(t, v.Thinking())
	assert.Equal(t, status.StateError, v.statusbar.State())
}

func TestView_ResponseReceived(t *testing.T) {
	agent := &stubAgent{}
	v := newTestView(agent)
	enter(v, "What does EVA do?")
	resp := agent.Respond(context.Background(), "What does EVA do?")

	v.Update(messages.ResponseReceived{Query: "What does EVA do?", Response: resp})

	assert.False(t, v.Thinking())
	assert.Equal(t, transcript.KindAgent, lastItem(v).Kind)
	assert.Equal(t, resp, lastItem(v).Response)
	assert.Contains(t, v.View(), "1 questions")
	assert.Contains(t, v.View(), "Predefined answer")
}

func TestView_IgnoresEnterWhileThinking(t *testing.T) {
	v := newTestView(&stubAgent{})
	enter(v, "first")
	before := len(v.Transcript().Items())

	cmd := enter(v, "second")

	assert.Nil(t, cmd)
	assert.Len(t, v.Transcript().Items(), before)
	assert.Equal(t, "second", v.Input())
}

func TestView_IgnoresBlankInput(t *testing.T) {
	v := newTestView(&stubAgent{})

	cmd := enter(v, "   ")

	assert.Nil(t, cmd)
	assert.False(t, v.Thinking())
	assert.Len(t, v.Transcript().Items(), 1)
}

func TestView_SessionCommands(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		v := newTestView(&stubAgent{})
		assert.Nil(t, enter(v, "/help"))
		assert.Len(t, v.Transcript().Items(), 2)
		assert.Contains(t, lastItem(v).Text, "Commands:")
	})

	t.Run("examples", func(t *testing.T) {
		v := newTestView(&stubAgent{})
		assert.Nil(t, enter(v, "/examples"))
		assert.Contains(t, lastItem(v).Text, "What does CAM do?")
	})

	t.Run("quit", func(t *testing.T) {
		v := newTestView(&stubAgent{})
		cmd := enter(v, "exit")
		require.NotNil(t, cmd)
		assert.Equal(t, messages.Quit{}, cmd())
	})
}

func TestView_ShortcutKeys(t *testing.T) {
	v := newTestView(&stubAgent{})

	v.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Contains(t, lastItem(v).Text, "Try asking me")

	v.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, lastItem(v).Text, "Welcome")

	v.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, v.Transcript().Items())
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&stubAgent{})
	enter(v, "question")

	v.Update(messages.ErrorOccurred{Err: assert.AnError})

	assert.False(t, v.Thinking())
	assert.Equal(t, status.StateError, v.statusbar.State())
}
