// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/chatcmd"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
)

// chromeHeight is the rows used by everything except the transcript:
// thinking line, input and status bar.
const chromeHeight = 3

// View is the chat screen: transcript, thinking indicator, input and status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	transcript *transcript.Transcript
	statusbar  *status.Bar
	spinner    spinner.Model

	agent driving.SupportAgent
	ctx   context.Context

	width    int
	height   int
	thinking bool
}

// NewView creates a chat view that starts with the welcome text.
func NewView(s *styles.Styles, km *keymap.KeyMap, agent driving.SupportAgent) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Agent

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		transcript: transcript.New(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
		agent:      agent,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
	v.statusbar.SetExternal(agent.ExternalEnabled())
	v.transcript.AddSystem(chatcmd.Welcome)
	return v
}

// WithContext sets the context passed to the agent.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResponseReceived:
		v.thinking = false
		v.transcript.AddAgent(msg.Response)
		v.statusbar.Clear()
		v.statusbar.SetTurns(len(v.agent.History()))
		return v, nil

	case messages.ErrorOccurred:
		v.thinking = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if !v.thinking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.transcript, cmd = v.transcript.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(key, v.keymap.ScrollUp):
		v.transcript.ScrollUp()
		return v, nil
	case keymap.Matches(key, v.keymap.ScrollDown):
		v.transcript.ScrollDown()
		return v, nil
	case keymap.Matches(key, v.keymap.Help):
		return v, v.runCommand(chatcmd.Help)
	case keymap.Matches(key, v.keymap.Examples):
		return v, v.runCommand(chatcmd.Examples)
	case keymap.Matches(key, v.keymap.Clear):
		v.transcript.Clear()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit handles Enter. One turn resolves at a time; blank lines are ignored.
func (v *View) submit() tea.Cmd {
	if v.thinking {
		return nil
	}
	line := strings.TrimSpace(v.input.Value())
	if line == "" {
		return nil
	}
	v.input.Reset()

	if c := chatcmd.Parse(line); c != chatcmd.None {
		return v.runCommand(c)
	}

	v.transcript.AddUser(line)
	v.thinking = true
	v.statusbar.SetState(status.StateThinking)
	return tea.Batch(v.spinner.Tick, v.respond(line))
}

// runCommand applies a session command.
func (v *View) runCommand(c chatcmd.Command) tea.Cmd {
	switch c {
	case chatcmd.Help:
		v.transcript.AddSystem(chatcmd.Welcome)
	case chatcmd.Examples:
		v.transcript.AddSystem(chatcmd.FormatExamples(v.agent.Examples()))
	case chatcmd.Quit:
		return func() tea.Msg { return messages.Quit{} }
	}
	return nil
}

// respond resolves a question off the UI goroutine.
func (v *View) respond(query string) tea.Cmd {
	agent := v.agent
	ctx := v.ctx
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = messages.ErrorOccurred{Err: fmt.Errorf("responding to %q: %v", query, r)}
			}
		}()
		return messages.ResponseReceived{
			Query:    query,
			Response: agent.Respond(ctx, query),
		}
	}
}

// View renders the chat screen.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.transcript.View())
	b.WriteString("\n")
	if v.thinking {
		b.WriteString(v.spinner.View() + v.styles.Muted.Render(" Thinking..."))
	}
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sizes the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.transcript.SetDimensions(width, height-chromeHeight)
}

// Thinking reports whether a turn is resolving.
func (v *View) Thinking() bool {
	return v.thinking
}

// Transcript exposes the transcript for inspection.
func (v *View) Transcript() *transcript.Transcript {
	return v.transcript
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}
