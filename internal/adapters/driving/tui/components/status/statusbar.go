// Package status provides the status bar for the chat TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/styles"
)

// State represents the current session state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
)

// Bar shows the Online and Enhanced indicators, the turn count and key hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	external bool
	turns    int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the indicators and state.
func (s *Bar) renderLeft() string {
	left := s.styles.Status(s.external)

	switch s.state {
	case StateThinking:
		left += s.styles.Muted.Render("  Thinking...")
	case StateError:
		msg := "Error"
		if s.message != "" {
			msg = fmt.Sprintf("Error: %s", s.message)
		}
		left += "  " + s.styles.Error.Render(msg)
	case StateReady:
		if s.turns > 0 {
			left += s.styles.Muted.Render(fmt.Sprintf("  %d questions", s.turns))
		}
	}
	return left
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetExternal toggles the Enhanced indicator.
func (s *Bar) SetExternal(external bool) {
	s.external = external
}

// SetTurns sets how many questions have been asked.
func (s *Bar) SetTurns(n int) {
	s.turns = n
}

// Turns returns the question count.
func (s *Bar) Turns() int {
	return s.turns
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message. Indicators are kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
