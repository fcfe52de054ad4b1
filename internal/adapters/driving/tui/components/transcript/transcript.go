// Package transcript renders the scrolling conversation in the chat TUI.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/supportbot/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// Kind identifies who produced a transcript item.
type Kind int

const (
	// KindUser is a question typed by the user.
	KindUser Kind = iota
	// KindAgent is a reply from the agent.
	KindAgent
	// KindSystem is fixed text such as the welcome or examples panel.
	KindSystem
)

// Item is one block in the transcript.
type Item struct {
	Kind     Kind
	Text     string
	Response domain.Response
}

// Transcript is a viewport over the rendered conversation.
type Transcript struct {
	styles   *styles.Styles
	viewport viewport.Model
	items    []Item
	width    int
}

// New creates an empty transcript.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Transcript{
		styles:   s,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

// Update forwards scroll messages to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// AddUser appends a user question.
func (t *Transcript) AddUser(text string) {
	t.add(Item{Kind: KindUser, Text: text})
}

// AddAgent appends an agent reply.
func (t *Transcript) AddAgent(resp domain.Response) {
	t.add(Item{Kind: KindAgent, Text: resp.Text, Response: resp})
}

// AddSystem appends fixed text.
func (t *Transcript) AddSystem(text string) {
	t.add(Item{Kind: KindSystem, Text: text})
}

// Items returns the transcript items in order.
func (t *Transcript) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Clear empties the view. The session history is unaffected.
func (t *Transcript) Clear() {
	t.items = nil
	t.refresh()
}

// ScrollUp moves up one page.
func (t *Transcript) ScrollUp() {
	t.viewport.ViewUp()
}

// ScrollDown moves down one page.
func (t *Transcript) ScrollDown() {
	t.viewport.ViewDown()
}

// AtBottom reports whether the newest item is visible.
func (t *Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

// SetDimensions resizes the viewport and re-wraps the content.
func (t *Transcript) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	t.width = width
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

func (t *Transcript) add(item Item) {
	t.items = append(t.items, item)
	t.refresh()
}

// refresh re-renders every item and scrolls to the newest.
func (t *Transcript) refresh() {
	blocks := make([]string, 0, len(t.items))
	for _, item := range t.items {
		blocks = append(blocks, t.render(item))
	}
	t.viewport.SetContent(strings.Join(blocks, "\n\n"))
	t.viewport.GotoBottom()
}

func (t *Transcript) render(item Item) string {
	wrap := t.styles.Normal.Width(t.contentWidth())

	switch item.Kind {
	case KindUser:
		return t.styles.User.Render("You") + "\n" + wrap.Render(item.Text)
	case KindAgent:
		return t.styles.Agent.Render("Thoughtful AI Agent") + "\n" +
			wrap.Render(item.Text) + "\n" +
			t.styles.Footer(item.Response)
	default:
		return t.styles.Panel.Width(t.contentWidth()).Render(item.Text)
	}
}

// contentWidth leaves room for panel borders.
func (t *Transcript) contentWidth() int {
	w := t.width - 4
	if w < 20 {
		w = 20
	}
	return w
}
