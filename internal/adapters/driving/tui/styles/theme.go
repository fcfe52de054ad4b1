// Package styles provides colour themes and styling for the chat TUI and REPL.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette.
type Theme struct {
	// Primary is the main accent colour, used for the agent.
	Primary lipgloss.Color

	// Secondary is used for the user.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success marks high confidence and the Online indicator.
	Success lipgloss.Color

	// Warning marks medium confidence.
	Warning lipgloss.Color

	// Error marks low confidence and errors.
	Error lipgloss.Color

	// Enhanced marks externally generated replies.
	Enhanced lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#89DCEB"), // Cyan
		Secondary:  lipgloss.Color("#A6E3A1"), // Green
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#40A02B"), // Deep green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Enhanced:   lipgloss.Color("#CBA6F7"), // Mauve
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// User labels the user's messages.
	User lipgloss.Style

	// Agent labels the agent's messages.
	Agent lipgloss.Style

	// Normal style for message text.
	Normal lipgloss.Style

	// Muted style for footers and hints.
	Muted lipgloss.Style

	// Online is the status indicator.
	Online lipgloss.Style

	// Enhanced marks the external generator.
	Enhanced lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for high confidence.
	Success lipgloss.Style

	// Warning style for medium confidence.
	Warning lipgloss.Style

	// Panel frames the welcome and examples text.
	Panel lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for key hints.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		User: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Agent: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Online: lipgloss.NewStyle().
			Foreground(theme.Success),

		Enhanced: lipgloss.NewStyle().
			Foreground(theme.Enhanced),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
