package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

// Confidence bands for the source footer.
const (
	HighConfidence   = 0.9
	MediumConfidence = 0.7
)

// Confidence returns the style for a predefined answer's score:
// green at 0.9 and above, yellow at 0.7 and above, red below.
func (s *Styles) Confidence(score float64) lipgloss.Style {
	switch {
	case score >= HighConfidence:
		return s.Success
	case score >= MediumConfidence:
		return s.Warning
	default:
		return s.Error
	}
}

// Footer renders the line under a reply naming where it came from.
func (s *Styles) Footer(resp domain.Response) string {
	switch resp.Source {
	case domain.SourcePredefined:
		return s.Success.Render("✓ ") +
			s.Muted.Render(resp.Source.Description()+" (confidence: ") +
			s.Confidence(resp.Confidence).Render(fmt.Sprintf("%.2f", resp.Confidence)) +
			s.Muted.Render(")")
	case domain.SourceExternal:
		return s.Enhanced.Render("✨ " + resp.Source.Description())
	case domain.SourceIntent, domain.SourceGeneric:
		return s.Muted.Render(resp.Intent.Description() + " response")
	default:
		return s.Warning.Render("System message")
	}
}

// Status renders the Online indicator, plus Enhanced when the external
// generator is configured.
func (s *Styles) Status(external bool) string {
	out := s.Online.Render("● Online")
	if external {
		out += "  " + s.Enhanced.Render("✨ Enhanced")
	}
	return out
}
