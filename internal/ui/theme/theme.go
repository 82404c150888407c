package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are bound to one renderer so colour detection follows the writer
// the game prints to. A plain buffer gets unstyled text.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Gain    lipgloss.Style
	Loss    lipgloss.Style
	Warning lipgloss.Style
	Divider lipgloss.Style
}

func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Foreground(AccentEmber).Bold(true),
		Heading: r.NewStyle().Foreground(TextPrimary).Bold(true),
		Text:    r.NewStyle().Foreground(TextSecondary),
		Muted:   r.NewStyle().Foreground(TextMuted),
		Gain:    r.NewStyle().Foreground(AccentForest).Bold(true),
		Loss:    r.NewStyle().Foreground(Danger).Bold(true),
		Warning: r.NewStyle().Foreground(WarningAmber),
		Divider: r.NewStyle().Foreground(Border),
	}
}

// Money picks the gain or loss style by sign.
func (s Styles) Money(v float64) lipgloss.Style {
	if v < 0 {
		return s.Loss
	}
	return s.Gain
}

// Rule is a horizontal divider width cells wide.
func (s Styles) Rule(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 0)))
}
