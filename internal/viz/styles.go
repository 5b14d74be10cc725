package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	selected lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	key      lipgloss.Style
	err      lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		selected: lipgloss.NewStyle().Foreground(t.Text).Bold(true).Width(16),
		value:    lipgloss.NewStyle().Foreground(t.Muted),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		key:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// swatch renders a two-cell block in the given hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Separator draws a muted rule with a center mark.
func (s styles) separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.subtle.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// keyHelp renders "key desc" pairs on one line.
func (s styles) keyHelp(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]) + s.subtle.Render(" "+pairs[i+1]))
	}
	return b.String()
}
