package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the panel chrome. The galaxy itself is always drawn in its
// own vertex colors.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Error   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "deepspace",
		Primary: lipgloss.Color("#00cccc"),
		Accent:  lipgloss.Color("#ff88ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#555566"),
		Border:  lipgloss.Color("#444466"),
		Error:   lipgloss.Color("#ff4444"),
	},
	{
		Name:    "ember",
		Primary: lipgloss.Color("#ff6030"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#2d1b2e"),
		Error:   lipgloss.Color("#ff4757"),
	},
	{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#333333"),
		Error:   lipgloss.Color("#ff0000"),
	},
}

// GetTheme returns a theme by name, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
