// Package theme holds the shared lipgloss styles for hk's terminal UIs.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is the palette the styles are built from.
type Colors struct {
	Orange lipgloss.AdaptiveColor
	Violet lipgloss.AdaptiveColor
	Green  lipgloss.AdaptiveColor
	Red    lipgloss.AdaptiveColor
	Gray   lipgloss.AdaptiveColor
}

// Theme groups the styles used across views.
type Theme struct {
	Colors    Colors
	Header    lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Magic     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
}

// New builds a theme from a palette.
func New(c Colors) Theme {
	return Theme{
		Colors:    c,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(c.Violet),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(c.Orange),
		Muted:     lipgloss.NewStyle().Foreground(c.Gray),
		Magic:     lipgloss.NewStyle().Foreground(c.Violet),
		Success:   lipgloss.NewStyle().Foreground(c.Green),
		Error:     lipgloss.NewStyle().Foreground(c.Red),
	}
}

var DefaultTheme = New(Colors{
	Orange: lipgloss.AdaptiveColor{Light: "#d75f00", Dark: "#ffaf5f"},
	Violet: lipgloss.AdaptiveColor{Light: "#5f00d7", Dark: "#af87ff"},
	Green:  lipgloss.AdaptiveColor{Light: "#008700", Dark: "#87d787"},
	Red:    lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#ff5f5f"},
	Gray:   lipgloss.AdaptiveColor{Light: "#808080", Dark: "#6c6c6c"},
})
