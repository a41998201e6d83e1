// Package confirm is a y/n prompt that reports which action was answered.
package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-hotkey/internal/tui/theme"
)

// ConfirmedMsg carries the action the user said yes to.
type ConfirmedMsg struct {
	Action string
}

// CancelledMsg carries the action the user declined.
type CancelledMsg struct {
	Action string
}

var (
	yes = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes"))
	no  = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "no"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.DefaultTheme.Colors.Orange).
			Padding(0, 1)
)

// Model asks one question at a time. The zero value is inactive.
type Model struct {
	Active bool
	Prompt string
	Action string
}

func New() Model {
	return Model{}
}

// Activate asks prompt; the answer message echoes action.
func (m *Model) Activate(action, prompt string) {
	*m = Model{Active: true, Prompt: prompt, Action: action}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !m.Active || !ok {
		return m, nil
	}

	var answer tea.Msg
	switch {
	case key.Matches(km, yes):
		answer = ConfirmedMsg{Action: m.Action}
	case key.Matches(km, no):
		answer = CancelledMsg{Action: m.Action}
	default:
		return m, nil
	}

	m.Active = false
	return m, func() tea.Msg { return answer }
}

func (m Model) View() string {
	if !m.Active {
		return ""
	}
	hint := theme.DefaultTheme.Muted.Render("  y / n")
	return boxStyle.Render(m.Prompt + hint)
}
