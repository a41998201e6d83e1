package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-hotkey/internal/tui/theme"
	"github.com/mattsolo1/grove-hotkey/pkg/commands"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys)
	}

	header := theme.DefaultTheme.Header.Render(commands.PluginName)
	if m.dirty {
		header += theme.DefaultTheme.Muted.Render(" (modified)")
	}

	intro := theme.DefaultTheme.Muted.Render(
		"Use moment.js tokens in braces, e.g. {YYYY-MM-DD}. Prefix a weekday for its latest date: {mon:YYYY-MM-DD}.")

	sections := []string{header, intro, "", m.renderRows(), m.renderPaneRow()}

	if m.confirm.Active {
		sections = append(sections, "", m.confirm.View())
	}

	switch {
	case m.err != nil:
		sections = append(sections, "", theme.DefaultTheme.Error.Render("Error: "+m.err.Error()))
	case m.statusMessage != "":
		sections = append(sections, "", theme.DefaultTheme.Success.Render(m.statusMessage))
	}

	sections = append(sections, "", m.help.View(m.keys))

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderRows() string {
	if len(m.inputs) == 0 {
		return theme.DefaultTheme.Muted.Render("No files configured. Press ctrl+n to add one.")
	}

	var b strings.Builder
	for i, in := range m.inputs {
		label := fmt.Sprintf("File %d", i+1)
		if i == m.focus {
			b.WriteString(theme.DefaultTheme.Highlight.Render("▶ " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n  " + in.View() + "\n")
		b.WriteString("    " + m.renderPreview(in.Value()) + "\n")
	}
	return b.String()
}

func (m Model) renderPreview(template string) string {
	p := m.backend.Preview(template)
	if p.Template == "" {
		return theme.DefaultTheme.Muted.Render("(empty, no command)")
	}
	if p.Magic {
		return theme.DefaultTheme.Magic.Render(p.String())
	}
	return theme.DefaultTheme.Muted.Render(p.String())
}

func (m Model) renderPaneRow() string {
	box := "[ ]"
	if m.useExistingPane {
		box = "[x]"
	}
	line := box + " Use existing pane"
	if m.focus == m.paneRow() {
		line = theme.DefaultTheme.Highlight.Render("▶ " + line)
	} else {
		line = "  " + line
	}
	desc := theme.DefaultTheme.Muted.Render("    Focus a view that already shows the note instead of opening a new one.")
	return line + "\n" + desc
}
