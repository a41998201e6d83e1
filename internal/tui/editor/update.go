package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-hotkey/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case confirm.ConfirmedMsg:
		switch msg.Action {
		case actionDelete:
			return m, m.removeRow(m.focus)
		case actionQuit:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case confirm.CancelledMsg:
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			m.confirm.Activate(actionQuit, "Discard unsaved changes?")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % (m.paneRow() + 1))

	case key.Matches(msg, m.keys.Prev):
		rows := m.paneRow() + 1
		return m, m.setFocus((m.focus - 1 + rows) % rows)

	case key.Matches(msg, m.keys.Add):
		if len(m.inputs) >= settings.MaxTemplates {
			m.statusMessage = fmt.Sprintf("At most %d files can be configured", settings.MaxTemplates)
			return m, nil
		}
		m.inputs = append(m.inputs, newInput(""))
		m.dirty = true
		m.statusMessage = ""
		return m, m.setFocus(len(m.inputs) - 1)

	case key.Matches(msg, m.keys.Delete):
		if m.focus < len(m.inputs) {
			m.confirm.Activate(actionDelete, fmt.Sprintf("Delete File %d?", m.focus+1))
		}
		return m, nil

	case key.Matches(msg, m.keys.TogglePane),
		m.focus == m.paneRow() && key.Matches(msg, m.keys.Select):
		m.useExistingPane = !m.useExistingPane
		m.dirty = true
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.dirty = true
		m.statusMessage = ""
	}
	return m, cmd
}

func (m *Model) removeRow(i int) tea.Cmd {
	if i < 0 || i >= len(m.inputs) {
		return nil
	}
	rows := make([]textinput.Model, 0, len(m.inputs)-1)
	rows = append(rows, m.inputs[:i]...)
	m.inputs = append(rows, m.inputs[i+1:]...)
	m.dirty = true
	m.statusMessage = fmt.Sprintf("Deleted File %d", i+1)
	return m.setFocus(min(i, m.paneRow()))
}

// save writes the rows through the backend, which drops empty rows and
// re-registers commands, then reloads what was stored.
func (m *Model) save() {
	next := m.backend.Settings()
	next.Files = m.Templates()
	next.UseExistingPane = m.useExistingPane
	if err := m.backend.UpdateSettings(next); err != nil {
		m.err = err
		m.statusMessage = ""
		return
	}
	m.err = nil
	m.load(m.backend.Settings())
	m.dirty = false
	m.statusMessage = "Saved"
}
