// Package editor is the interactive editor for hotkey templates.
package editor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-hotkey/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
)

// Backend is the part of the service the editor needs.
type Backend interface {
	Settings() settings.Settings
	UpdateSettings(next settings.Settings) error
	Preview(template string) service.Preview
}

const (
	actionDelete = "delete"
	actionQuit   = "quit"
)

// Model is the bubbletea model for the settings editor.
type Model struct {
	backend         Backend
	inputs          []textinput.Model
	useExistingPane bool
	focus           int // len(inputs) selects the pane toggle row
	dirty           bool
	statusMessage   string
	err             error
	keys            KeyMap
	help            help.Model
	confirm         confirm.Model
	width           int
	quitting        bool
}

// New creates the editor with the backend's current settings.
func New(b Backend) Model {
	m := Model{
		backend: b,
		keys:    keys,
		help:    help.New(),
		confirm: confirm.New(),
	}
	m.load(b.Settings())
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Templates returns the raw contents of every row.
func (m Model) Templates() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// Dirty reports whether there are unsaved edits.
func (m Model) Dirty() bool {
	return m.dirty
}

// Err returns the last save error.
func (m Model) Err() error {
	return m.err
}

func (m *Model) load(s settings.Settings) {
	m.inputs = make([]textinput.Model, 0, len(s.Files))
	for _, f := range s.Files {
		m.inputs = append(m.inputs, newInput(f))
	}
	m.useExistingPane = s.UseExistingPane
	m.setFocus(min(m.focus, m.paneRow()))
}

func newInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Example: folder 1/folder 2/{YYYY-MM-DD}.md"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Prompt = "› "
	ti.SetValue(value)
	return ti
}

func (m Model) paneRow() int {
	return len(m.inputs)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}
