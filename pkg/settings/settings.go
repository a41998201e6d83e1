// Package settings holds the configured path templates and persists them.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTemplates is the number of command slots.
const MaxTemplates = 10

// DefaultTemplate is the journal note named by today's date.
const DefaultTemplate = "journal/{YYYY-MM-DD}.md"

var (
	ErrLimitReached = fmt.Errorf("at most %d templates can be configured", MaxTemplates)
	ErrNoSuchSlot   = errors.New("no template in that slot")
)

// Settings is the persisted configuration.
type Settings struct {
	// Files are the path templates, one per command slot, in slot order.
	Files []string `yaml:"files" json:"files" toml:"files"`
	// UseExistingPane makes commands focus a view that already shows the
	// resolved note instead of always opening a new one.
	UseExistingPane bool `yaml:"useExistingPane" json:"useExistingPane" toml:"useExistingPane"`
}

// Defaults returns the settings used when nothing has been stored yet.
func Defaults() Settings {
	return Settings{
		Files:           []string{DefaultTemplate},
		UseExistingPane: true,
	}
}

// Normalize trims every template, drops empty ones and caps the list at
// MaxTemplates. The receiver is not modified.
func (s Settings) Normalize() Settings {
	files := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
		if len(files) == MaxTemplates {
			break
		}
	}
	s.Files = files
	return s
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	if s.Files != nil {
		s.Files = append(make([]string, 0, len(s.Files)), s.Files...)
	}
	return s
}

// Template returns the template in slot, or "" when the slot is empty.
func (s Settings) Template(slot int) string {
	if slot < 0 || slot >= len(s.Files) {
		return ""
	}
	return s.Files[slot]
}

// Add appends a template.
func (s *Settings) Add(template string) error {
	if len(s.Files) >= MaxTemplates {
		return ErrLimitReached
	}
	s.Files = append(s.Files, template)
	return nil
}

// Set replaces the template in slot.
func (s *Settings) Set(slot int, template string) error {
	if slot < 0 || slot >= len(s.Files) {
		return fmt.Errorf("slot %d: %w", slot+1, ErrNoSuchSlot)
	}
	s.Files[slot] = template
	return nil
}

// Remove deletes the template in slot; later templates move up one slot.
func (s *Settings) Remove(slot int) error {
	if slot < 0 || slot >= len(s.Files) {
		return fmt.Errorf("slot %d: %w", slot+1, ErrNoSuchSlot)
	}
	s.Files = append(s.Files[:slot], s.Files[slot+1:]...)
	return nil
}
