// Package commands keeps the table of numbered open-note commands.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-hotkey/pkg/datetmpl"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
)

// PluginName prefixes every command ID.
const PluginName = "Magic File Hotkey"

// Icons decorate command labels, one per slot.
var Icons = [settings.MaxTemplates]string{"🔮", "💎", "🍏", "🌼", "🍎", "💜", "🌀", "🐉", "⭐", "🚗"}

var ErrNotFound = errors.New("command not found")

// Command opens the note described by Template.
type Command struct {
	ID       string
	Slot     int
	Template string
	Label    string
	Run      func() error
}

// Registry maps command IDs to commands. Upsert is idempotent, so callers
// can push a fresh label or callback for an existing ID at any time.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// Upsert adds c or replaces the command with the same ID. It reports
// whether the ID was new.
func (r *Registry) Upsert(c Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.commands[c.ID]
	r.commands[c.ID] = c
	return !exists
}

// Remove deletes id and reports whether it was present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.commands[id]
	delete(r.commands, id)
	return exists
}

// Get looks a command up by ID.
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[id]
	return c, ok
}

// BySlot looks a command up by its zero-based slot.
func (r *Registry) BySlot(slot int) (Command, bool) {
	return r.Get(CommandID(slot))
}

// List returns a snapshot of all commands in slot order.
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Run invokes the command registered under id.
func (r *Registry) Run(id string) error {
	c, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return c.Run()
}

// Slug lowercases name and replaces each whitespace character with '-'.
func Slug(name string) string {
	lower := cases.Lower(language.Und).String(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, lower)
}

// CommandID is stable for a slot across restarts so key bindings survive.
func CommandID(slot int) string {
	return Slug(PluginName) + ":open-file-" + strconv.Itoa(slot)
}

// Label is the human readable name of a slot, embedding an example of the
// resolved path.
func Label(slot int, resolved string) string {
	icon := ""
	if slot >= 0 && slot < len(Icons) {
		icon = Icons[slot]
	}
	return fmt.Sprintf("%d %s  '%s'", slot+1, icon, resolved)
}

// Runner opens the note for a template. It resolves the template itself so
// the date is taken when the command fires, not when it was registered.
type Runner func(template string) error

// Sync makes the registry match templates: every non-empty template gets a
// command in its slot with a freshly computed label, and every other slot
// is removed. It returns the number of registered commands.
func Sync(r *Registry, templates []string, now time.Time, run Runner) int {
	registered := 0
	for slot := 0; slot < settings.MaxTemplates; slot++ {
		id := CommandID(slot)
		tmpl := ""
		if slot < len(templates) {
			tmpl = strings.TrimSpace(templates[slot])
		}
		if tmpl == "" {
			r.Remove(id)
			continue
		}

		r.Upsert(Command{
			ID:       id,
			Slot:     slot,
			Template: tmpl,
			Label:    Label(slot, datetmpl.Resolve(tmpl, now)),
			Run:      func() error { return run(tmpl) },
		})
		registered++
	}
	return registered
}
