package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-hotkey/pkg/commands"
	"github.com/mattsolo1/grove-hotkey/pkg/datetmpl"
	"github.com/mattsolo1/grove-hotkey/pkg/locator"
	"github.com/mattsolo1/grove-hotkey/pkg/session"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
	"github.com/mattsolo1/grove-hotkey/pkg/vault"
)

// ErrEmptyPath is returned when a template resolves to nothing.
var ErrEmptyPath = errors.New("template resolves to an empty path")

// Service is the core hotkey service
type Service struct {
	Config  *Config
	Vault   *vault.Vault
	Session *session.Session // nil when a custom workspace is injected

	store     settings.Store
	workspace locator.Workspace
	registry  *commands.Registry
	current   settings.Settings
	logger    logrus.FieldLogger
	now       func() time.Time
}

// Config holds service configuration
type Config struct {
	VaultDir     string
	DataDir      string
	SettingsFile string
	Editor       string
	// OpenEditor launches Editor on notes the session opens.
	OpenEditor bool
}

// Option customises New.
type Option func(*Service)

// WithClock replaces time.Now as the reference instant source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore replaces the settings file store.
func WithStore(store settings.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithWorkspace replaces the sqlite session as the workspace commands act on.
func WithWorkspace(ws locator.Workspace) Option {
	return func(s *Service) {
		s.workspace = ws
	}
}

// New creates a new hotkey service, loads settings and registers commands.
func New(config *Config, options ...Option) (*Service, error) {
	s := &Service{
		Config:   config,
		Vault:    vault.New(config.VaultDir),
		registry: commands.NewRegistry(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = discard
	}

	if s.store == nil {
		store, err := settings.NewFileStore(config.SettingsFile)
		if err != nil {
			return nil, fmt.Errorf("create settings store: %w", err)
		}
		s.store = store
	}

	if s.workspace == nil {
		sess, err := session.Open(config.DataDir, s.Vault,
			session.WithClock(s.now),
			session.WithOpenHook(s.onOpened),
		)
		if err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
		s.Session = sess
		s.workspace = sess
	}

	loaded, err := s.store.Load()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.current = loaded.Normalize()
	s.Resync()

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() settings.Settings {
	return s.current.Clone()
}

// UpdateSettings normalises and saves next, then refreshes the command table.
func (s *Service) UpdateSettings(next settings.Settings) error {
	next = next.Normalize()
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	s.Resync()
	return nil
}

// SetUseExistingPane toggles whether commands focus views that are
// already open.
func (s *Service) SetUseExistingPane(use bool) error {
	next := s.Settings()
	next.UseExistingPane = use
	return s.UpdateSettings(next)
}

// Resync rebuilds command labels and callbacks from the current settings.
func (s *Service) Resync() {
	n := commands.Sync(s.registry, s.current.Files, s.now(), func(tmpl string) error {
		_, err := s.OpenTemplate(tmpl)
		return err
	})
	s.logger.WithField("commands", n).Debug("Synced commands")
}

// Commands returns the registered commands in slot order.
func (s *Service) Commands() []commands.Command {
	return s.registry.List()
}

// Registry exposes the command table.
func (s *Service) Registry() *commands.Registry {
	return s.registry
}

// Invoke runs the command in a zero-based slot.
func (s *Service) Invoke(slot int) (locator.Result, error) {
	c, ok := s.registry.BySlot(slot)
	if !ok {
		return locator.Result{}, fmt.Errorf("slot %d: %w", slot+1, commands.ErrNotFound)
	}
	return s.OpenTemplate(c.Template)
}

// InvokeID runs the command registered under id.
func (s *Service) InvokeID(id string) (locator.Result, error) {
	c, ok := s.registry.Get(id)
	if !ok {
		return locator.Result{}, fmt.Errorf("%s: %w", id, commands.ErrNotFound)
	}
	return s.OpenTemplate(c.Template)
}

// OpenTemplate resolves template against the clock and focuses or opens
// the resulting note.
func (s *Service) OpenTemplate(template string) (locator.Result, error) {
	path := datetmpl.Resolve(template, s.now())
	if strings.TrimSpace(path) == "" {
		return locator.Result{}, ErrEmptyPath
	}

	res, err := locator.OpenOrFocus(s.workspace, path, locator.ReuseExisting(s.current.UseExistingPane))
	if err != nil {
		return locator.Result{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"template": template,
		"path":     path,
		"action":   res.Action,
	}).Info("Opened note")
	return res, nil
}

// Preview describes how a template resolves right now.
type Preview struct {
	Template string `json:"template"`
	Resolved string `json:"resolved"`
	// Magic is true when at least one token was substituted.
	Magic bool `json:"magic"`
	// Exists is true when the resolved path links to a note in the vault.
	Exists bool `json:"exists"`
	// Dest is the vault-relative path of the linked note.
	Dest string `json:"dest,omitempty"`
}

// String renders the preview as shown under a settings field.
func (p Preview) String() string {
	if p.Template == "" {
		return ""
	}
	out := fmt.Sprintf("%q", p.Resolved)
	if p.Exists {
		out += " ✅"
	}
	return out
}

// Preview resolves template without opening anything.
func (s *Service) Preview(template string) Preview {
	return PreviewWith(s.Vault, template, s.now())
}

// Linker resolves a link path to an existing note.
type Linker interface {
	FirstLinkpathDest(linkpath string) (string, bool)
}

// PreviewWith resolves template at now and checks the result against
// linker, which may be nil.
func PreviewWith(linker Linker, template string, now time.Time) Preview {
	p := Preview{Template: template}
	if template == "" {
		return p
	}
	p.Resolved = datetmpl.Resolve(template, now)
	p.Magic = p.Resolved != template
	if linker != nil {
		p.Dest, p.Exists = linker.FirstLinkpathDest(p.Resolved)
	}
	return p
}

// Close closes the session database.
func (s *Service) Close() error {
	if s.Session != nil {
		if err := s.Session.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) onOpened(v *session.View, absPath string, created bool) {
	log := s.logger.WithFields(logrus.Fields{"view": v.ID, "path": v.Path})
	if created {
		log.Info("Created note")
	}
	if s.Config.OpenEditor && v.CanFocusEditor() {
		if err := s.openInEditor(absPath); err != nil {
			log.WithError(err).Warn("Failed to open editor")
		}
	}
}

func (s *Service) openInEditor(path string) error {
	fields := strings.Fields(s.Config.Editor)
	if len(fields) == 0 {
		fields = strings.Fields(os.Getenv("EDITOR"))
	}
	if len(fields) == 0 {
		fields = []string{"vim"} // fallback
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
