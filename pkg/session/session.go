// Package session persists the set of open views over a vault and acts as
// the workspace the locator drives.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-hotkey/pkg/locator"
	"github.com/mattsolo1/grove-hotkey/pkg/vault"
)

// Kind is what a view displays.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindFile     Kind = "file"
	KindEmpty    Kind = "empty"
)

var ErrViewNotFound = errors.New("view not found")

// View is one open view.
type View struct {
	ID            string    `json:"id"`
	Path          string    `json:"path,omitempty"` // empty when the view shows no file
	Kind          Kind      `json:"kind"`
	Position      int       `json:"position"`
	Active        bool      `json:"active"`
	EditorFocused bool      `json:"editor_focused"`
	OpenedAt      time.Time `json:"opened_at"`
	FocusedAt     time.Time `json:"focused_at"`
}

func (v *View) DisplayedFilePath() (string, bool) {
	if v.Kind == KindEmpty || v.Path == "" {
		return "", false
	}
	return v.Path, true
}

func (v *View) CanFocusEditor() bool {
	return v.Kind == KindMarkdown
}

// OpenHook is called after a view for a new path was opened, with the
// absolute file location.
type OpenHook func(view *View, absPath string, created bool)

// Session stores views in sqlite.
type Session struct {
	db     *sql.DB
	vault  *vault.Vault
	now    func() time.Time
	onOpen OpenHook
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOpenHook registers a callback run after OpenNew.
func WithOpenHook(hook OpenHook) Option {
	return func(s *Session) { s.onOpen = hook }
}

// Open opens (or creates) the session database in dataDir.
func Open(dataDir string, v *vault.Vault, opts ...Option) (*Session, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "session.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Session{db: db, vault: v, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *Session) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS views (
		id TEXT PRIMARY KEY,
		path TEXT,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 0,
		editor_focused BOOLEAN NOT NULL DEFAULT 0,
		opened_at TIMESTAMP NOT NULL,
		focused_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_views_path ON views(path);
	CREATE INDEX IF NOT EXISTS idx_views_position ON views(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// List returns all views in tab order.
func (s *Session) List() ([]*View, error) {
	rows, err := s.db.Query(`
	SELECT id, path, kind, position, active, editor_focused, opened_at, focused_at
	FROM views ORDER BY position, opened_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// Get retrieves a view by ID.
func (s *Session) Get(id string) (*View, error) {
	row := s.db.QueryRow(`
	SELECT id, path, kind, position, active, editor_focused, opened_at, focused_at
	FROM views WHERE id = ?
	`, id)
	v, err := scanView(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, ErrViewNotFound)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Active returns the foreground view, or nil when nothing is open.
func (s *Session) Active() (*View, error) {
	views, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.Active {
			return v, nil
		}
	}
	return nil, nil
}

// OpenViews implements locator.Workspace.
func (s *Session) OpenViews() ([]locator.View, error) {
	views, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]locator.View, len(views))
	for i, v := range views {
		out[i] = v
	}
	return out, nil
}

// Reveal brings v to the foreground.
func (s *Session) Reveal(lv locator.View) error {
	v, err := s.own(lv)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("UPDATE views SET active = 0, editor_focused = 0 WHERE id != ?", v.ID); err != nil {
		return err
	}
	res, err := tx.Exec("UPDATE views SET active = 1, focused_at = ? WHERE id = ?", s.now(), v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", v.ID, ErrViewNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	v.Active = true
	return nil
}

// FocusEditor moves input focus into the editor of v.
func (s *Session) FocusEditor(lv locator.View) error {
	v, err := s.own(lv)
	if err != nil {
		return err
	}
	if !v.CanFocusEditor() {
		return fmt.Errorf("view %s has no editor", v.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("UPDATE views SET editor_focused = (id = ?)", v.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	v.EditorFocused = true
	return nil
}

// OpenNew opens path in a new foreground view, creating an empty note in
// the vault when the file does not exist yet.
func (s *Session) OpenNew(path string) error {
	abs, created, err := s.vault.EnsureFile(path)
	if err != nil {
		return err
	}

	kind := KindFile
	if strings.EqualFold(filepath.Ext(path), ".md") {
		kind = KindMarkdown
	}

	v, err := s.insert(path, kind)
	if err != nil {
		return err
	}

	if s.onOpen != nil {
		s.onOpen(v, abs, created)
	}
	return nil
}

// OpenEmpty opens a view that shows no file.
func (s *Session) OpenEmpty() (*View, error) {
	return s.insert("", KindEmpty)
}

// CloseView removes a view. When it was in the foreground the last
// remaining view takes its place.
func (s *Session) CloseView(id string) error {
	v, err := s.Get(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM views WHERE id = ?", id); err != nil {
		return err
	}
	if !v.Active {
		return nil
	}

	views, err := s.List()
	if err != nil || len(views) == 0 {
		return err
	}
	return s.Reveal(views[len(views)-1])
}

// CloseAll removes every view.
func (s *Session) CloseAll() error {
	_, err := s.db.Exec("DELETE FROM views")
	return err
}

// Close closes the database.
func (s *Session) Close() error {
	return s.db.Close()
}

func (s *Session) insert(path string, kind Kind) (*View, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var last sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(position) FROM views").Scan(&last); err != nil {
		return nil, err
	}

	now := s.now()
	v := &View{
		ID:            uuid.NewString(),
		Path:          path,
		Kind:          kind,
		Position:      int(last.Int64) + 1,
		Active:        true,
		EditorFocused: kind == KindMarkdown,
		OpenedAt:      now,
		FocusedAt:     now,
	}
	if !last.Valid {
		v.Position = 0
	}

	if _, err := tx.Exec("UPDATE views SET active = 0, editor_focused = 0"); err != nil {
		return nil, err
	}

	var dbPath any
	if path != "" {
		dbPath = path
	}
	_, err = tx.Exec(`
	INSERT INTO views (id, path, kind, position, active, editor_focused, opened_at, focused_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, dbPath, v.Kind, v.Position, v.Active, v.EditorFocused, v.OpenedAt, v.FocusedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return v, nil
}

// own converts a locator view back into a session view.
func (s *Session) own(lv locator.View) (*View, error) {
	v, ok := lv.(*View)
	if !ok || v == nil {
		return nil, fmt.Errorf("view of type %T does not belong to this session", lv)
	}
	return v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(row scanner) (*View, error) {
	v := &View{}
	var (
		path      sql.NullString
		kind      string
		focusedAt sql.NullTime
	)
	if err := row.Scan(&v.ID, &path, &kind, &v.Position, &v.Active, &v.EditorFocused, &v.OpenedAt, &focusedAt); err != nil {
		return nil, err
	}
	v.Path = path.String
	v.Kind = Kind(kind)
	if focusedAt.Valid {
		v.FocusedAt = focusedAt.Time
	}
	return v, nil
}
