package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-hotkey/pkg/commands"
	"github.com/mattsolo1/grove-hotkey/pkg/locator"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
)

// Thursday, March 7th 2024.
var thursday = time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store settings.Store) (*Service, string) {
	t.Helper()
	tmpDir := t.TempDir()
	vaultDir := filepath.Join(tmpDir, "vault")
	require.NoError(t, os.MkdirAll(vaultDir, 0755))

	cfg := &Config{
		VaultDir:     vaultDir,
		DataDir:      filepath.Join(tmpDir, "data"),
		SettingsFile: filepath.Join(tmpDir, "settings.yaml"),
	}
	opts := []Option{WithClock(func() time.Time { return thursday })}
	if store != nil {
		opts = append(opts, WithStore(store))
	}

	svc, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, vaultDir
}

func TestNewRegistersDefaultCommand(t *testing.T) {
	svc, _ := newTestService(t, nil)

	cmds := svc.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "magic-file-hotkey:open-file-0", cmds[0].ID)
	assert.Equal(t, "1 🔮  'journal/2024-03-07.md'", cmds[0].Label)
	assert.True(t, svc.Settings().UseExistingPane)
}

func TestInvokeOpensThenFocuses(t *testing.T) {
	svc, vaultDir := newTestService(t, nil)

	res, err := svc.Invoke(0)
	require.NoError(t, err)
	assert.Equal(t, locator.ActionOpened, res.Action)
	assert.Equal(t, "journal/2024-03-07.md", res.Path)
	assert.FileExists(t, filepath.Join(vaultDir, "journal", "2024-03-07.md"))

	_, err = svc.OpenTemplate("inbox.md")
	require.NoError(t, err)

	res, err = svc.InvokeID(commands.CommandID(0))
	require.NoError(t, err)
	assert.Equal(t, locator.ActionFocused, res.Action)

	views, err := svc.Session.List()
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Active)

	_, err = svc.Invoke(5)
	assert.ErrorIs(t, err, commands.ErrNotFound)
}

func TestRegisteredCallbackOpensNote(t *testing.T) {
	svc, _ := newTestService(t, nil)

	require.NoError(t, svc.Registry().Run(commands.CommandID(0)))
	views, err := svc.Session.List()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "journal/2024-03-07.md", views[0].Path)
}

func TestUseExistingPaneOff(t *testing.T) {
	svc, _ := newTestService(t, &settings.MemoryStore{})
	require.NoError(t, svc.SetUseExistingPane(false))

	for i := 0; i < 2; i++ {
		res, err := svc.Invoke(0)
		require.NoError(t, err)
		assert.Equal(t, locator.ActionOpened, res.Action)
	}
	views, err := svc.Session.List()
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestUpdateSettingsResyncs(t *testing.T) {
	store := &settings.MemoryStore{}
	svc, _ := newTestService(t, store)

	next := svc.Settings()
	next.Files = []string{"  ", "Weekly Notes/{mon:YYYY-MM-DD} week.md", "inbox.md"}
	require.NoError(t, svc.UpdateSettings(next))

	assert.Equal(t, 1, store.Saves)
	assert.Equal(t, []string{"Weekly Notes/{mon:YYYY-MM-DD} week.md", "inbox.md"}, svc.Settings().Files)

	cmds := svc.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "1 🔮  'Weekly Notes/2024-03-04 week.md'", cmds[0].Label)
	assert.Equal(t, "2 💎  'inbox.md'", cmds[1].Label)

	res, err := svc.Invoke(0)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Notes/2024-03-04 week.md", res.Path)
}

func TestEmptyTemplatesNeverOpen(t *testing.T) {
	store := &settings.MemoryStore{}
	require.NoError(t, store.Save(settings.Settings{Files: []string{""}, UseExistingPane: true}))
	svc, _ := newTestService(t, store)

	assert.Empty(t, svc.Commands())
	_, err := svc.OpenTemplate("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	views, err := svc.Session.List()
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestPreview(t *testing.T) {
	svc, vaultDir := newTestService(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(vaultDir, "journal"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "journal", "2024-03-07.md"), nil, 0644))

	p := svc.Preview("journal/{YYYY-MM-DD}.md")
	assert.Equal(t, "journal/2024-03-07.md", p.Resolved)
	assert.True(t, p.Magic)
	assert.True(t, p.Exists)
	assert.Equal(t, `"journal/2024-03-07.md" ✅`, p.String())

	p = svc.Preview("inbox.md")
	assert.False(t, p.Magic)
	assert.False(t, p.Exists)
	assert.Equal(t, `"inbox.md"`, p.String())

	assert.Equal(t, "", svc.Preview("").String())
	assert.False(t, PreviewWith(nil, "x.md", thursday).Exists)
}

type recordingWorkspace struct {
	opened []string
}

func (w *recordingWorkspace) OpenViews() ([]locator.View, error) { return nil, nil }
func (w *recordingWorkspace) Reveal(locator.View) error           { return nil }
func (w *recordingWorkspace) FocusEditor(locator.View) error      { return nil }
func (w *recordingWorkspace) OpenNew(path string) error {
	w.opened = append(w.opened, path)
	return nil
}

func TestCustomWorkspace(t *testing.T) {
	ws := &recordingWorkspace{}
	svc, err := New(&Config{VaultDir: t.TempDir()},
		WithStore(&settings.MemoryStore{}),
		WithWorkspace(ws),
		WithClock(func() time.Time { return thursday }),
	)
	require.NoError(t, err)
	defer svc.Close()

	assert.Nil(t, svc.Session)
	_, err = svc.Invoke(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"journal/2024-03-07.md"}, ws.opened)
}
