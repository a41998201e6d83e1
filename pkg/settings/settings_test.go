package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, []string{"journal/{YYYY-MM-DD}.md"}, s.Files)
	assert.True(t, s.UseExistingPane)
}

func TestNormalize(t *testing.T) {
	in := Settings{Files: []string{"  a.md ", "", "   ", "b/{YYYY}.md"}}
	out := in.Normalize()

	assert.Equal(t, []string{"a.md", "b/{YYYY}.md"}, out.Files)
	assert.Equal(t, "  a.md ", in.Files[0], "receiver is untouched")

	var many Settings
	for i := 0; i < MaxTemplates+3; i++ {
		many.Files = append(many.Files, fmt.Sprintf("note-%d.md", i))
	}
	capped := many.Normalize()
	assert.Len(t, capped.Files, MaxTemplates)
	assert.Equal(t, "note-9.md", capped.Files[MaxTemplates-1])
}

func TestEditing(t *testing.T) {
	s := Settings{}
	for i := 0; i < MaxTemplates; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("%d.md", i)))
	}
	assert.ErrorIs(t, s.Add("overflow.md"), ErrLimitReached)

	require.NoError(t, s.Set(0, "first.md"))
	assert.Equal(t, "first.md", s.Template(0))
	assert.True(t, errors.Is(s.Set(MaxTemplates, "x.md"), ErrNoSuchSlot))

	require.NoError(t, s.Remove(0))
	assert.Equal(t, "1.md", s.Template(0))
	assert.Len(t, s.Files, MaxTemplates-1)
	assert.ErrorIs(t, s.Remove(-1), ErrNoSuchSlot)
	assert.Equal(t, "", s.Template(42))
}

func TestFileStoreMissingFileGivesDefaults(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, ext := range []string{"yaml", "yml", "toml", "json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "settings."+ext)
			store, err := NewFileStore(path)
			require.NoError(t, err)

			want := Settings{
				Files:           []string{"journal/{YYYY-MM-DD}.md", "Weekly Notes/{mon:YYYY-MM-DD} week.md"},
				UseExistingPane: false,
			}
			require.NoError(t, store.Save(want))

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestFileStoreMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    Settings
	}{
		{
			name:    "only pane flag",
			file:    "a.yaml",
			content: "useExistingPane: false\n",
			want:    Settings{Files: []string{DefaultTemplate}, UseExistingPane: false},
		},
		{
			name:    "only files",
			file:    "b.json",
			content: `{"files": ["x.md"]}`,
			want:    Settings{Files: []string{"x.md"}, UseExistingPane: true},
		},
		{
			name:    "explicit empty list",
			file:    "c.toml",
			content: "files = []\n",
			want:    Settings{Files: []string{}, UseExistingPane: true},
		},
		{
			name:    "empty file",
			file:    "d.json",
			content: "",
			want:    Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := (&FileStore{Path: path}).Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStoreErrors(t *testing.T) {
	_, err := NewFileStore("settings.ini")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files: [unclosed\n"), 0o644))
	_, err = (&FileStore{Path: path}).Load()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	s, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)

	s.Files = append(s.Files, "x.md")
	require.NoError(t, m.Save(s))
	s.Files[0] = "mutated"

	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultTemplate, "x.md"}, got.Files)
	assert.Equal(t, 1, m.Saves)
}
