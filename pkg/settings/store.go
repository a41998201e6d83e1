package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Store loads and saves settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// stored mirrors Settings with optional fields so keys missing from the
// file fall back to defaults individually.
type stored struct {
	Files           *[]string `yaml:"files" json:"files" toml:"files"`
	UseExistingPane *bool     `yaml:"useExistingPane" json:"useExistingPane" toml:"useExistingPane"`
}

func (st stored) overDefaults() Settings {
	s := Defaults()
	if st.Files != nil {
		s.Files = make([]string, len(*st.Files))
		copy(s.Files, *st.Files)
	}
	if st.UseExistingPane != nil {
		s.UseExistingPane = *st.UseExistingPane
	}
	return s
}

// FileStore keeps settings in a single file. The encoding follows the
// extension: .yaml/.yml, .toml or .json.
type FileStore struct {
	Path string
}

// NewFileStore returns a store for path after checking its extension.
func NewFileStore(path string) (*FileStore, error) {
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	return &FileStore{Path: path}, nil
}

// Load reads the settings file. A missing file yields Defaults.
func (f *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	format, err := formatOf(f.Path)
	if err != nil {
		return Settings{}, err
	}

	var st stored
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &st)
	case "toml":
		err = toml.Unmarshal(data, &st)
	case "json":
		if len(bytes.TrimSpace(data)) > 0 {
			err = json.Unmarshal(data, &st)
		}
	}
	if err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", f.Path, err)
	}

	return st.overDefaults(), nil
}

// Save writes the settings file atomically, creating parent directories.
func (f *FileStore) Save(s Settings) error {
	format, err := formatOf(f.Path)
	if err != nil {
		return err
	}
	if s.Files == nil {
		s.Files = []string{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	case ".json":
		return "json", nil
	}
	return "", fmt.Errorf("unsupported settings file %q: use .yaml, .toml or .json", path)
}

// MemoryStore keeps settings in memory. The zero value starts from Defaults.
type MemoryStore struct {
	settings *Settings
	Saves    int
}

func (m *MemoryStore) Load() (Settings, error) {
	if m.settings == nil {
		return Defaults(), nil
	}
	return m.settings.Clone(), nil
}

func (m *MemoryStore) Save(s Settings) error {
	c := s.Clone()
	m.settings = &c
	m.Saves++
	return nil
}
