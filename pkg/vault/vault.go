// Package vault maps vault-relative note paths onto a directory.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideVault = errors.New("path escapes the vault")

// Vault is a directory of notes.
type Vault struct {
	Root string
}

// New returns a vault rooted at root.
func New(root string) *Vault {
	return &Vault{Root: root}
}

// Abs returns the absolute location of a vault-relative path.
func (v *Vault) Abs(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideVault)
	}
	return filepath.Join(v.Root, clean), nil
}

// EnsureFile creates rel as an empty file, along with missing parent
// directories, unless it already exists. It returns the absolute path and
// whether the file was created.
func (v *Vault) EnsureFile(rel string) (string, bool, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", false, fmt.Errorf("create note dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return abs, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("create note: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("create note: %w", err)
	}
	return abs, true, nil
}

// FirstLinkpathDest resolves a link the way a wiki link would: the exact
// path, then the path with ".md" appended, then the first note anywhere in
// the vault with the same file name. It returns the vault-relative path of
// the match.
func (v *Vault) FirstLinkpathDest(linkpath string) (string, bool) {
	linkpath = strings.TrimSpace(linkpath)
	if linkpath == "" {
		return "", false
	}

	candidates := []string{linkpath}
	if !strings.EqualFold(filepath.Ext(linkpath), ".md") {
		candidates = append(candidates, linkpath+".md")
	}
	for _, c := range candidates {
		if v.isFile(c) {
			return filepath.ToSlash(filepath.Clean(c)), true
		}
	}

	names := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		names[filepath.Base(c)] = true
	}

	var found string
	_ = filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != v.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if names[d.Name()] {
			rel, err := filepath.Rel(v.Root, path)
			if err == nil {
				found = filepath.ToSlash(rel)
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found, found != ""
}

func (v *Vault) isFile(rel string) bool {
	abs, err := v.Abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}
