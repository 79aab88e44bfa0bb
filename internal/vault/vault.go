// Package vault provides the note provider over a directory of markdown
// files. Notes are addressed by a stable identifier derived from their
// vault-relative path (or an explicit frontmatter id), so the processing
// engine never touches the filesystem directly.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/shrikehq/shrike/internal/atomicfile"
)

var (
	// ErrNoteNotFound indicates no note matches the given identifier.
	ErrNoteNotFound = errors.New("note not found in vault")
	// ErrVaultNotFound indicates the vault directory does not exist.
	ErrVaultNotFound = errors.New("vault directory not found")
)

// Vault is a directory of markdown notes.
type Vault struct {
	path string
}

// Open opens an existing vault directory.
func Open(path string) (*Vault, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, path)
		}
		return nil, fmt.Errorf("stat vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrVaultNotFound, path)
	}
	return &Vault{path: path}, nil
}

// Path returns the vault root directory.
func (v *Vault) Path() string {
	return v.path
}

// NoteID derives the stable identifier for a vault-relative path: the
// ".md" suffix is stripped and each path component is slugified.
func NoteID(relPath string) string {
	relPath = strings.TrimSuffix(filepath.ToSlash(relPath), ".md")
	parts := strings.Split(relPath, "/")
	for i, part := range parts {
		if s := goslug.Make(part); s != "" {
			parts[i] = s
		}
	}
	return strings.Join(parts, "/")
}

// Get returns the full text of the note with the given identifier.
func (v *Vault) Get(id string) (string, error) {
	path, err := v.resolve(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note %s: %w", id, err)
	}
	return string(data), nil
}

// Replace atomically overwrites the note's text.
func (v *Vault) Replace(id string, text string) error {
	path, err := v.resolve(id)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(path, []byte(text), 0); err != nil {
		return fmt.Errorf("write note %s: %w", id, err)
	}
	return nil
}

// Walk visits every markdown note in the vault, skipping the .shrike data
// directory, and calls fn with each note's identifier and text.
func (v *Vault) Walk(fn func(id, text string) error) error {
	return filepath.WalkDir(v.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == DataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		rel, err := filepath.Rel(v.path, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		text := string(data)
		return fn(noteIDFor(rel, text), text)
	})
}

// DataDirName is the vault-local directory holding shrike's journal.
const DataDirName = ".shrike"

// DataDir returns the vault's data directory path.
func (v *Vault) DataDir() string {
	return filepath.Join(v.path, DataDirName)
}

// resolve maps an identifier back to a file path. The common case is the
// identifier being the slugged relative path, which resolves directly;
// otherwise the vault is walked to find a frontmatter id or slug match.
func (v *Vault) resolve(id string) (string, error) {
	direct := filepath.Join(v.path, filepath.FromSlash(id)+".md")
	if within(v.path, direct) {
		if _, err := os.Stat(direct); err == nil {
			return direct, nil
		}
	}

	var found string
	err := filepath.WalkDir(v.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" {
			return err
		}
		if d.IsDir() {
			if d.Name() == DataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(v.path, path)
		if relErr != nil {
			return relErr
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if noteIDFor(rel, string(data)) == id {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("resolve note %s: %w", id, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return found, nil
}

// noteIDFor prefers an explicit frontmatter id over the path-derived one.
func noteIDFor(relPath, text string) string {
	if fm, _ := ParseFrontmatter(text); fm != nil && fm.ID != "" {
		return fm.ID
	}
	return NoteID(relPath)
}

func within(base, candidate string) bool {
	rel, err := filepath.Rel(base, candidate)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
