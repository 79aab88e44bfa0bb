// Package testutil provides reusable test utilities for Shrike tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVault represents a temporary notes vault for testing.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestVault creates a new test vault builder.
// Call Build() to create the actual vault directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithNote adds a markdown note to the vault.
// The path is relative to the vault root.
func (v *TestVault) WithNote(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// Build creates the vault directory and all configured notes.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for path, content := range v.files {
		v.writeFile(path, content)
	}
	return v
}

func (v *TestVault) writeFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		v.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		v.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadNote returns the content of a note in the vault.
func (v *TestVault) ReadNote(relPath string) string {
	v.t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, relPath))
	if err != nil {
		v.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertNoteContains fails the test if the note does not contain the substring.
func (v *TestVault) AssertNoteContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadNote(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertNoteNotContains fails the test if the note contains the substring.
func (v *TestVault) AssertNoteNotContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadNote(relPath)
	if strings.Contains(content, substr) {
		v.t.Errorf("expected %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}
