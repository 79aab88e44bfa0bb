package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNoteID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"inbox.md", "inbox"},
		{"projects/Big Launch.md", "projects/big-launch"},
		{"daily/2026-08-30.md", "daily/2026-08-30"},
	}
	for _, tt := range tests {
		if got := NoteID(tt.in); got != tt.want {
			t.Errorf("NoteID(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetAndReplace(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "inbox.md", "hello ABC-1\n")

	v, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := v.Get("inbox")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello ABC-1\n" {
		t.Fatalf("Get=%q", got)
	}

	if err := v.Replace("inbox", "updated\n"); err != nil {
		t.Fatal(err)
	}
	got, err = v.Get("inbox")
	if err != nil {
		t.Fatal(err)
	}
	if got != "updated\n" {
		t.Fatalf("after Replace, Get=%q", got)
	}
}

func TestGetMissingNote(t *testing.T) {
	v, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Get("nope"); err == nil {
		t.Fatal("expected error for missing note")
	}
}

func TestFrontmatterIDResolution(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "scratch/x.md", "---\nid: launch-plan\n---\nbody\n")

	v, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := v.Get("launch-plan")
	if err != nil {
		t.Fatal(err)
	}
	if got != "---\nid: launch-plan\n---\nbody\n" {
		t.Fatalf("Get=%q", got)
	}
}

func TestWalkSkipsDataDir(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "A")
	writeNote(t, dir, "sub/b.md", "B")
	writeNote(t, dir, DataDirName+"/ignored.md", "nope")
	writeNote(t, dir, "notes.txt", "not markdown")

	v, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]string{}
	if err := v.Walk(func(id, text string) error {
		seen[id] = text
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 2 || seen["a"] != "A" || seen["sub/b"] != "B" {
		t.Fatalf("seen=%v", seen)
	}
}

func TestSplitFrontmatterRoundTrip(t *testing.T) {
	tests := []string{
		"---\nid: x\n---\nbody text\n",
		"no frontmatter here\n",
		"---\nunclosed\n",
		"",
	}
	for _, in := range tests {
		head, body := SplitFrontmatter(in)
		if head+body != in {
			t.Errorf("SplitFrontmatter(%q) does not reassemble: head=%q body=%q", in, head, body)
		}
	}
}

func TestSplitFrontmatterBody(t *testing.T) {
	head, body := SplitFrontmatter("---\nid: x\n---\nbody\n")
	if head != "---\nid: x\n---\n" {
		t.Fatalf("head=%q", head)
	}
	if body != "body\n" {
		t.Fatalf("body=%q", body)
	}
}

func TestOpenMissingVault(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing vault directory")
	}
}
