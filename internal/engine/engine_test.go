package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shrikehq/shrike/internal/jira"
	"github.com/shrikehq/shrike/internal/journal"
	"github.com/shrikehq/shrike/internal/props"
	"github.com/shrikehq/shrike/internal/render"
)

type fakeBuffers struct {
	notes    map[string]string
	replaced map[string]string
}

func newFakeBuffers(notes map[string]string) *fakeBuffers {
	return &fakeBuffers{notes: notes, replaced: map[string]string{}}
}

func (b *fakeBuffers) Get(id string) (string, error) {
	text, ok := b.notes[id]
	if !ok {
		return "", fmt.Errorf("note not found: %s", id)
	}
	return text, nil
}

func (b *fakeBuffers) Replace(id string, text string) error {
	b.notes[id] = text
	b.replaced[id] = text
	return nil
}

type fakeLog struct {
	entries []journal.Entry
}

func (l *fakeLog) Append(e journal.Entry) error {
	l.entries = append(l.entries, e)
	return nil
}

func (l *fakeLog) Identifiers() ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	for _, e := range l.entries {
		if !seen[e.Identifier] {
			seen[e.Identifier] = true
			ids = append(ids, e.Identifier)
		}
	}
	return ids, nil
}

func testServer(t *testing.T, fail map[string]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/rest/api/2/issue/")
		if fail[key] {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{
			"key": %q,
			"fields": {
				"summary": "summary %s",
				"status": {"name": "Done", "statusCategory": {"name": "Done", "colorName": "green"}},
				"assignee": {"displayName": "Ada"},
				"resolution": {"name": "Fixed"}
			}
		}`, key, key)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testEngine(t *testing.T, srv *httptest.Server, buffers Buffers, log Log, opts Options) *Engine {
	t.Helper()
	client := jira.NewClient(jira.Org{
		BaseURL:    srv.URL,
		APIVersion: "2",
		Account:    "a@example.com",
		Token:      "secret",
	}, nil)
	return New(client, buffers, log, opts)
}

func defaultOpts() Options {
	return Options{
		Dialect:       render.DialectMarkdown,
		InlineUpdates: true,
		Annotate:      true,
		Properties:    props.Options{Summary: true, Status: true},
		Separator:     "::",
	}
}

func TestProcessSplicesAndAnnotates(t *testing.T) {
	srv := testServer(t, nil)
	buffers := newFakeBuffers(map[string]string{
		"inbox": "Work on ABC-1 today\n",
	})
	log := &fakeLog{}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	result, err := e.Process(context.Background(), "inbox")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected note to change")
	}

	got := buffers.notes["inbox"]
	wantRef := fmt.Sprintf("[✅ Done - ABC-1 summary ABC-1](%s/browse/ABC-1)", srv.URL)
	if !strings.Contains(got, wantRef) {
		t.Fatalf("spliced text missing reference:\n%s", got)
	}
	if !strings.Contains(got, "summary:: summary ABC-1") || !strings.Contains(got, "status:: Done") {
		t.Fatalf("properties missing:\n%s", got)
	}

	if len(log.entries) != 1 {
		t.Fatalf("journal entries: %+v", log.entries)
	}
	if log.entries[0].Identifier != "inbox" || log.entries[0].Keys != "ABC-1" {
		t.Fatalf("journal entry: %+v", log.entries[0])
	}
	if log.entries[0].Timestamp != 0 {
		// Timestamp is filled by the journal store, not the engine.
		t.Fatalf("engine should leave timestamp zero, got %d", log.entries[0].Timestamp)
	}
}

func TestProcessNoKeys(t *testing.T) {
	srv := testServer(t, nil)
	buffers := newFakeBuffers(map[string]string{"inbox": "plain text\n"})
	log := &fakeLog{}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	_, err := e.Process(context.Background(), "inbox")
	if !errors.Is(err, ErrNoIssueKeys) {
		t.Fatalf("err=%v, want ErrNoIssueKeys", err)
	}
	if len(buffers.replaced) != 0 || len(log.entries) != 0 {
		t.Fatal("note must be untouched and unjournaled")
	}
}

func TestProcessEmptyID(t *testing.T) {
	srv := testServer(t, nil)
	e := testEngine(t, srv, newFakeBuffers(nil), &fakeLog{}, defaultOpts())
	if _, err := e.Process(context.Background(), "  "); !errors.Is(err, ErrNoCurrentNote) {
		t.Fatalf("err=%v, want ErrNoCurrentNote", err)
	}
}

func TestProcessTotalResolutionFailure(t *testing.T) {
	srv := testServer(t, map[string]bool{"ABC-1": true, "XY-2": true})
	buffers := newFakeBuffers(map[string]string{"inbox": "ABC-1 and XY-2\n"})
	log := &fakeLog{}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	result, err := e.Process(context.Background(), "inbox")
	if !errors.Is(err, ErrNothingResolved) {
		t.Fatalf("err=%v, want ErrNothingResolved", err)
	}
	if len(result.Failed) != 2 {
		t.Fatalf("failed=%v", result.Failed)
	}
	if buffers.notes["inbox"] != "ABC-1 and XY-2\n" {
		t.Fatal("note must be untouched on total failure")
	}
	if len(log.entries) != 0 {
		t.Fatal("no journal entry on total failure")
	}
}

func TestProcessPartialFailureProceeds(t *testing.T) {
	srv := testServer(t, map[string]bool{"BAD-1": true})
	buffers := newFakeBuffers(map[string]string{"inbox": "BAD-1 then ABC-1\n"})
	log := &fakeLog{}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	result, err := e.Process(context.Background(), "inbox")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "BAD-1" {
		t.Fatalf("failed=%v", result.Failed)
	}

	got := buffers.notes["inbox"]
	if !strings.Contains(got, "BAD-1 then [") {
		t.Fatalf("BAD-1 must stay bare, ABC-1 must be spliced:\n%s", got)
	}
	// BAD-1 was first in the note but failed; properties come from the
	// first key that actually resolved.
	if !strings.Contains(got, "summary:: summary ABC-1") {
		t.Fatalf("properties should describe ABC-1:\n%s", got)
	}
}

func TestProcessRespectsInlineUpdatesOff(t *testing.T) {
	srv := testServer(t, nil)
	buffers := newFakeBuffers(map[string]string{"inbox": "see ABC-1\n"})
	log := &fakeLog{}
	opts := defaultOpts()
	opts.InlineUpdates = false
	e := testEngine(t, srv, buffers, log, opts)

	if _, err := e.Process(context.Background(), "inbox"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := buffers.notes["inbox"]
	if !strings.HasPrefix(got, "see ABC-1\n") {
		t.Fatalf("inline text must be unchanged:\n%s", got)
	}
	if !strings.Contains(got, "status:: Done") {
		t.Fatalf("annotation should still run:\n%s", got)
	}
}

func TestProcessSkipsFrontmatter(t *testing.T) {
	srv := testServer(t, nil)
	note := "---\nid: inbox\ntags: ABC-9\n---\nbody ABC-1\n"
	buffers := newFakeBuffers(map[string]string{"inbox": note})
	log := &fakeLog{}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	result, err := e.Process(context.Background(), "inbox")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Keys) != 1 || result.Keys[0] != "ABC-1" {
		t.Fatalf("keys=%v, frontmatter key must not be extracted", result.Keys)
	}
	got := buffers.notes["inbox"]
	if !strings.HasPrefix(got, "---\nid: inbox\ntags: ABC-9\n---\n") {
		t.Fatalf("frontmatter must be preserved verbatim:\n%s", got)
	}
}

func TestRefreshSequential(t *testing.T) {
	srv := testServer(t, nil)
	buffers := newFakeBuffers(map[string]string{
		"a": "note ABC-1\n",
		"b": "note XY-2\n",
		"c": "keys got deleted\n",
	})
	log := &fakeLog{}
	for _, id := range []string{"a", "b", "c"} {
		if err := log.Append(journal.Entry{Identifier: id, Keys: "ABC-1"}); err != nil {
			t.Fatal(err)
		}
	}
	e := testEngine(t, srv, buffers, log, defaultOpts())

	reports, err := e.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("reports=%d", len(reports))
	}
	if reports[0].Err != nil || reports[1].Err != nil {
		t.Fatalf("unexpected errors: %+v", reports)
	}
	// Note "c" no longer contains keys; the sweep reports it and moves on.
	if !errors.Is(reports[2].Err, ErrNoIssueKeys) {
		t.Fatalf("report c err=%v", reports[2].Err)
	}
}
