package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolvePartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/rest/api/2/issue/")
		if key == "BAD-1" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, issueJSON(key, "summary for "+key, "Done", "green"))
	}))
	defer srv.Close()

	c := NewClient(testOrg(srv.URL), nil)
	resolved, failed, err := c.Resolve(context.Background(), []string{"ABC-1", "BAD-1", "XY-7"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(resolved) != 2 {
		t.Fatalf("resolved %d issues, want 2: %+v", len(resolved), resolved)
	}
	if _, ok := resolved["ABC-1"]; !ok {
		t.Error("ABC-1 missing from result")
	}
	if _, ok := resolved["XY-7"]; !ok {
		t.Error("XY-7 missing from result")
	}
	if len(failed) != 1 || failed[0] != "BAD-1" {
		t.Fatalf("failed=%v, want [BAD-1]", failed)
	}
}

func TestResolveKeyedIndependentOfCompletionOrder(t *testing.T) {
	// Each key resolves to its own summary no matter how the concurrent
	// requests interleave.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/rest/api/2/issue/")
		fmt.Fprint(w, issueJSON(key, "summary for "+key, "Done", "green"))
	}))
	defer srv.Close()

	c := NewClient(testOrg(srv.URL), nil)
	keys := []string{"A1-1", "A1-2", "A1-3", "A1-4", "A1-5", "A1-6", "A1-7", "A1-8"}
	resolved, failed, err := c.Resolve(context.Background(), keys)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(failed) != 0 {
		t.Fatalf("failed=%v", failed)
	}
	for _, key := range keys {
		iss, ok := resolved[key]
		if !ok {
			t.Fatalf("key %s missing", key)
		}
		if iss.Summary != "summary for "+key {
			t.Fatalf("key %s got summary %q", key, iss.Summary)
		}
	}
}

func TestResolveAllFailedReturnsEmptyMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testOrg(srv.URL), nil)
	resolved, failed, err := c.Resolve(context.Background(), []string{"ABC-1", "ABC-2"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 0 {
		t.Fatalf("resolved=%v, want empty", resolved)
	}
	if len(failed) != 2 {
		t.Fatalf("failed=%v, want both keys", failed)
	}
}
