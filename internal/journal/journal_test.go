package journal

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndEntries(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append(Entry{Identifier: "inbox", Keys: "ABC-1,XY-2", Timestamp: 100}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(Entry{Identifier: "projects/launch", Keys: "ABC-3", SecondOrg: true, Timestamp: 200}); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Identifier != "inbox" || entries[0].Keys != "ABC-1,XY-2" || entries[0].SecondOrg {
		t.Fatalf("entry 0: %+v", entries[0])
	}
	if entries[1].Identifier != "projects/launch" || !entries[1].SecondOrg {
		t.Fatalf("entry 1: %+v", entries[1])
	}

	got := entries[0].KeyList()
	if len(got) != 2 || got[0] != "ABC-1" || got[1] != "XY-2" {
		t.Fatalf("KeyList=%v", got)
	}
}

func TestAppendFillsTimestamp(t *testing.T) {
	s := openTestStore(t)
	if err := s.Append(Entry{Identifier: "inbox", Keys: "ABC-1"}); err != nil {
		t.Fatal(err)
	}
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Timestamp == 0 {
		t.Fatal("timestamp not filled")
	}
}

func TestIdentifiersDeduped(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"a", "b", "a", "c", "b"} {
		if err := s.Append(Entry{Identifier: id, Keys: "ABC-1", Timestamp: 1}); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := s.Identifiers()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("ids=%v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids=%v, want %v", ids, want)
		}
	}
}

func TestEmptyKeyList(t *testing.T) {
	if got := (Entry{}).KeyList(); got != nil {
		t.Fatalf("KeyList=%v, want nil", got)
	}
}
