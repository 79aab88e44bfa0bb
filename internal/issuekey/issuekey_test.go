package issuekey

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ABC-123", true},
		{"A1-9", true},
		{"PROJ-1", true},
		{"abc-123", false},
		{"A-123", false},
		{"ABC-", false},
		{"ABC123", false},
		{"see ABC-123", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValid(tt.in); got != tt.want {
				t.Fatalf("IsValid(%q)=%v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractOrderAndDedupe(t *testing.T) {
	text := "Blocked on XY-2, see ABC-10 and XY-2 again (also ABC-10)."
	got := Extract(text)
	want := []string{"XY-2", "ABC-10"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestExtractEmpty(t *testing.T) {
	if got := Extract("no keys here, just text-123 and ABC"); got != nil {
		t.Fatalf("expected no keys, got %v", got)
	}
}

func TestExtractInsideRenderedReference(t *testing.T) {
	// A previously spliced line still contains the bare key; extraction
	// must keep finding it so refresh can re-resolve.
	text := "[✅ Done - ABC-1 Fix login](https://x.atlassian.net/browse/ABC-1)"
	got := Extract(text)
	if len(got) != 1 || got[0] != "ABC-1" {
		t.Fatalf("got %v, want [ABC-1]", got)
	}
}
