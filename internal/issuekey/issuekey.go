// Package issuekey provides canonical parsing/scanning of issue keys.
//
// Key grammar:
//   ABC-123
//
// Notes:
// - The project prefix is one uppercase letter followed by at least one
//   uppercase letter or digit; the numeric part has at least one digit.
// - Keys are case-sensitive: "abc-123" is not a key.
// - This package intentionally does NOT understand link syntax; the splice
//   package decides which textual shapes of a key are rewritten.
package issuekey

import "regexp"

// Grammar is the bare key pattern, exported so dialect matchers can embed it.
const Grammar = `[A-Z][A-Z0-9]+-[0-9]+`

var re = regexp.MustCompile(`\b(` + Grammar + `)\b`)

// IsValid reports whether s is exactly an issue key.
func IsValid(s string) bool {
	m := re.FindStringIndex(s)
	return m != nil && m[0] == 0 && m[1] == len(s)
}

// Extract returns the distinct keys in text, ordered by first appearance.
// It never fails; an empty slice means nothing to do.
func Extract(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		keys = append(keys, m)
	}
	return keys
}
