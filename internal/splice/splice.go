// Package splice rewrites issue-key occurrences in note text with rendered
// references, leaving every byte outside a match unchanged.
//
// Each dialect is an ordered list of matchers, one per textual shape a
// reference can take (already-linked first, bare key second). Order is
// significant: the shape matched by an earlier matcher wins, and a key it
// substitutes is never substituted again by a later matcher in the same
// pass.
package splice

import (
	"regexp"

	"github.com/shrikehq/shrike/internal/issuekey"
	"github.com/shrikehq/shrike/internal/render"
)

// Matcher pairs a surface pattern with the rule for extracting the issue
// key from a match.
type Matcher struct {
	Pattern *regexp.Regexp
	// KeyGroup is the submatch index that captures the issue key.
	KeyGroup int
}

var (
	wikiLinked = regexp.MustCompile(`\[\[[^\]\n|]+\|[^\]\n]*?\b(` + issuekey.Grammar + `)\b[^\]\n]*\]\]`)
	mdLinked   = regexp.MustCompile(`\[[^\]\n]*?\b(` + issuekey.Grammar + `)\b[^\]\n]*\]\([^)\n]+\)`)
	bareKey    = regexp.MustCompile(`\b(` + issuekey.Grammar + `)\b`)
)

// Matchers returns the dialect's surface patterns in priority order.
func Matchers(d render.Dialect) []Matcher {
	linked := wikiLinked
	if d == render.DialectMarkdown {
		linked = mdLinked
	}
	return []Matcher{
		{Pattern: linked, KeyGroup: 1},
		{Pattern: bareKey, KeyGroup: 1},
	}
}

// Apply splices rendered references into text. For each matcher, in order,
// every match whose key is present in refs and not yet substituted in this
// call is replaced with its rendered reference; all other matches are
// echoed back verbatim. A key already inside a linked shape is therefore
// refreshed in place, and its remaining bare occurrences are left alone.
func Apply(text string, refs map[string]string, d render.Dialect) string {
	done := make(map[string]bool)

	for _, m := range Matchers(d) {
		text = m.Pattern.ReplaceAllStringFunc(text, func(match string) string {
			groups := m.Pattern.FindStringSubmatch(match)
			if groups == nil || len(groups) <= m.KeyGroup {
				return match
			}
			key := groups[m.KeyGroup]
			rendered, known := refs[key]
			if !known || done[key] {
				return match
			}
			done[key] = true
			return rendered
		})
	}

	return text
}
