// Package render formats a resolved issue as a single-line reference.
//
// Reference shapes:
//   wiki:     [[https://org.example/browse/ABC-1|✅ Done - ABC-1 Fix login]]
//   markdown: [✅ Done - ABC-1 Fix login](https://org.example/browse/ABC-1)
//
// The two dialects differ only in link syntax; field selection and ordering
// are identical.
package render

import (
	"fmt"
	"strings"

	"github.com/shrikehq/shrike/internal/jira"
)

// Dialect selects the link syntax for rendered references.
type Dialect int

const (
	DialectWiki Dialect = iota
	DialectMarkdown
)

// ParseDialect maps a config string to a Dialect. Unknown values fall back
// to the wiki dialect.
func ParseDialect(s string) Dialect {
	if strings.EqualFold(strings.TrimSpace(s), "markdown") {
		return DialectMarkdown
	}
	return DialectWiki
}

// Status glyphs, keyed off the Jira status-category color.
const (
	GlyphSuccess   = "✅"
	GlyphAttention = "🔴"
	GlyphNeutral   = "⚪"
)

// Glyph maps a status-category color name to a glyph. Unrecognized color
// names get the neutral glyph; this never fails.
func Glyph(colorName string) string {
	switch strings.ToLower(strings.TrimSpace(colorName)) {
	case "green":
		return GlyphSuccess
	case "yellow", "red":
		return GlyphAttention
	default:
		return GlyphNeutral
	}
}

// Reference renders one issue as a single line in the given dialect.
// The output never contains a newline, even if the remote summary does.
func Reference(iss jira.Issue, dialect Dialect) string {
	label := fmt.Sprintf("%s %s - %s %s",
		Glyph(iss.StatusColor), iss.Status, iss.Key, flatten(iss.Summary))

	if dialect == DialectMarkdown {
		return fmt.Sprintf("[%s](%s)", label, iss.SourceURL)
	}
	return fmt.Sprintf("[[%s|%s]]", iss.SourceURL, label)
}

// flatten collapses any embedded newlines so the reference stays one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
