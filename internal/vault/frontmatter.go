package vault

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the parsed YAML header of a note.
type Frontmatter struct {
	// ID is an optional explicit note identifier overriding the
	// path-derived one.
	ID string `yaml:"id"`

	// Raw is the frontmatter text between the delimiters.
	Raw string
}

// SplitFrontmatter separates a note into its frontmatter block (including
// both "---" delimiter lines and the trailing newline) and the body.
// Notes without frontmatter return an empty head and the full text as body,
// so head+body always reassembles the original text byte for byte.
func SplitFrontmatter(text string) (head, body string) {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			n := 0
			for _, l := range lines[:i+1] {
				n += len(l)
			}
			return text[:n], text[n:]
		}
	}
	return "", text // unclosed frontmatter is treated as body
}

// ParseFrontmatter parses the YAML frontmatter of a note, if present.
// Returns nil with no error when the note has none.
func ParseFrontmatter(text string) (*Frontmatter, error) {
	head, _ := SplitFrontmatter(text)
	if head == "" {
		return nil, nil
	}

	lines := strings.Split(strings.TrimRight(head, "\n"), "\n")
	raw := strings.Join(lines[1:len(lines)-1], "\n")

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	fm.Raw = raw
	return &fm, nil
}
