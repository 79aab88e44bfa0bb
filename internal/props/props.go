// Package props merges derived key/value annotations into a note's
// property lines (Logseq-style `name:: value`).
//
// Merge is a targeted upsert, not a rewrite: keys the caller does not
// manage are never touched. Updating an existing key uses a global line
// replace, so multiple pre-existing lines with the same name collapse to
// one value each; this mirrors the behavior notes already rely on.
package props

import (
	"regexp"
	"strings"

	"github.com/shrikehq/shrike/internal/jira"
)

// DefaultSeparator is the token between a property name and its value.
const DefaultSeparator = "::"

// Pair is one property name/value entry.
type Pair struct {
	Name  string
	Value string
}

// Set is an ordered collection of property pairs. Order is the order lines
// are appended in when missing from the text.
type Set struct {
	pairs []Pair
}

// Add appends a pair to the set.
func (s *Set) Add(name, value string) {
	s.pairs = append(s.pairs, Pair{Name: name, Value: value})
}

// Pairs returns the entries in order.
func (s *Set) Pairs() []Pair {
	return s.pairs
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.pairs)
}

// Merge upserts the set's pairs into text. A line whose content before the
// first separator matches a pair's name has its value replaced in place,
// keeping the line's indentation; names with no matching line are appended
// as new `name<sep> value` lines at the end. Everything else is returned
// unchanged.
func Merge(text string, set Set, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}

	existing := existingNames(text, sep)

	var missing []Pair
	for _, p := range set.Pairs() {
		if !existing[p.Name] {
			missing = append(missing, p)
			continue
		}
		// The pattern must accept every line shape existingNames detects
		// (leading indent, padding before the separator), or a detected
		// name would never reach the append path either. [ \t] keeps the
		// match on one line.
		line := regexp.MustCompile(`(?m)^([ \t]*)` + regexp.QuoteMeta(p.Name) + `[ \t]*` + regexp.QuoteMeta(sep) + `.*$`)
		repl := "${1}" + strings.ReplaceAll(p.Name+sep+" "+p.Value, "$", "$$")
		text = line.ReplaceAllString(text, repl)
	}

	for _, p := range missing {
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += p.Name + sep + " " + p.Value
	}

	return text
}

// existingNames collects the property names already present in text: for
// each line containing the separator, the substring before its first
// occurrence with space/tab padding trimmed. Trimming exactly what the
// Merge pattern tolerates keeps detection and replacement in agreement.
func existingNames(text string, sep string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, sep)
		if idx < 0 {
			continue
		}
		name := strings.Trim(line[:idx], " \t")
		if name != "" {
			names[name] = true
		}
	}
	return names
}

// Options selects which issue fields are annotated.
type Options struct {
	Summary    bool
	Status     bool
	Priority   bool
	Assignee   bool
	Reporter   bool
	FixVersion bool
	Resolution bool
}

// AllFields enables every property toggle.
func AllFields() Options {
	return Options{
		Summary:    true,
		Status:     true,
		Priority:   true,
		Assignee:   true,
		Reporter:   true,
		FixVersion: true,
		Resolution: true,
	}
}

// FromIssue derives the property set for one issue, filtered by the
// enabled toggles. Resolution is only emitted when the issue actually has
// one; an unresolved issue gets no resolution line at all.
func FromIssue(iss jira.Issue, opts Options) Set {
	var set Set
	if opts.Summary {
		set.Add("summary", iss.Summary)
	}
	if opts.Status {
		set.Add("status", iss.Status)
	}
	if opts.Priority {
		set.Add("priority", iss.Priority)
	}
	if opts.Assignee {
		set.Add("assignee", iss.Assignee)
	}
	if opts.Reporter {
		set.Add("reporter", iss.Reporter)
	}
	if opts.FixVersion {
		set.Add("fix-version", iss.FixVersion)
	}
	if opts.Resolution && iss.Resolution != nil {
		set.Add("resolution", *iss.Resolution)
	}
	return set
}
