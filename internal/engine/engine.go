// Package engine composes extraction, resolution, rendering, splicing, and
// property merging into the note-enrichment pipeline.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shrikehq/shrike/internal/issuekey"
	"github.com/shrikehq/shrike/internal/jira"
	"github.com/shrikehq/shrike/internal/journal"
	"github.com/shrikehq/shrike/internal/props"
	"github.com/shrikehq/shrike/internal/render"
	"github.com/shrikehq/shrike/internal/splice"
	"github.com/shrikehq/shrike/internal/vault"
)

var (
	// ErrNoIssueKeys indicates the note contains no issue keys.
	ErrNoIssueKeys = errors.New("no issue keys found in note")
	// ErrNoCurrentNote indicates no note was selected to operate on.
	ErrNoCurrentNote = errors.New("no note selected")
	// ErrNothingResolved indicates every key's fetch failed; the note is
	// left untouched.
	ErrNothingResolved = errors.New("could not resolve any issue keys")
)

// Buffers is the capability the engine needs from the note provider.
type Buffers interface {
	Get(id string) (string, error)
	Replace(id string, text string) error
}

// Log is the append/iterate surface of the processed-reference journal.
type Log interface {
	Append(journal.Entry) error
	Identifiers() ([]string, error)
}

// Options carries every configuration setting the pipeline honors.
type Options struct {
	Dialect       render.Dialect
	InlineUpdates bool
	Annotate      bool
	Properties    props.Options
	Separator     string
	SecondOrg     bool
}

// Engine runs the enrichment pipeline for one org context.
type Engine struct {
	client  *jira.Client
	buffers Buffers
	log     Log
	opts    Options
}

// New assembles an engine.
func New(client *jira.Client, buffers Buffers, log Log, opts Options) *Engine {
	return &Engine{client: client, buffers: buffers, log: log, opts: opts}
}

// Reference is the per-key resolution and render result handed to the
// splicer.
type Reference struct {
	Issue    jira.Issue
	Rendered string
}

// Result reports what processing one note did.
type Result struct {
	Identifier string
	Keys       []string // distinct keys, first-appearance order
	Failed     []string // keys whose fetch failed
	Changed    bool     // whether the note text was rewritten
}

// Process enriches one note. The sequence is extract, resolve, render,
// splice (when inline updates are on), merge properties derived from the
// first resolved key (when annotation is on), replace the buffer, and
// journal the note. Any failure before the buffer replacement leaves the
// note untouched and unjournaled.
func (e *Engine) Process(ctx context.Context, id string) (*Result, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNoCurrentNote
	}

	text, err := e.buffers.Get(id)
	if err != nil {
		return nil, err
	}

	// Frontmatter is metadata, not note text: keys inside it are neither
	// extracted nor spliced.
	head, body := vault.SplitFrontmatter(text)

	keys := issuekey.Extract(body)
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoIssueKeys, id)
	}

	resolved, failed, err := e.client.Resolve(ctx, keys)
	if err != nil {
		return nil, err
	}
	result := &Result{Identifier: id, Keys: keys, Failed: failed}
	if len(resolved) == 0 {
		return result, ErrNothingResolved
	}

	refs := make(map[string]string, len(resolved))
	for key, iss := range resolved {
		refs[key] = render.Reference(iss, e.opts.Dialect)
	}

	newBody := body
	if e.opts.InlineUpdates {
		newBody = splice.Apply(newBody, refs, e.opts.Dialect)
	}

	if e.opts.Annotate {
		// Properties describe a single issue: the first extracted key
		// that resolved, even when the note mentions several.
		for _, key := range keys {
			iss, ok := resolved[key]
			if !ok {
				continue
			}
			set := props.FromIssue(iss, e.opts.Properties)
			if set.Len() > 0 {
				newBody = props.Merge(newBody, set, e.opts.Separator)
			}
			break
		}
	}

	if newBody != body {
		if err := e.buffers.Replace(id, head+newBody); err != nil {
			return nil, err
		}
		result.Changed = true
	}

	if err := e.log.Append(journal.Entry{
		Identifier: id,
		Keys:       strings.Join(keys, ","),
		SecondOrg:  e.opts.SecondOrg,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// RefreshReport is the outcome of re-processing one journaled note.
type RefreshReport struct {
	Identifier string
	Result     *Result
	Err        error
}

// Refresh re-processes every note in the journal, strictly sequentially so
// a sweep never multiplies the per-note fan-out against the remote API.
// Per-note failures are reported, not fatal.
func (e *Engine) Refresh(ctx context.Context) ([]RefreshReport, error) {
	ids, err := e.log.Identifiers()
	if err != nil {
		return nil, err
	}

	reports := make([]RefreshReport, 0, len(ids))
	for _, id := range ids {
		result, err := e.Process(ctx, id)
		reports = append(reports, RefreshReport{Identifier: id, Result: result, Err: err})
	}
	return reports, nil
}
