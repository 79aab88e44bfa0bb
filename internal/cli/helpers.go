package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shrikehq/shrike/internal/engine"
	"github.com/shrikehq/shrike/internal/jira"
	"github.com/shrikehq/shrike/internal/journal"
	"github.com/shrikehq/shrike/internal/render"
	"github.com/shrikehq/shrike/internal/ui"
	"github.com/shrikehq/shrike/internal/vault"
)

// pipeline bundles everything a processing command needs.
type pipeline struct {
	engine  *engine.Engine
	vault   *vault.Vault
	journal *journal.Store
}

func (p *pipeline) close() {
	_ = p.journal.Close()
}

// openPipeline assembles the vault, journal, jira client, and engine from
// the resolved config and the --org2 selector.
func openPipeline(secondOrg bool) (*pipeline, error) {
	v, err := vault.Open(getVaultPath())
	if err != nil {
		return nil, err
	}

	store, err := journal.Open(v.DataDir())
	if err != nil {
		return nil, err
	}

	c := getConfig()
	client := jira.NewClient(c.Org(secondOrg), nil)

	e := engine.New(client, v, store, engine.Options{
		Dialect:       render.ParseDialect(c.Dialect),
		InlineUpdates: c.InlineUpdates,
		Annotate:      c.Annotate,
		Properties:    c.PropertyOptions(),
		Separator:     c.PropertySeparator,
		SecondOrg:     secondOrg,
	})

	return &pipeline{engine: e, vault: v, journal: store}, nil
}

// openErrorCode maps a pipeline assembly failure to its stable code: a
// missing vault keeps VAULT_NOT_FOUND, anything else is the journal store.
func openErrorCode(err error) string {
	if errors.Is(err, vault.ErrVaultNotFound) {
		return ErrVaultNotFound
	}
	return ErrJournalError
}

func handleOpenError(err error) error {
	code := openErrorCode(err)
	suggestion := ""
	if code == ErrVaultNotFound {
		suggestion = "Check --vault-path or the vault setting in your config"
	}
	return handleError(code, err, suggestion)
}

// resultWarnings converts a processing result's failed keys into warnings.
func resultWarnings(result *engine.Result) []Warning {
	if result == nil || len(result.Failed) == 0 {
		return nil
	}
	return []Warning{{
		Code:    WarnPartialResolution,
		Message: fmt.Sprintf("could not resolve: %s", strings.Join(result.Failed, ", ")),
	}}
}

// printResult reports one processed note in text mode.
func printResult(result *engine.Result) {
	if result.Changed {
		keys := make([]string, len(result.Keys))
		for i, k := range result.Keys {
			keys[i] = ui.IssueKey(k)
		}
		fmt.Println(ui.Successf("updated %s (%s)", ui.NoteID(result.Identifier), strings.Join(keys, ", ")))
	} else {
		fmt.Println(ui.Info(fmt.Sprintf("%s already up to date", ui.NoteID(result.Identifier))))
	}
	if len(result.Failed) > 0 {
		fmt.Println(ui.Warningf("could not resolve: %s", strings.Join(result.Failed, ", ")))
	}
}
