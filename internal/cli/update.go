package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/engine"
	"github.com/shrikehq/shrike/internal/jira"
	"github.com/shrikehq/shrike/internal/ui"
	"github.com/shrikehq/shrike/internal/vault"
)

var updateSecondOrg bool

var updateCmd = &cobra.Command{
	Use:   "update <note>",
	Short: "Resolve issue keys in a note and splice in live references",
	Long: `Scans the note for issue keys, resolves each against the configured
organization, rewrites the keys as rendered references, and updates the
note's property block.

The note argument is its vault-relative identifier, e.g. "projects/launch".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return handleErrorMsg(ErrNoCurrentNote,
				"no note specified",
				"Pass the note identifier: shk update projects/launch")
		}
		noteID := args[0]

		p, err := openPipeline(updateSecondOrg)
		if err != nil {
			return handleOpenError(err)
		}
		defer p.close()

		spinner := ui.NewSpinner("Resolving issue keys")
		if !jsonOutput {
			spinner.Start()
		}
		result, err := p.engine.Process(context.Background(), noteID)
		if !jsonOutput {
			spinner.Stop()
		}

		if err != nil {
			return handleProcessError(noteID, err)
		}

		if jsonOutput {
			outputSuccess(result, resultWarnings(result))
			return nil
		}
		printResult(result)
		return nil
	},
}

// handleProcessError maps engine failures to stable error codes.
func handleProcessError(noteID string, err error) error {
	switch {
	case errors.Is(err, jira.ErrMissingCredentials):
		return handleError(ErrMissingCredentials, err,
			"Set SHRIKE_JIRA_ACCOUNT and SHRIKE_JIRA_TOKEN (or the _2 variants for --org2)")
	case errors.Is(err, vault.ErrNoteNotFound):
		return handleError(ErrNoteNotFound, err,
			"Check the note identifier with its vault-relative path")
	case errors.Is(err, engine.ErrNoIssueKeys):
		return handleError(ErrNoIssueKeys, err, "")
	case errors.Is(err, engine.ErrNoCurrentNote):
		return handleError(ErrNoCurrentNote, err, "")
	case errors.Is(err, engine.ErrNothingResolved):
		return handleError(ErrResolutionFailed, err,
			"Check the configured base_url and your network connection")
	default:
		return handleError(ErrInternal, err, "")
	}
}

func init() {
	updateCmd.Flags().BoolVar(&updateSecondOrg, "org2", false, "Use the secondary organization")
	rootCmd.AddCommand(updateCmd)
}
