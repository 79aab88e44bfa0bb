package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/engine"
	"github.com/shrikehq/shrike/internal/ui"
)

var refreshSecondOrg bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-resolve every journaled note",
	Long: `Walks the processed-reference journal and re-runs enrichment for each
note, one at a time, so stale statuses and summaries catch up with the
tracker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPipeline(refreshSecondOrg)
		if err != nil {
			return handleOpenError(err)
		}
		defer p.close()

		spinner := ui.NewSpinner("Refreshing journaled notes")
		if !jsonOutput {
			spinner.Start()
		}
		reports, err := p.engine.Refresh(context.Background())
		if !jsonOutput {
			spinner.Stop()
		}
		if err != nil {
			return handleError(ErrJournalError, err, "")
		}

		if jsonOutput {
			type reportData struct {
				Identifier string   `json:"identifier"`
				Changed    bool     `json:"changed"`
				Keys       []string `json:"keys,omitempty"`
				Failed     []string `json:"failed,omitempty"`
				Error      string   `json:"error,omitempty"`
			}
			data := make([]reportData, 0, len(reports))
			for _, r := range reports {
				d := reportData{Identifier: r.Identifier}
				if r.Result != nil {
					d.Changed = r.Result.Changed
					d.Keys = r.Result.Keys
					d.Failed = r.Result.Failed
				}
				if r.Err != nil {
					d.Error = r.Err.Error()
				}
				data = append(data, d)
			}
			outputSuccess(data, nil)
			return nil
		}

		if len(reports) == 0 {
			fmt.Println(ui.Info("journal is empty, nothing to refresh"))
			return nil
		}

		updated, skipped := 0, 0
		for _, r := range reports {
			switch {
			case r.Err == nil:
				if r.Result.Changed {
					updated++
				}
				printResult(r.Result)
			case errors.Is(r.Err, engine.ErrNoIssueKeys):
				// Keys were removed from the note since it was journaled.
				skipped++
				fmt.Println(ui.Info(fmt.Sprintf("%s no longer has issue keys", ui.NoteID(r.Identifier))))
			default:
				skipped++
				fmt.Println(ui.Warningf("%s: %v", r.Identifier, r.Err))
			}
		}
		fmt.Println(ui.Successf("refreshed %d of %d notes (%d skipped)", updated, len(reports), skipped))
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshSecondOrg, "org2", false, "Use the secondary organization")
	rootCmd.AddCommand(refreshCmd)
}
