package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/ui"
	"github.com/shrikehq/shrike/internal/vault"
)

var showCmd = &cobra.Command{
	Use:   "show <note>",
	Short: "Render a note in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vault.Open(getVaultPath())
		if err != nil {
			return handleError(ErrVaultNotFound, err, "")
		}

		text, err := v.Get(args[0])
		if err != nil {
			return handleError(ErrNoteNotFound, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]string{"identifier": args[0], "text": text}, nil)
			return nil
		}

		_, body := vault.SplitFrontmatter(text)
		rendered, err := ui.RenderMarkdown(body, ui.TermWidth())
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
