package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/buildinfo"
	"github.com/shrikehq/shrike/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shk version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		if version == "" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			} else {
				version = "dev"
			}
		}

		if jsonOutput {
			outputSuccess(map[string]string{
				"version": version,
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			}, nil)
			return nil
		}

		fmt.Printf("shk %s", version)
		if buildinfo.Commit != "" {
			fmt.Printf(" %s", ui.Muted.Render("("+buildinfo.Commit+")"))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
