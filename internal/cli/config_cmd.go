package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/config"
	"github.com/shrikehq/shrike/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Shrike configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveConfigPath(configPath)
		if jsonOutput {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if jsonOutput {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", path))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
