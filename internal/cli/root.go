package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shrikehq/shrike/internal/config"
	"github.com/shrikehq/shrike/internal/ui"
)

var (
	// Global flags
	vaultPathFlag string
	configPath    string

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shk",
	Short: "Shrike - live issue references for your notes",
	Long: `Shrike enriches markdown notes with live issue references.

It scans a note for issue keys (like ABC-123), resolves them against your
tracker, splices a rendered, hyperlinked reference back into the text, and
keeps a property block with the issue's metadata up to date.

Named for the shrike, the songbird that pins its catch in place.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't need a vault
		switch cmd.Name() {
		case "config", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Resolve vault path: explicit flag > config
		resolvedVaultPath = vaultPathFlag
		if resolvedVaultPath == "" {
			resolvedVaultPath = cfg.Vault
		}
		if resolvedVaultPath == "" {
			return fmt.Errorf(`no vault specified

Either:
  1. Use --vault-path /path/to/notes
  2. Set vault in ~/.config/shrike/config.toml (run 'shk config init')`)
		}

		if _, err := os.Stat(resolvedVaultPath); os.IsNotExist(err) {
			return fmt.Errorf("vault not found: %s", resolvedVaultPath)
		}

		return nil
	},
}

// Execute runs the CLI. Errors are printed here rather than by cobra so
// text mode gets the symbol prefix and JSON mode stays clean.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !jsonOutput {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to notes directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = config.Defaults()
	}
	return loadedCfg, nil
}
