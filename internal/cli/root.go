package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tollgate",
	Short: "Human approval gate for autonomous agent tool calls",
	Long:  "Intercepts flagged tool calls before they run, asks a remote approval service for a human decision, and mirrors that decision into the agent's tmux prompt.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tollgate/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
