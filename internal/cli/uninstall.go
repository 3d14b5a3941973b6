package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/settings"
)

var uninstallSettings string

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().StringVar(&uninstallSettings, "settings", "", "Agent settings file (default ~/.claude/settings.json)")
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the gate's PreToolUse hook from the agent's settings",
	Args:  cobra.NoArgs,
	RunE:  runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	path, err := settingsPath(uninstallSettings)
	if err != nil {
		return err
	}

	changed, err := settings.Uninstall(path)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Removed PreToolUse hook from %s\n", path)
	} else {
		fmt.Println("No tollgate hook found; nothing to do.")
	}
	return nil
}
