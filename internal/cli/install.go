package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/config"
	"github.com/ppiankov/tollgate/internal/settings"
)

var (
	installMatcher  string
	installSettings string
)

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installMatcher, "matcher", "Bash", "Tool name pattern the hook intercepts")
	installCmd.Flags().StringVar(&installSettings, "settings", "", "Agent settings file (default ~/.claude/settings.json)")
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the gate as the agent's PreToolUse hook",
	Long: `Adds a PreToolUse entry to the agent's settings file so matching tool
calls run "tollgate hook". Safe to re-run; a stale entry is replaced and
everything else in the file is left alone.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	path, err := settingsPath(installSettings)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot determine executable path: %w", err)
	}

	changed, err := settings.Install(path, installMatcher, hookCommand(exe))
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Registered PreToolUse hook (matcher %q) in %s\n", installMatcher, path)
	} else {
		fmt.Println("Hook already registered; nothing to do.")
	}
	fmt.Println()
	fmt.Println("Arm the gate:")
	fmt.Println("  export " + config.EnvTmuxSession + "=<session>")
	return nil
}

// hookCommand builds the settings.json command line for the hook. The
// executable path is quoted so install locations with spaces survive the
// agent's shell.
func hookCommand(exe string) string {
	return fmt.Sprintf("%q hook", exe)
}

func settingsPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return settings.DefaultPath()
}
