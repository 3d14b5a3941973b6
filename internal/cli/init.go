package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/config"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap tollgate configuration",
	Long: `Writes a commented default config.yaml to ~/.tollgate/, or to the path
given with --config.

The auth token is not created here: the approval server provisions it at
startup. Use "tollgate doctor --wait-token 60s" to wait for it.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfgPath = filepath.Join(dir, "config.yaml")
	}

	var created []string

	if wrote, err := writeIfMissing(cfgPath, defaultConfigYAML()); err != nil {
		return err
	} else if wrote {
		created = append(created, cfgPath)
	}

	fmt.Println("tollgate init complete.")
	fmt.Println()
	if len(created) > 0 {
		fmt.Println("Created:")
		for _, path := range created {
			fmt.Printf("  %s\n", path)
		}
		fmt.Println()
	} else {
		fmt.Println("All files already exist (use --force to overwrite).")
		fmt.Println()
	}

	fmt.Println("Verify:")
	fmt.Println("  tollgate doctor")
	fmt.Println()
	fmt.Println("Register the hook with the agent:")
	fmt.Println("  tollgate install")
	fmt.Println()
	fmt.Println("Arm the gate:")
	fmt.Println("  export " + config.EnvTmuxSession + "=<session>")

	return nil
}

// writeIfMissing writes content to path if it doesn't exist or --force is
// set. Returns true if the file was written.
func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// defaultConfigYAML generates a commented default config.yaml.
func defaultConfigYAML() string {
	return `# tollgate configuration
# Environment variables override this file:
#   ` + config.EnvServerURL + `, ` + config.EnvTmuxSession + `, ` + config.EnvTokenFile + `

# Approval service base URL. Each intercepted tool call is POSTed to
# {server_url}/approve and blocks until the reviewer answers.
server_url: "` + config.DefaultServerURL + `"

# tmux session the agent runs in. Empty disables the gate: every tool
# call is allowed through untouched.
tmux_session: ""

# tmux binary used to script the agent's prompt.
tmux_bin: "tmux"

# Auth token the approval server provisions at startup.
token_file: "~/.tollgate/auth-token"
`
}
