package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/config"
	"github.com/ppiankov/tollgate/internal/gate"
)

func init() {
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Gate one tool call (run by the agent as its PreToolUse hook)",
	Long: `Reads one tool-call event on stdin, obtains a decision from the approval
service, mirrors it into the agent's tmux session, and writes the decision
envelope on stdout. With no session configured the gate is a pass-through.

Register it with: tollgate install`,
	Args: cobra.NoArgs,
	RunE: runHook,
}

func runHook(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		// The gate must never be the reason the agent errors; fall back to
		// defaults plus environment and keep going.
		fmt.Fprintf(os.Stderr, "tollgate: %v (using defaults)\n", err)
		cfg = config.FromEnv()
	}
	return gate.Run(cfg, os.Stdin, os.Stdout, os.Stderr)
}
