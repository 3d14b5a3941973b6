package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/approval"
)

var denyMessage string

func init() {
	rootCmd.AddCommand(denyCmd)
	denyCmd.Flags().StringVarP(&denyMessage, "message", "m", "", "Note typed into the prompt's feedback field")
}

var denyCmd = &cobra.Command{
	Use:   "deny",
	Short: "Answer the agent's pending prompt with a denial",
	Long:  "Scripts a denial into the configured tmux session, exactly as the hook does after a remote deny.",
	Args:  cobra.NoArgs,
	RunE:  runDeny,
}

func runDeny(cmd *cobra.Command, args []string) error {
	return respond(approval.Decision{Outcome: approval.Deny, Comment: denyMessage})
}
