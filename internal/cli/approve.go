package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/approval"
	"github.com/ppiankov/tollgate/internal/config"
	"github.com/ppiankov/tollgate/internal/tmux"
)

var approveMessage string

func init() {
	rootCmd.AddCommand(approveCmd)
	approveCmd.Flags().StringVarP(&approveMessage, "message", "m", "", "Note typed into the prompt's feedback field")
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Answer the agent's pending prompt with an approval",
	Long:  "Scripts an approval into the configured tmux session, exactly as the hook does after a remote allow. Useful when deciding out-of-band, with the approval service down or bypassed.",
	Args:  cobra.NoArgs,
	RunE:  runApprove,
}

func runApprove(cmd *cobra.Command, args []string) error {
	return respond(approval.Decision{Outcome: approval.Allow, Comment: approveMessage})
}

// respond drives the configured session with a manually issued decision.
func respond(d approval.Decision) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.TmuxSession == "" {
		return fmt.Errorf("no tmux session configured: set %s or tmux_session in the config file", config.EnvTmuxSession)
	}

	session := tmux.NewClient(cfg.TmuxBin, cfg.TmuxSession)
	if !session.HasSession() {
		return fmt.Errorf("tmux session %q not found", cfg.TmuxSession)
	}
	if err := session.Respond(d); err != nil {
		return fmt.Errorf("send %s to tmux session %q: %w", d.Outcome, cfg.TmuxSession, err)
	}

	fmt.Printf("Sent %s to tmux session %q\n", d.Outcome, cfg.TmuxSession)
	return nil
}
