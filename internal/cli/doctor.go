package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tollgate/internal/config"
	"github.com/ppiankov/tollgate/internal/tmux"
	"github.com/ppiankov/tollgate/internal/token"
)

// probeTimeout bounds the reachability check; a doctor run should never
// hang for the full approval window.
const probeTimeout = 3 * time.Second

var doctorWaitToken time.Duration

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().DurationVar(&doctorWaitToken, "wait-token", 0, "Block up to this long for the auth token to be provisioned (e.g., 30s)")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check gate readiness and diagnose configuration issues",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []checkResult

	// 1. Binary location and version.
	execPath, _ := os.Executable()
	if execPath != "" {
		checks = append(checks, checkResult{
			label:  "tollgate binary",
			ok:     true,
			detail: fmt.Sprintf("%s (v%s)", execPath, version),
		})
	} else {
		checks = append(checks, checkResult{
			label:  "tollgate binary",
			ok:     false,
			detail: "cannot determine executable path",
		})
	}

	// 2. Configuration.
	cfg, err := config.Load(configPath)
	if err != nil {
		checks = append(checks, checkResult{
			label:  "config",
			ok:     false,
			detail: err.Error(),
			fix:    "tollgate init --force",
		})
		cfg = config.FromEnv()
	} else {
		detail := config.DefaultPath()
		if configPath != "" {
			detail = configPath
		}
		if _, statErr := os.Stat(detail); statErr != nil {
			detail = "no file (defaults + environment)"
		}
		checks = append(checks, checkResult{
			label:  "config",
			ok:     true,
			detail: detail,
		})
	}

	// 3. Session configured. Without it the gate allows everything.
	if cfg.TmuxSession != "" {
		checks = append(checks, checkResult{
			label:  "tmux session",
			ok:     true,
			detail: cfg.TmuxSession,
		})
	} else {
		checks = append(checks, checkResult{
			label:  "tmux session",
			ok:     false,
			detail: "not set — gate is a pass-through",
			fix:    "export " + config.EnvTmuxSession + "=<session>",
		})
	}

	// 4. tmux binary.
	tmuxPath, lookErr := exec.LookPath(cfg.TmuxBin)
	if lookErr == nil {
		checks = append(checks, checkResult{
			label:  "tmux binary",
			ok:     true,
			detail: tmuxPath,
		})
	} else {
		checks = append(checks, checkResult{
			label:  "tmux binary",
			ok:     false,
			detail: fmt.Sprintf("%q not found", cfg.TmuxBin),
			fix:    "install tmux or set tmux_bin",
		})
	}

	// 5. Session alive.
	if cfg.TmuxSession != "" && lookErr == nil {
		if tmux.NewClient(cfg.TmuxBin, cfg.TmuxSession).HasSession() {
			checks = append(checks, checkResult{
				label:  "session alive",
				ok:     true,
				detail: "running",
			})
		} else {
			checks = append(checks, checkResult{
				label:  "session alive",
				ok:     false,
				detail: "not running",
				fix:    fmt.Sprintf("tmux new -s %s", cfg.TmuxSession),
			})
		}
	}

	// 6. Auth token.
	if doctorWaitToken > 0 {
		fmt.Printf("waiting up to %s for auth token at %s...\n", doctorWaitToken, cfg.TokenFile)
		if err := token.WaitForFile(cfg.TokenFile, doctorWaitToken); err != nil {
			fmt.Fprintf(os.Stderr, "tollgate: %v\n", err)
		}
	}
	if tok, err := token.Load(cfg.TokenFile); err != nil {
		checks = append(checks, checkResult{
			label:  "auth token",
			ok:     false,
			detail: err.Error(),
		})
	} else if tok != "" {
		checks = append(checks, checkResult{
			label:  "auth token",
			ok:     true,
			detail: cfg.TokenFile,
		})
	} else {
		checks = append(checks, checkResult{
			label:  "auth token",
			ok:     false,
			detail: "missing or empty",
			fix:    "start the approval server to provision it",
		})
	}

	// 7. Approval server. Any HTTP response proves reachability; the
	// decision endpoint itself only answers authenticated POSTs.
	if code, err := probeServer(cfg.ServerURL); err == nil {
		checks = append(checks, checkResult{
			label:  "approval server",
			ok:     true,
			detail: fmt.Sprintf("%s (HTTP %d)", cfg.ServerURL, code),
		})
	} else {
		checks = append(checks, checkResult{
			label:  "approval server",
			ok:     false,
			detail: fmt.Sprintf("%s unreachable", cfg.ServerURL),
			fix:    "start the approval server",
		})
	}

	// Print results.
	hasFailures := false
	for _, c := range checks {
		mark := "\u2713" // ✓
		if !c.ok {
			mark = "\u2717" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed. Run the suggested commands to fix.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}

func probeServer(baseURL string) (int, error) {
	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Get(baseURL)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
