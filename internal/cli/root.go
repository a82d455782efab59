package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pmon/internal/config"
)

// rootCmd starts the dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "pmon",
	Short: "Interactive process monitor",
	Long: `Show every running process with its memory, CPU, disk I/O and
CPU time, refreshed on a fixed interval.

Processes above the CPU alert threshold are written once per alert window
to the log file, together with a periodic system summary.

Keyboard shortcuts:
  up/down     Move the highlight
  Enter       Select the highlighted process
  k           Send SIGTERM to the selected process
  r           Refresh now
  ?           Show help
  q / Ctrl+C  Quit

Configuration is read from $PMON_CONFIG, ./.pmon.yaml or
~/.config/pmon/config.yaml, and any key can be overridden with a PMON_
environment variable (e.g. PMON_INTERVAL=1s).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		return runDashboard(cfg, path)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds, loads and validates the configuration.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault()
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// printError writes err to w, ending with exactly one newline.
func printError(w io.Writer, err error) {
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}
