package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pmon/internal/config"
	"github.com/rileyhilliard/pmon/internal/errors"
)

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration pmon would run with, after defaults, the
config file and PMON_ environment overrides are applied.

The output is valid config file syntax, so it can seed a new .pmon.yaml:
  pmon config > .pmon.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg, path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func writeConfig(w io.Writer, cfg *config.Config, path string) error {
	out, err := cfg.YAML()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to render config", "")
	}

	if path != "" {
		fmt.Fprintf(w, "# loaded from %s\n", path)
	} else {
		fmt.Fprintln(w, "# defaults (no config file found)")
	}
	_, err = w.Write(out)
	return err
}
