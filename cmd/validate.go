package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teidesat/obc-telemetry/internal/config"
)

// validateCmd checks a configuration file without starting the agent.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an agent configuration file",
	Long: `Validate an agent configuration file without starting the agent.

This is useful for pre-checking configuration before deployment.

Examples:
  obc-telemetry validate -c /etc/obc-telemetry/config.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(configFile, cmd.OutOrStdout())
	},
}

func runValidate(path string, out io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("INVALID: %w", err)
	}

	fmt.Fprintf(out, "VALID: node %q — queue capacity %d, sensors %s, downlink %s\n",
		cfg.Node.Name,
		cfg.Queue.Capacity,
		cfg.Sensors.Mode,
		cfg.Transmitter.Downlink.Type,
	)
	return nil
}
