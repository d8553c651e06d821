// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "obc-telemetry",
	Short: "OBC telemetry agent - onboard satellite telemetry pipeline",
	Long: `obc-telemetry is the telemetry subsystem of an onboard satellite computer.

It periodically synthesizes status data for spacecraft subsystems, holds it
in a bounded in-memory queue, and exposes it to two independent consumers:
a local inspection path and a simulated ground-contact transmission path.

Tasks:
  - Collector: generates one full telemetry snapshot per period
  - Processor: renders packets locally for diagnostics
  - Transmitter: burst-drains the queue during ground-contact windows`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/obc-telemetry/config.yml",
		"config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
