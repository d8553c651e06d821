package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teidesat/obc-telemetry/internal/config"
	"github.com/teidesat/obc-telemetry/internal/daemon"
)

// runCmd runs the telemetry agent in the foreground.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the telemetry agent in foreground",
	Long: `Run the telemetry agent process in foreground.

The agent will:
  1. Load configuration from the config file
  2. Initialize logging and the metrics server
  3. Start the collector, processor and transmitter tasks
  4. Handle signals for graceful shutdown (SIGTERM, SIGINT)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAgent(configFile)
	},
}

func runAgent(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	d := daemon.New(cfg)
	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start agent: %w", err)
	}

	// Blocks until shutdown
	return d.Run()
}
