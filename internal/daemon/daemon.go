// Package daemon implements the telemetry agent process lifecycle.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/teidesat/obc-telemetry/internal/config"
	"github.com/teidesat/obc-telemetry/internal/downlink"
	logpkg "github.com/teidesat/obc-telemetry/internal/log"
	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/queue"
	"github.com/teidesat/obc-telemetry/internal/sensors"
	"github.com/teidesat/obc-telemetry/internal/task"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// Daemon wires the telemetry pipeline together and manages its
// lifecycle: one shared bounded queue, one collector producing into it
// and two competing consumers draining it.
type Daemon struct {
	config *config.Config

	queue       *queue.Queue
	collector   *task.Collector
	processor   *task.Processor
	transmitter *task.Transmitter

	link          downlink.Link
	metricsServer *metrics.Server // nil if metrics disabled

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a daemon from the given configuration.
func New(cfg *config.Config) *Daemon {
	d := &Daemon{config: cfg}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d
}

// Start initializes all components and launches the three tasks.
func (d *Daemon) Start() error {
	if err := logpkg.Init(d.config.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	slog.Info("starting obc-telemetry agent",
		"node", d.config.Node.Name,
		"sensors", d.config.Sensors.Mode,
		"queue_capacity", d.config.Queue.Capacity,
	)

	if d.config.Metrics.Enabled {
		d.metricsServer = metrics.NewServer(d.config.Metrics)
		if err := d.metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	var analog sensors.Analog
	switch d.config.Sensors.Mode {
	case "simulated":
		analog = sensors.NewSimulated(d.config.Sensors.Seed)
	case "nominal":
		analog = sensors.Nominal{}
	default:
		return fmt.Errorf("unknown sensors mode: %s", d.config.Sensors.Mode)
	}

	link, err := d.buildDownlink()
	if err != nil {
		return fmt.Errorf("failed to build downlink: %w", err)
	}
	d.link = link

	d.queue = queue.New(d.config.Queue.Capacity)

	var seq telemetry.SeqCounter
	var uptime telemetry.UptimeCounter
	gen := telemetry.NewGenerator(&seq, &uptime, analog)

	d.collector = task.NewCollector(gen, &uptime, d.queue, d.config.Collector.Interval)
	d.processor = task.NewProcessor(d.queue, d.config.Processor.IdleInterval, os.Stdout)
	d.transmitter = task.NewTransmitter(
		d.queue,
		d.link,
		task.NewContactGate(d.config.Transmitter.WindowPeriod),
		d.config.Transmitter.PollInterval,
		d.config.Transmitter.PacketDelay,
	)

	for _, run := range []func(context.Context){
		d.collector.Run,
		d.processor.Run,
		d.transmitter.Run,
	} {
		run := run
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			run(d.ctx)
		}()
	}

	slog.Info("telemetry pipeline running")
	return nil
}

// buildDownlink constructs the configured downlink transport.
func (d *Daemon) buildDownlink() (downlink.Link, error) {
	dl := d.config.Transmitter.Downlink
	switch dl.Type {
	case "console":
		return downlink.NewConsoleLink(os.Stdout), nil
	case "mqtt":
		link := downlink.NewMQTTLink(d.config.Node.Name, dl.MQTT)
		if err := link.Connect(d.ctx); err != nil {
			return nil, fmt.Errorf("mqtt downlink connect: %w", err)
		}
		return link, nil
	default:
		return nil, fmt.Errorf("unsupported downlink type: %s", dl.Type)
	}
}

// Run blocks until a termination signal arrives, then shuts down.
func (d *Daemon) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	slog.Info("shutdown signal received", "signal", sig.String())

	return d.Stop()
}

// Stop cancels the task contexts, waits for the loops to exit and
// releases transports. Safe to call once after Start.
func (d *Daemon) Stop() error {
	slog.Info("stopping telemetry pipeline")

	d.cancel()
	d.wg.Wait()

	if d.link != nil {
		d.link.Close()
	}

	if d.metricsServer != nil {
		if err := d.metricsServer.Stop(context.Background()); err != nil {
			slog.Warn("metrics server stop failed", "error", err)
		}
	}

	slog.Info("agent stopped")
	return nil
}
