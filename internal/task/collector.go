// Package task implements the three long-running telemetry tasks:
// collector, processor and transmitter. All three share one bounded
// packet queue and check for cancellation at every suspension point.
package task

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/queue"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// Collector periodically produces one full telemetry snapshot (all four
// packet kinds) and enqueues each packet as soon as it is built.
type Collector struct {
	gen      *telemetry.Generator
	uptime   *telemetry.UptimeCounter
	queue    *queue.Queue
	interval time.Duration

	cycles  atomic.Uint64
	dropped atomic.Uint64
}

// NewCollector creates a collector producing into q every interval.
func NewCollector(gen *telemetry.Generator, uptime *telemetry.UptimeCounter, q *queue.Queue, interval time.Duration) *Collector {
	return &Collector{
		gen:      gen,
		uptime:   uptime,
		queue:    q,
		interval: interval,
	}
}

// Run executes the collection loop until ctx is cancelled. The next wake
// deadline is computed from the previous deadline plus the period, so
// generator execution time does not drift the cadence.
func (c *Collector) Run(ctx context.Context) {
	slog.Info("collector started", "interval", c.interval)

	next := time.Now()
	for {
		c.Collect()

		next = next.Add(c.interval)
		select {
		case <-ctx.Done():
			slog.Info("collector stopped", "cycles", c.cycles.Load(), "dropped", c.dropped.Load())
			return
		case <-time.After(time.Until(next)):
		}
	}
}

// Collect runs one collection cycle: all four generators in fixed order,
// each result enqueued immediately after construction. A full queue
// drops the packet; telemetry is best-effort and the cycle continues.
// The shared uptime counter advances once per cycle.
func (c *Collector) Collect() {
	c.store(c.gen.SystemStatus())
	c.store(c.gen.PowerStatus())
	c.store(c.gen.TemperatureStatus())
	c.store(c.gen.SubsystemStatus())

	c.uptime.Advance()
	c.cycles.Add(1)
}

func (c *Collector) store(p telemetry.Packet) {
	metrics.PacketsGeneratedTotal.WithLabelValues(p.Header.Kind.String()).Inc()
	if !c.queue.Store(p) {
		c.dropped.Add(1)
		metrics.PacketsDroppedTotal.Inc()
		slog.Debug("queue full, packet dropped",
			"kind", p.Header.Kind, "seq", p.Header.Sequence)
	}
}

// Cycles returns the number of completed collection cycles.
func (c *Collector) Cycles() uint64 {
	return c.cycles.Load()
}

// Dropped returns the number of packets discarded on a full queue.
func (c *Collector) Dropped() uint64 {
	return c.dropped.Load()
}
