package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/queue"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// Processor continuously drains the queue for local diagnostics,
// rendering one line per packet. It competes with the Transmitter for
// the same queue: whichever retrieves a packet first owns it.
type Processor struct {
	queue *queue.Queue
	idle  time.Duration
	out   io.Writer

	processed atomic.Uint64
}

// NewProcessor creates a processor draining q, writing renderings to
// out (nil means stdout) and idling for idle when the queue is empty.
func NewProcessor(q *queue.Queue, idle time.Duration, out io.Writer) *Processor {
	if out == nil {
		out = os.Stdout
	}
	return &Processor{queue: q, idle: idle, out: out}
}

// Run executes the consumption loop until ctx is cancelled. An empty
// queue is the expected steady state, not an error: the task idles for
// a fixed interval and retries, never blocking indefinitely.
func (p *Processor) Run(ctx context.Context) {
	slog.Info("processor started", "idle_interval", p.idle)

	for {
		pkt, ok := p.queue.Retrieve()
		if !ok {
			select {
			case <-ctx.Done():
				slog.Info("processor stopped", "processed", p.processed.Load())
				return
			case <-time.After(p.idle):
			}
			continue
		}

		p.Process(pkt)

		select {
		case <-ctx.Done():
			slog.Info("processor stopped", "processed", p.processed.Load())
			return
		default:
		}
	}
}

// Process renders one packet and reports the queue occupancy left
// behind it.
func (p *Processor) Process(pkt telemetry.Packet) {
	p.processed.Add(1)
	metrics.PacketsProcessedTotal.WithLabelValues(pkt.Header.Kind.String()).Inc()

	occupancy := p.queue.Len()
	fmt.Fprintln(p.out, telemetry.FormatPacket(pkt))
	fmt.Fprintf(p.out, "   available=%d\n", occupancy)
}

// Processed returns the number of packets rendered so far. Diagnostic
// only; not used for correctness.
func (p *Processor) Processed() uint64 {
	return p.processed.Load()
}
