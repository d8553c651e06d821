package task

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/teidesat/obc-telemetry/internal/downlink"
	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/queue"
)

// Transmitter simulates ground-contact transmission: it polls on a
// fixed interval and, when the contact gate opens, burst-drains the
// entire queue through the downlink with a fixed inter-packet delay
// modelling link latency.
type Transmitter struct {
	queue       *queue.Queue
	link        downlink.Link
	gate        *ContactGate
	poll        time.Duration
	packetDelay time.Duration
	now         func() time.Time

	transmitted atomic.Uint64
}

// NewTransmitter creates a transmitter draining q through link.
func NewTransmitter(q *queue.Queue, link downlink.Link, gate *ContactGate, poll, packetDelay time.Duration) *Transmitter {
	return &Transmitter{
		queue:       q,
		link:        link,
		gate:        gate,
		poll:        poll,
		packetDelay: packetDelay,
		now:         time.Now,
	}
}

// Run executes the transmission loop until ctx is cancelled.
func (t *Transmitter) Run(ctx context.Context) {
	slog.Info("transmitter started", "poll_interval", t.poll)

	for {
		if t.gate.Open(t.now()) {
			metrics.ContactWindowsTotal.Inc()
			t.Burst(ctx)
		}

		select {
		case <-ctx.Done():
			slog.Info("transmitter stopped", "transmitted", t.transmitted.Load())
			return
		case <-time.After(t.poll):
		}
	}
}

// Burst drains the entire queue in FIFO order through the downlink.
// Send failures are logged and the packet still counts as drained:
// there is no retransmission path on a best-effort link.
func (t *Transmitter) Burst(ctx context.Context) {
	available := t.queue.Len()
	if available == 0 {
		return
	}

	slog.Info("contact window open, transmitting", "available", available)

	sent := 0
	for {
		pkt, ok := t.queue.Retrieve()
		if !ok {
			break
		}

		if err := t.link.Send(ctx, pkt); err != nil {
			slog.Warn("downlink send failed",
				"kind", pkt.Header.Kind, "seq", pkt.Header.Sequence, "error", err)
		}
		t.transmitted.Add(1)
		metrics.PacketsTransmittedTotal.Inc()
		sent++

		if t.packetDelay > 0 {
			select {
			case <-ctx.Done():
				slog.Info("transmission aborted by shutdown", "sent", sent)
				return
			case <-time.After(t.packetDelay):
			}
		}
	}

	slog.Info("transmission complete", "sent", sent, "total", t.transmitted.Load())
}

// Transmitted returns the number of packets drained so far.
func (t *Transmitter) Transmitted() uint64 {
	return t.transmitted.Load()
}
