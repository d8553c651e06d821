// Package downlink implements the ground-link transports the
// transmitter pushes packets through during a contact window.
package downlink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// Link is a downlink transport. Send delivers one packet to ground;
// failures are non-fatal to the transmitter, which counts the packet as
// drained either way (telemetry is best-effort).
type Link interface {
	Send(ctx context.Context, p telemetry.Packet) error
	Close()
}

// ConsoleLink is the simulated ground link: it prints one transmission
// line per packet, numbered by a running count.
type ConsoleLink struct {
	out  io.Writer
	sent atomic.Uint64
}

// NewConsoleLink creates a console link writing to out; nil means stdout.
func NewConsoleLink(out io.Writer) *ConsoleLink {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleLink{out: out}
}

func (l *ConsoleLink) Send(_ context.Context, p telemetry.Packet) error {
	n := l.sent.Add(1)
	_, err := fmt.Fprintf(l.out, "  [%d] kind=%s seq=%d time=%d\n",
		n, p.Header.Kind, p.Header.Sequence, p.Header.Timestamp)
	return err
}

func (l *ConsoleLink) Close() {}
