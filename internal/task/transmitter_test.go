package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// recordingLink captures transmitted packets in order.
type recordingLink struct {
	mu      sync.Mutex
	packets []telemetry.Packet
	closed  bool
}

func (l *recordingLink) Send(_ context.Context, p telemetry.Packet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.packets = append(l.packets, p)
	return nil
}

func (l *recordingLink) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *recordingLink) sent() []telemetry.Packet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]telemetry.Packet, len(l.packets))
	copy(out, l.packets)
	return out
}

func TestBurstDrainsEntireQueueFIFO(t *testing.T) {
	c, q := newTestCollector(16, time.Second)
	c.Collect()
	c.Collect()
	require.Equal(t, 8, q.Len())

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 0)

	tx.Burst(context.Background())

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, uint64(8), tx.Transmitted())

	sent := link.sent()
	require.Len(t, sent, 8)
	for i, p := range sent {
		assert.Equal(t, uint16(i), p.Header.Sequence, "FIFO order preserved")
	}
}

func TestBurstOnEmptyQueueIsNoop(t *testing.T) {
	_, q := newTestCollector(16, time.Second)

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 0)

	tx.Burst(context.Background())

	assert.Zero(t, tx.Transmitted())
	assert.Empty(t, link.sent())
}

func TestRunDoesNotDrainWhileGateClosed(t *testing.T) {
	c, q := newTestCollector(16, time.Second)
	c.Collect()
	require.Equal(t, 4, q.Len())

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 0)
	tx.now = func() time.Time { return atSecond(17) } // never a window

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tx.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 4, q.Len(), "closed gate never changes occupancy")
	assert.Zero(t, tx.Transmitted())
}

func TestRunBurstsOncePerWindow(t *testing.T) {
	c, q := newTestCollector(32, time.Second)
	c.Collect()
	require.Equal(t, 4, q.Len())

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 0)
	tx.now = func() time.Time { return atSecond(30) } // pinned inside one window

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tx.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return tx.Transmitted() == 4
	}, time.Second, time.Millisecond)

	// Refill: the same window must not fire a second burst even though
	// polling continues inside the modulus-zero second.
	c.Collect()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, uint64(4), tx.Transmitted())

	cancel()
	<-done
}

func TestBurstDoesNotMaskLateStores(t *testing.T) {
	c, q := newTestCollector(16, time.Second)
	c.Collect()

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 0)

	tx.Burst(context.Background())
	require.Equal(t, 0, q.Len())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.QueueDepth))

	// A packet landing right after the drain must show up in the depth
	// gauge rather than being hidden behind a stale post-burst zero.
	pkt := telemetry.Packet{Header: telemetry.Header{Kind: telemetry.KindSystemStatus}}
	require.True(t, q.Store(pkt))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.QueueDepth))
}

func TestBurstAbortsOnCancellation(t *testing.T) {
	c, q := newTestCollector(16, time.Second)
	c.Collect()

	link := &recordingLink{}
	tx := NewTransmitter(q, link, NewContactGate(30*time.Second), time.Millisecond, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx.Burst(ctx)

	// The first packet goes out before the inter-packet delay notices
	// cancellation; the rest stay queued.
	assert.Equal(t, uint64(1), tx.Transmitted())
	assert.Equal(t, 3, q.Len())
}
