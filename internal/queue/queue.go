// Package queue implements the bounded FIFO packet buffer shared by the
// collector, processor and transmitter tasks.
package queue

import (
	"sync"

	"github.com/teidesat/obc-telemetry/internal/metrics"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// Queue is a bounded FIFO ring buffer of telemetry packets. All methods
// are safe for concurrent use; a packet stored once is retrieved by
// exactly one caller. The occupancy gauge is maintained under the queue
// lock, so it always matches the packets actually held.
type Queue struct {
	mu    sync.Mutex
	buf   []telemetry.Packet
	head  int
	count int
}

// New creates an empty queue holding at most capacity packets.
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]telemetry.Packet, capacity)}
}

// Store appends a packet. It reports false when the queue is full, in
// which case the packet is not retained.
func (q *Queue) Store(p telemetry.Packet) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.count)%len(q.buf)] = p
	q.count++
	metrics.QueueDepth.Set(float64(q.count))
	return true
}

// Retrieve removes and returns the oldest packet. It reports false when
// the queue is empty.
func (q *Queue) Retrieve() (telemetry.Packet, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return telemetry.Packet{}, false
	}
	p := q.buf[q.head]
	q.buf[q.head] = telemetry.Packet{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	metrics.QueueDepth.Set(float64(q.count))
	return p, true
}

// Len returns the current occupancy. The value is advisory: it may be
// stale as soon as it returns under concurrent producers and consumers.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue) Cap() int {
	return len(q.buf)
}
