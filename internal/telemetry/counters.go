package telemetry

import "sync/atomic"

// SeqCounter is the global packet sequence counter. It starts at 0,
// post-increments on every packet and wraps at 16 bits. There is no
// reset operation.
type SeqCounter struct {
	n atomic.Uint32
}

// Next returns the current sequence value and advances the counter.
func (c *SeqCounter) Next() uint16 {
	return uint16(c.n.Add(1) - 1)
}

// UptimeCounter counts collection cycles. The Collector advances it once
// per cycle; generators read it to derive uptime-dependent payload fields.
type UptimeCounter struct {
	n atomic.Uint32
}

// Advance adds one cycle and returns the new value.
func (c *UptimeCounter) Advance() uint32 {
	return c.n.Add(1)
}

// Seconds returns the current uptime in cycle units.
func (c *UptimeCounter) Seconds() uint32 {
	return c.n.Load()
}
