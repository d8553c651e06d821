package task

import "time"

// ContactGate models the ground-contact window: it opens when the
// current time in whole seconds is an exact multiple of the window
// period. A per-window latch guarantees at most one opening per window
// even when several polls land inside the same modulus-zero second.
type ContactGate struct {
	period time.Duration
	last   int64 // index of the last window that fired
}

// NewContactGate creates a gate with the given window period. Periods
// under one second are treated as one second; the gate works on whole
// seconds, matching the orbital-contact simulation granularity.
func NewContactGate(period time.Duration) *ContactGate {
	return &ContactGate{period: period, last: -1}
}

// Open reports whether a contact window opens at now. It returns true
// at most once per window.
func (g *ContactGate) Open(now time.Time) bool {
	p := int64(g.period / time.Second)
	if p < 1 {
		p = 1
	}

	sec := now.Unix()
	if sec%p != 0 {
		return false
	}

	win := sec / p
	if win == g.last {
		return false
	}
	g.last = win
	return true
}
