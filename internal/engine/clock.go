package engine

import "sync/atomic"

// Clock is a monotonic logical clock. Every firing is stamped with a
// strictly increasing sequence number so traces order deterministically
// without wall-clock involvement.
type Clock struct {
	seq atomic.Int64
}

// NewClock returns a clock starting at zero.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt returns a clock resuming from a known sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the latest issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
