package clock

// Counter32 adapts a free-running 32-bit millisecond counter (a typical
// hardware timer register) into a Clock. Each Now call unwraps the raw
// value into a widening instant, so the clock must be read at least once
// per raw-counter wrap period (about 49.7 days at 1 kHz) to stay
// monotonic.
//
// Counter32 mutates internal state on read and is therefore bound to the
// single control flow that owns the sequencers, like every other part of
// the core.
type Counter32 struct {
	read func() uint32
	last uint32
	high uint64
}

// NewCounter32 wraps a raw counter read function
func NewCounter32(read func() uint32) *Counter32 {
	return &Counter32{read: read}
}

// Now returns the unwrapped instant for the current raw counter value
func (c *Counter32) Now() Instant {
	raw := c.read()
	if raw < c.last {
		// Raw counter wrapped since the previous read
		c.high += 1 << 32
	}
	c.last = raw
	return Instant(c.high + uint64(raw))
}
