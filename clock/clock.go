// Package clock defines the time capability consumed by sequencers:
// millisecond Duration and Instant value types plus the Clock interface
// that supplies instants. Hardware counters, simulated clocks and the
// system clock are interchangeable behind Clock.
//
// Wraparound policy: Instant subtraction uses wrapping (modular)
// arithmetic so counter-backed clocks stay correct across a wrap, as
// long as causally ordered reads are less than half the counter range
// apart. Duration subtraction saturates at zero instead of wrapping.
package clock

import "time"

// Duration is a non-negative span of time in whole milliseconds
type Duration uint64

// Millis constructs a Duration from a millisecond count
func Millis(ms uint64) Duration {
	return Duration(ms)
}

// Millis returns the duration in milliseconds
func (d Duration) Millis() uint64 {
	return uint64(d)
}

// SaturatingSub subtracts other from d, clamping at zero
func (d Duration) SaturatingSub(other Duration) Duration {
	if other >= d {
		return 0
	}
	return d - other
}

// Std converts to a time.Duration for interoperating with stdlib timers
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Millisecond
}

// Instant is a point on a Clock's timeline, counted in milliseconds
// since the clock's epoch
type Instant uint64

// Sub returns the duration from earlier to i. Wrapping arithmetic: the
// result is correct across a counter wrap when the two reads are
// causally ordered and less than half the counter range apart
func (i Instant) Sub(earlier Instant) Duration {
	return Duration(uint64(i) - uint64(earlier))
}

// Add shifts the instant forward by d. ok is false when the addition
// would overflow the instant's range
func (i Instant) Add(d Duration) (Instant, bool) {
	sum := uint64(i) + uint64(d)
	return Instant(sum), sum >= uint64(i)
}

// Subtract shifts the instant back by d. ok is false when d is larger
// than the time since the clock epoch
func (i Instant) Subtract(d Duration) (Instant, bool) {
	if uint64(d) > uint64(i) {
		return i, false
	}
	return Instant(uint64(i) - uint64(d)), true
}

// Clock supplies monotonic instants. Implementations may wrap; they must
// never run backwards between causally ordered calls
type Clock interface {
	Now() Instant
}

// System is a Clock backed by the OS monotonic clock, with its epoch at
// construction time
type System struct {
	epoch time.Time
}

// NewSystem creates a system clock starting at instant zero
func NewSystem() *System {
	return &System{epoch: time.Now()}
}

// Now returns milliseconds elapsed since the clock was created
func (s *System) Now() Instant {
	return Instant(time.Since(s.epoch) / time.Millisecond)
}
