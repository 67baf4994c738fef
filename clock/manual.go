package clock

// Manual is a hand-advanced Clock for tests and simulations. Time moves
// only when Advance or Set is called
type Manual struct {
	now Instant
}

// NewManual creates a manual clock at instant zero
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current manual instant
func (m *Manual) Now() Instant {
	return m.now
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d Duration) {
	m.now, _ = m.now.Add(d)
}

// Set jumps the clock to i
func (m *Manual) Set(i Instant) {
	m.now = i
}
