package sequence

import (
	"errors"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
)

// Build-time validation errors. Nothing that passes Build can fail
// during evaluation
var (
	// ErrEmptySequence: a step-based sequence needs at least one step
	ErrEmptySequence = errors.New("sequence: must contain at least one step")

	// ErrZeroDurationTransition: interpolating transitions require a
	// non-zero step duration
	ErrZeroDurationTransition = errors.New("sequence: zero-duration step requires the Discrete transition")

	// ErrCapacityExceeded: more steps were added than the builder's
	// fixed capacity
	ErrCapacityExceeded = errors.New("sequence: step capacity exceeded")

	// ErrStartColorDiscrete: a start color only affects an interpolating
	// first step
	ErrStartColorDiscrete = errors.New("sequence: start color requires an interpolating first step")

	// ErrLandingColorInfinite: a landing color is only meaningful for a
	// finite loop count
	ErrLandingColorInfinite = errors.New("sequence: landing color requires a finite loop count")
)

// Builder assembles and validates a step-based Sequence. Capacity is
// fixed at construction; steps added beyond it surface
// ErrCapacityExceeded from Build. All invariants are enforced in Build
// so no invalid Sequence value ever exists
type Builder struct {
	steps        []Step
	capacity     int
	loop         LoopCount
	startColor   colorful.Color
	hasStart     bool
	landingColor colorful.Color
	hasLanding   bool
	overflow     bool
}

// NewBuilder creates a builder holding at most capacity steps
func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{
		steps:    make([]Step, 0, capacity),
		capacity: capacity,
		loop:     Times(1),
	}
}

// Step appends a step targeting color c over d using transition tr
func (b *Builder) Step(c colorful.Color, d clock.Duration, tr Transition) *Builder {
	if len(b.steps) >= b.capacity {
		b.overflow = true
		return b
	}
	b.steps = append(b.steps, Step{Color: c, Duration: d, Transition: tr})
	return b
}

// Loop sets the repetition policy (default: Times(1))
func (b *Builder) Loop(lc LoopCount) *Builder {
	b.loop = lc
	return b
}

// StartColor sets the entry color blended from during the first step of
// the first loop. Requires an interpolating first step
func (b *Builder) StartColor(c colorful.Color) *Builder {
	b.startColor = c
	b.hasStart = true
	return b
}

// LandingColor sets the color held after a finite sequence exhausts all
// loops
func (b *Builder) LandingColor(c colorful.Color) *Builder {
	b.landingColor = c
	b.hasLanding = true
	return b
}

// Build validates and returns the immutable sequence
func (b *Builder) Build() (Sequence, error) {
	if b.overflow {
		return Sequence{}, ErrCapacityExceeded
	}
	if len(b.steps) == 0 {
		return Sequence{}, ErrEmptySequence
	}
	for _, step := range b.steps {
		if step.Duration == 0 && step.Transition.Interpolates() {
			return Sequence{}, ErrZeroDurationTransition
		}
	}
	if b.hasStart && !b.steps[0].Transition.Interpolates() {
		return Sequence{}, ErrStartColorDiscrete
	}
	if b.hasLanding && b.loop.Infinite() {
		return Sequence{}, ErrLandingColorInfinite
	}

	// Cache the loop duration so evaluation never re-sums
	var totalMs uint64
	for _, step := range b.steps {
		totalMs += step.Duration.Millis()
	}

	steps := make([]Step, len(b.steps))
	copy(steps, b.steps)

	return Sequence{
		steps:        steps,
		loop:         b.loop,
		startColor:   b.startColor,
		hasStart:     b.hasStart,
		landingColor: b.landingColor,
		hasLanding:   b.hasLanding,
		loopDuration: clock.Millis(totalMs),
	}, nil
}
