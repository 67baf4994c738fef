// Package sequence defines the color sequence model and its pure
// evaluator. A Sequence is either an ordered list of steps with a loop
// policy (assembled through the validating Builder) or a pair of
// functions over a base color (FromFunc). Evaluation is a pure function
// of elapsed time: no mutation, no allocation, bounded by the step count.
package sequence

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
	"github.com/HybridChild/rgb-sequencer-sub000/colors"
)

// Step is one (color, duration, transition) unit inside a sequence
type Step struct {
	Color      colorful.Color
	Duration   clock.Duration
	Transition Transition
}

// LoopCount is a repetition policy: a finite repeat count or infinite
// repetition. The zero value repeats zero times
type LoopCount struct {
	count    uint32
	infinite bool
}

// Times repeats the sequence n times
func Times(n uint32) LoopCount {
	return LoopCount{count: n}
}

// Forever repeats the sequence until stopped
func Forever() LoopCount {
	return LoopCount{infinite: true}
}

// Infinite reports whether the sequence repeats indefinitely
func (lc LoopCount) Infinite() bool {
	return lc.infinite
}

// Count returns the finite repeat count; zero when infinite
func (lc LoopCount) Count() uint32 {
	if lc.infinite {
		return 0
	}
	return lc.count
}

// ColorFunc computes the output color of a function-based sequence from
// its base color and the elapsed time
type ColorFunc func(base colorful.Color, elapsed clock.Duration) colorful.Color

// TimingFunc reports the service hint of a function-based sequence at
// the elapsed time; returning Done marks the sequence complete
type TimingFunc func(elapsed clock.Duration) Hint

// Sequence is an immutable color program. Step-based and function-based
// variants are mutually exclusive; a Sequence is built once and then
// only read
type Sequence struct {
	steps        []Step
	loop         LoopCount
	startColor   colorful.Color
	hasStart     bool
	landingColor colorful.Color
	hasLanding   bool
	loopDuration clock.Duration

	base     colorful.Color
	colorFn  ColorFunc
	timingFn TimingFunc
}

// FromFunc creates a function-based sequence for algorithmic animations.
// colorFn receives the base color and elapsed time; timingFn drives the
// service cadence and signals completion by returning Done
func FromFunc(base colorful.Color, colorFn ColorFunc, timingFn TimingFunc) Sequence {
	return Sequence{
		loop:     Times(1),
		base:     base,
		colorFn:  colorFn,
		timingFn: timingFn,
	}
}

// Solid creates a single-step sequence holding one color for d
func Solid(c colorful.Color, d clock.Duration) (Sequence, error) {
	return NewBuilder(1).Step(c, d, Discrete).Build()
}

// Position describes where in a step-based sequence an elapsed time falls
type Position struct {
	// StepIndex is the active step, or the last step once complete
	StepIndex int
	// TimeInStep is the elapsed time within the active step
	TimeInStep clock.Duration
	// TimeUntilStepEnd is the remaining time in the active step
	TimeUntilStepEnd clock.Duration
	// Complete is true once a finite sequence has exhausted all loops
	Complete bool
	// Loop is the zero-based loop iteration
	Loop uint32
}

// Evaluate returns the output color at elapsed together with a hint for
// when the next service is needed. Pure and deterministic
func (s Sequence) Evaluate(elapsed clock.Duration) (colorful.Color, Hint) {
	if s.colorFn != nil {
		return s.colorFn(s.base, elapsed), s.timingFn(elapsed)
	}

	pos, ok := s.position(elapsed)
	if !ok {
		// Zero-value sequence; builder output never reaches this
		return colors.Off, Done()
	}
	return s.colorAt(pos), s.hintAt(pos)
}

// HasCompleted reports whether the sequence has finished at elapsed.
// Always false for infinite sequences
func (s Sequence) HasCompleted(elapsed clock.Duration) bool {
	if s.timingFn != nil {
		return s.timingFn(elapsed).IsDone()
	}
	if len(s.steps) == 0 {
		return true
	}
	return s.completedAt(elapsed)
}

// Position returns the step position at elapsed. ok is false for
// function-based and zero-value sequences
func (s Sequence) Position(elapsed clock.Duration) (Position, bool) {
	if s.colorFn != nil {
		return Position{}, false
	}
	return s.position(elapsed)
}

// LoopDuration returns the summed duration of one pass over the steps
func (s Sequence) LoopDuration() clock.Duration {
	return s.loopDuration
}

// StepCount returns the number of steps
func (s Sequence) StepCount() int {
	return len(s.steps)
}

// Loop returns the repetition policy
func (s Sequence) Loop() LoopCount {
	return s.loop
}

// StepAt returns the step at index i
func (s Sequence) StepAt(i int) (Step, bool) {
	if i < 0 || i >= len(s.steps) {
		return Step{}, false
	}
	return s.steps[i], true
}

// StartColor returns the configured entry color for the first
// interpolating step, if any
func (s Sequence) StartColor() (colorful.Color, bool) {
	return s.startColor, s.hasStart
}

// LandingColor returns the color held after a finite sequence completes,
// if configured
func (s Sequence) LandingColor() (colorful.Color, bool) {
	return s.landingColor, s.hasLanding
}

// FunctionBased reports whether the sequence delegates to custom functions
func (s Sequence) FunctionBased() bool {
	return s.colorFn != nil
}

// completedAt reports completion for step-based sequences
func (s Sequence) completedAt(elapsed clock.Duration) bool {
	if s.loop.Infinite() {
		return false
	}
	loopMs := s.loopDuration.Millis()
	if loopMs == 0 {
		return elapsed.Millis() > 0
	}
	return elapsed.Millis() >= loopMs*uint64(s.loop.Count())
}

// position locates elapsed within the sequence
func (s Sequence) position(elapsed clock.Duration) (Position, bool) {
	if len(s.steps) == 0 {
		return Position{}, false
	}

	loopMs := s.loopDuration.Millis()
	if loopMs == 0 {
		return s.zeroDurationPosition(elapsed), true
	}

	if s.completedAt(elapsed) {
		return s.completePosition(), true
	}

	// Modular arithmetic implements both finite and infinite looping
	elapsedMs := elapsed.Millis()
	loop := uint32(elapsedMs / loopMs)
	inLoop := clock.Millis(elapsedMs % loopMs)

	return s.stepAt(inLoop, loop), true
}

// zeroDurationPosition handles sequences whose steps sum to zero: the
// first step shows at elapsed zero, anything later is complete
func (s Sequence) zeroDurationPosition(elapsed clock.Duration) Position {
	complete := elapsed.Millis() > 0
	idx := 0
	if complete {
		idx = len(s.steps) - 1
	}
	return Position{StepIndex: idx, Complete: complete}
}

// completePosition pins the position to the end of the final loop
func (s Sequence) completePosition() Position {
	last := len(s.steps) - 1
	loop := s.loop.Count()
	if loop > 0 {
		loop--
	}
	return Position{
		StepIndex:  last,
		TimeInStep: s.steps[last].Duration,
		Complete:   true,
		Loop:       loop,
	}
}

// stepAt scans the steps for the half-open interval [start, start+duration)
// containing inLoop. A boundary instant belongs to the next step, and
// zero-duration steps are skipped because their interval is empty
func (s Sequence) stepAt(inLoop clock.Duration, loop uint32) Position {
	var accumulated uint64
	inLoopMs := inLoop.Millis()

	for i, step := range s.steps {
		end := accumulated + step.Duration.Millis()
		if inLoopMs < end {
			return Position{
				StepIndex:        i,
				TimeInStep:       clock.Millis(inLoopMs - accumulated),
				TimeUntilStepEnd: clock.Millis(end - inLoopMs),
				Loop:             loop,
			}
		}
		accumulated = end
	}

	// Unreachable for validated sequences: inLoop < loopDuration
	last := len(s.steps) - 1
	return Position{
		StepIndex:  last,
		TimeInStep: s.steps[last].Duration,
		Loop:       loop,
	}
}

// colorAt resolves the output color for a position
func (s Sequence) colorAt(pos Position) colorful.Color {
	if pos.Complete {
		if s.hasLanding {
			return s.landingColor
		}
		return s.steps[len(s.steps)-1].Color
	}

	step := s.steps[pos.StepIndex]
	if !step.Transition.Interpolates() {
		return step.Color
	}
	return s.interpolate(pos, step)
}

// interpolate blends from the reference color into the step's target.
// The reference is the prior step's color; for the first step it is the
// start color (first loop only) or the last step's color, which makes
// looping seamless
func (s Sequence) interpolate(pos Position, step Step) colorful.Color {
	var prev colorful.Color
	switch {
	case pos.StepIndex == 0 && pos.Loop == 0 && s.hasStart:
		prev = s.startColor
	case pos.StepIndex == 0:
		prev = s.steps[len(s.steps)-1].Color
	default:
		prev = s.steps[pos.StepIndex-1].Color
	}

	durMs := step.Duration.Millis()
	if durMs == 0 {
		return step.Color
	}

	p := float64(pos.TimeInStep.Millis()) / float64(durMs)
	if p > 1 {
		p = 1
	}
	return prev.BlendRgb(step.Color, ease(p, step.Transition))
}

// hintAt resolves the service hint for a position
func (s Sequence) hintAt(pos Position) Hint {
	if pos.Complete {
		return Done()
	}
	if s.steps[pos.StepIndex].Transition.Interpolates() {
		return Continuous()
	}
	return After(pos.TimeUntilStepEnd)
}
