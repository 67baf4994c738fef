// Package sequencer drives output sinks through timed color sequences.
// A Sequencer owns one sink exclusively and advances it from an external
// poll loop; a Collection coordinates a fixed set of sequencers sharing
// one clock. Nothing here blocks or synchronizes internally: the core is
// single-owner and non-blocking, and every guarded transition returns a
// typed error instead of panicking.
package sequencer

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
	"github.com/HybridChild/rgb-sequencer-sub000/colors"
	"github.com/HybridChild/rgb-sequencer-sub000/sequence"
)

// Sink receives color updates for one logical channel (an LED or similar
// actuator). Implementations absorb hardware errors; SetColor cannot
// fail from the sequencer's point of view
type Sink interface {
	SetColor(colorful.Color)
}

// Option configures a Sequencer at construction
type Option func(*Sequencer)

// WithEpsilon sets the per-channel tolerance below which a recomputed
// color is not pushed to the sink (default colors.DefaultEpsilon).
// Negative values clamp to zero
func WithEpsilon(eps float64) Option {
	return func(s *Sequencer) {
		if eps < 0 {
			eps = 0
		}
		s.epsilon = eps
	}
}

// WithBrightness sets the initial brightness overlay, clamped to [0,1]
// (default 1)
func WithBrightness(b float64) Option {
	return func(s *Sequencer) {
		s.brightness = clamp01(b)
	}
}

// Sequencer controls a single sink through timed color sequences. It
// tracks lifecycle state and timing anchors; the color math itself lives
// in the pure sequence evaluator
type Sequencer struct {
	sink Sink
	clk  clock.Clock

	state    State
	seq      sequence.Sequence
	hasSeq   bool
	startAt  clock.Instant
	hasStart bool
	pausedAt clock.Instant
	hasPause bool

	current    colorful.Color
	epsilon    float64
	brightness float64
}

// New creates an idle sequencer and forces the sink off
func New(sink Sink, clk clock.Clock, opts ...Option) *Sequencer {
	s := &Sequencer{
		sink:       sink,
		clk:        clk,
		epsilon:    colors.DefaultEpsilon,
		brightness: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.forceOff()
	return s
}

// Load stores seq and clears the timing anchors. Callable from any
// state; a running sequence is abandoned
func (s *Sequencer) Load(seq sequence.Sequence) {
	s.seq = seq
	s.hasSeq = true
	s.hasStart = false
	s.hasPause = false
	s.state = StateLoaded
}

// Start begins the loaded sequence from the beginning and performs the
// first service. Requires StateLoaded
func (s *Sequencer) Start() (sequence.Hint, error) {
	if s.state != StateLoaded {
		return sequence.Done(), &StateError{Op: "start", Expected: "Loaded", Actual: s.state}
	}
	if !s.hasSeq {
		return sequence.Done(), ErrNoSequence
	}
	s.startAt = s.clk.Now()
	s.hasStart = true
	s.state = StateRunning
	return s.Service()
}

// Service recomputes the current color from elapsed time, pushes it to
// the sink if it changed beyond epsilon, and reports when the next call
// is needed. On completion the sequencer moves to StateComplete with the
// landing color applied. Requires StateRunning
func (s *Sequencer) Service() (sequence.Hint, error) {
	if s.state != StateRunning {
		return sequence.Done(), &StateError{Op: "service", Expected: "Running", Actual: s.state}
	}

	elapsed := s.clk.Now().Sub(s.startAt)
	color, hint := s.seq.Evaluate(elapsed)
	s.push(color)

	if hint.IsDone() {
		s.state = StateComplete
	}
	return hint, nil
}

// Pause freezes the sequence at the current color. Requires StateRunning
func (s *Sequencer) Pause() error {
	if s.state != StateRunning {
		return &StateError{Op: "pause", Expected: "Running", Actual: s.state}
	}
	s.pausedAt = s.clk.Now()
	s.hasPause = true
	s.state = StatePaused
	return nil
}

// Resume continues a paused sequence, shifting the start anchor forward
// by the pause duration so the sequence position is unaffected by the
// pause. Requires StatePaused
func (s *Sequencer) Resume() (sequence.Hint, error) {
	if s.state != StatePaused {
		return sequence.Done(), &StateError{Op: "resume", Expected: "Paused", Actual: s.state}
	}

	pauseDur := s.clk.Now().Sub(s.pausedAt)
	if shifted, ok := s.startAt.Add(pauseDur); ok {
		s.startAt = shifted
	}
	// On overflow the old anchor is kept: the sequence jumps forward
	// instead of crashing

	s.hasPause = false
	s.state = StateRunning
	return s.Service()
}

// Restart rewinds to the beginning and keeps running. Requires
// StateRunning, StatePaused or StateComplete
func (s *Sequencer) Restart() (sequence.Hint, error) {
	switch s.state {
	case StateRunning, StatePaused, StateComplete:
	default:
		return sequence.Done(), &StateError{Op: "restart", Expected: "Running, Paused, or Complete", Actual: s.state}
	}
	if !s.hasSeq {
		return sequence.Done(), ErrNoSequence
	}
	s.startAt = s.clk.Now()
	s.hasStart = true
	s.hasPause = false
	s.state = StateRunning
	return s.Service()
}

// Stop halts playback and turns the sink off; the sequence stays loaded.
// Requires StateRunning, StatePaused or StateComplete
func (s *Sequencer) Stop() error {
	switch s.state {
	case StateRunning, StatePaused, StateComplete:
	default:
		return &StateError{Op: "stop", Expected: "Running, Paused, or Complete", Actual: s.state}
	}
	s.hasStart = false
	s.hasPause = false
	s.state = StateLoaded
	s.forceOff()
	return nil
}

// Clear drops the sequence and turns the sink off. Callable from any
// state
func (s *Sequencer) Clear() {
	s.seq = sequence.Sequence{}
	s.hasSeq = false
	s.hasStart = false
	s.hasPause = false
	s.state = StateIdle
	s.forceOff()
}

// Apply dispatches a control action, returning the service hint for
// actions that start or resume playback and Done for the rest
func (s *Sequencer) Apply(a Action) (sequence.Hint, error) {
	switch a.kind {
	case actionLoad:
		s.Load(a.seq)
		return sequence.Done(), nil
	case actionStart:
		return s.Start()
	case actionStop:
		return sequence.Done(), s.Stop()
	case actionPause:
		return sequence.Done(), s.Pause()
	case actionResume:
		return s.Resume()
	case actionRestart:
		return s.Restart()
	case actionClear:
		s.Clear()
		return sequence.Done(), nil
	}
	return sequence.Done(), fmt.Errorf("sequencer: unknown action %d", a.kind)
}

// State returns the current lifecycle state
func (s *Sequencer) State() State {
	return s.state
}

// Color returns the color last pushed to the sink
func (s *Sequencer) Color() colorful.Color {
	return s.current
}

// IsRunning reports whether the sequencer is in StateRunning
func (s *Sequencer) IsRunning() bool {
	return s.state == StateRunning
}

// IsPaused reports whether the sequencer is in StatePaused
func (s *Sequencer) IsPaused() bool {
	return s.state == StatePaused
}

// Sequence returns the loaded sequence, if any
func (s *Sequencer) Sequence() (sequence.Sequence, bool) {
	return s.seq, s.hasSeq
}

// Elapsed returns the time since the sequence started. ok is false
// before the first Start
func (s *Sequencer) Elapsed() (clock.Duration, bool) {
	if !s.hasStart {
		return 0, false
	}
	return s.clk.Now().Sub(s.startAt), true
}

// Brightness returns the current brightness overlay
func (s *Sequencer) Brightness() float64 {
	return s.brightness
}

// SetBrightness changes the brightness overlay, clamped to [0,1]. It
// scales the output color from the next service on and never affects
// timing
func (s *Sequencer) SetBrightness(b float64) {
	s.brightness = clamp01(b)
}

// push applies the brightness overlay and writes the sink only on an
// actual color change, bounding bus traffic to one write per change
func (s *Sequencer) push(c colorful.Color) {
	c = colors.Scale(c, s.brightness)
	if colors.Equal(c, s.current, s.epsilon) {
		return
	}
	s.sink.SetColor(c)
	s.current = c
}

// forceOff writes the off sentinel unconditionally
func (s *Sequencer) forceOff() {
	s.sink.SetColor(colors.Off)
	s.current = colors.Off
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
