package sequence

import (
	"fmt"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
)

// Hint tells the caller when the next service call is needed
type Hint struct {
	kind  hintKind
	delay clock.Duration
}

type hintKind uint8

const (
	hintDone hintKind = iota
	hintContinuous
	hintAfter
)

// Continuous asks the caller to service again at its own frame cadence,
// used while an interpolating transition or function-based animation is
// in progress
func Continuous() Hint {
	return Hint{kind: hintContinuous}
}

// After asks the caller to service again once d has elapsed, used while
// the output color is static. After(0) is Continuous
func After(d clock.Duration) Hint {
	if d == 0 {
		return Continuous()
	}
	return Hint{kind: hintAfter, delay: d}
}

// Done signals that no further servicing is needed
func Done() Hint {
	return Hint{kind: hintDone}
}

// IsContinuous reports whether the caller should re-service every frame
func (h Hint) IsContinuous() bool {
	return h.kind == hintContinuous
}

// IsDone reports whether servicing can stop
func (h Hint) IsDone() bool {
	return h.kind == hintDone
}

// Delay returns the bounded wait before the next meaningful change;
// ok is false for Continuous and Done hints
func (h Hint) Delay() (clock.Duration, bool) {
	return h.delay, h.kind == hintAfter
}

func (h Hint) String() string {
	switch h.kind {
	case hintContinuous:
		return "Continuous"
	case hintAfter:
		return fmt.Sprintf("After(%dms)", h.delay.Millis())
	}
	return "Done"
}
