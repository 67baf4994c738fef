package sequencer

import (
	"errors"
	"fmt"
)

// State identifies a sequencer's lifecycle phase
type State uint8

const (
	// StateIdle: no sequence loaded, sink off
	StateIdle State = iota
	// StateLoaded: sequence loaded and ready to start, sink off
	StateLoaded
	// StateRunning: sequence actively executing
	StateRunning
	// StatePaused: sequence frozen, sink holds the pause-time color
	StatePaused
	// StateComplete: finite sequence finished, sink holds the landing color
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoaded:
		return "Loaded"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateComplete:
		return "Complete"
	}
	return "Unknown"
}

// ErrNoSequence is returned when an operation needs a loaded sequence
// and none is present
var ErrNoSequence = errors.New("sequencer: no sequence loaded")

// Collection addressing errors
var (
	ErrUnknownChannel    = errors.New("sequencer: unknown channel")
	ErrDuplicateChannel  = errors.New("sequencer: channel already registered")
	ErrChannelOutOfRange = errors.New("sequencer: channel id out of range")
)

// StateError reports an operation invoked from a disallowed lifecycle
// state. The operation leaves the sequencer unchanged
type StateError struct {
	// Op is the operation that was attempted
	Op string
	// Expected names the state(s) the operation accepts
	Expected string
	// Actual is the state the sequencer was in
	Actual State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("sequencer: %s requires state %s, got %s", e.Op, e.Expected, e.Actual)
}
