package sequencer

import (
	"github.com/HybridChild/rgb-sequencer-sub000/sequence"
)

// Action is a sequencer control command, used for queue-based control
// and Collection routing
type Action struct {
	kind actionKind
	seq  sequence.Sequence
}

type actionKind uint8

const (
	actionLoad actionKind = iota
	actionStart
	actionStop
	actionPause
	actionResume
	actionRestart
	actionClear
)

// Load loads seq into the target sequencer
func Load(seq sequence.Sequence) Action {
	return Action{kind: actionLoad, seq: seq}
}

// Start starts the loaded sequence
func Start() Action { return Action{kind: actionStart} }

// Stop stops playback, keeping the sequence loaded
func Stop() Action { return Action{kind: actionStop} }

// Pause freezes playback at the current color
func Pause() Action { return Action{kind: actionPause} }

// Resume continues a paused sequence without time drift
func Resume() Action { return Action{kind: actionResume} }

// Restart rewinds to the beginning and keeps running
func Restart() Action { return Action{kind: actionRestart} }

// Clear drops the sequence and turns the sink off
func Clear() Action { return Action{kind: actionClear} }

func (a Action) String() string {
	switch a.kind {
	case actionLoad:
		return "Load"
	case actionStart:
		return "Start"
	case actionStop:
		return "Stop"
	case actionPause:
		return "Pause"
	case actionResume:
		return "Resume"
	case actionRestart:
		return "Restart"
	case actionClear:
		return "Clear"
	}
	return "Unknown"
}

// Command is an action addressed to a channel, the envelope to send
// through queues when control and servicing live in different places
type Command struct {
	Channel ID
	Action  Action
}
