package sequencer

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
	"github.com/HybridChild/rgb-sequencer-sub000/sequence"
)

// ID addresses a channel slot within a Collection
type ID int

// Collection coordinates a fixed set of sequencers sharing one clock.
// Capacity is fixed at construction; identifiers map one-to-one onto
// slots. One hint-directed poll loop can drive every member without
// per-channel scheduling
type Collection struct {
	slots []*Sequencer
	clk   clock.Clock
	count int
}

// NewCollection creates an empty collection with a fixed capacity
func NewCollection(clk clock.Clock, capacity int) *Collection {
	if capacity < 0 {
		capacity = 0
	}
	return &Collection{
		slots: make([]*Sequencer, capacity),
		clk:   clk,
	}
}

// Add registers sink as channel id, creating its sequencer. The options
// apply to that sequencer alone
func (c *Collection) Add(id ID, sink Sink, opts ...Option) error {
	if id < 0 || int(id) >= len(c.slots) {
		return fmt.Errorf("%w: id %d, capacity %d", ErrChannelOutOfRange, id, len(c.slots))
	}
	if c.slots[id] != nil {
		return fmt.Errorf("%w: id %d", ErrDuplicateChannel, id)
	}
	c.slots[id] = New(sink, c.clk, opts...)
	c.count++
	return nil
}

// Route dispatches an action to the addressed channel
func (c *Collection) Route(id ID, a Action) (sequence.Hint, error) {
	seqr, err := c.get(id)
	if err != nil {
		return sequence.Done(), err
	}
	return seqr.Apply(a)
}

// ServiceAll services every running channel and reduces their hints:
// Continuous if any member is continuous, otherwise the minimum bounded
// delay among running members, otherwise Done (no service needed)
func (c *Collection) ServiceAll() (sequence.Hint, error) {
	continuous := false
	var minDelay clock.Duration
	haveDelay := false

	for _, s := range c.slots {
		if s == nil || s.State() != StateRunning {
			continue
		}
		hint, err := s.Service()
		if err != nil {
			return sequence.Done(), err
		}
		switch {
		case hint.IsContinuous():
			continuous = true
		case hint.IsDone():
			// Completed this service; contributes no timing
		default:
			d, _ := hint.Delay()
			if !haveDelay || d < minDelay {
				minDelay = d
				haveDelay = true
			}
		}
	}

	if continuous {
		return sequence.Continuous(), nil
	}
	if haveDelay {
		return sequence.After(minDelay), nil
	}
	return sequence.Done(), nil
}

// Sequencer returns the channel's sequencer for direct control
func (c *Collection) Sequencer(id ID) (*Sequencer, error) {
	return c.get(id)
}

// StateOf returns the channel's lifecycle state
func (c *Collection) StateOf(id ID) (State, error) {
	seqr, err := c.get(id)
	if err != nil {
		return StateIdle, err
	}
	return seqr.State(), nil
}

// ColorOf returns the color last pushed to the channel's sink
func (c *Collection) ColorOf(id ID) (colorful.Color, error) {
	seqr, err := c.get(id)
	if err != nil {
		return colorful.Color{}, err
	}
	return seqr.Color(), nil
}

// Len returns the number of registered channels
func (c *Collection) Len() int {
	return c.count
}

// Capacity returns the fixed slot count
func (c *Collection) Capacity() int {
	return len(c.slots)
}

// Contains reports whether a channel is registered under id
func (c *Collection) Contains(id ID) bool {
	return id >= 0 && int(id) < len(c.slots) && c.slots[id] != nil
}

func (c *Collection) get(id ID) (*Sequencer, error) {
	if id < 0 || int(id) >= len(c.slots) || c.slots[id] == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownChannel, id)
	}
	return c.slots[id], nil
}
