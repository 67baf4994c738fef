package sequencer

import (
	"errors"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/HybridChild/rgb-sequencer-sub000/clock"
	"github.com/HybridChild/rgb-sequencer-sub000/colors"
	"github.com/HybridChild/rgb-sequencer-sub000/sequence"
)

func solidSeq(t *testing.T, c colorful.Color, ms uint64) sequence.Sequence {
	t.Helper()
	seq, err := sequence.Solid(c, clock.Millis(ms))
	if err != nil {
		t.Fatalf("solid build failed: %v", err)
	}
	return seq
}

func TestCollectionAddAndContains(t *testing.T) {
	coll := NewCollection(clock.NewManual(), 4)

	if coll.Capacity() != 4 {
		t.Errorf("expected capacity 4, got %d", coll.Capacity())
	}
	if coll.Len() != 0 {
		t.Errorf("expected empty collection, got %d", coll.Len())
	}

	if err := coll.Add(2, &recordSink{}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if coll.Len() != 1 {
		t.Errorf("expected one channel, got %d", coll.Len())
	}
	if !coll.Contains(2) {
		t.Error("expected channel 2 registered")
	}
	if coll.Contains(0) || coll.Contains(3) {
		t.Error("expected unregistered slots to report absent")
	}
	if coll.Contains(-1) || coll.Contains(4) {
		t.Error("expected out-of-range ids to report absent")
	}
}

func TestCollectionAddRejectsDuplicates(t *testing.T) {
	coll := NewCollection(clock.NewManual(), 2)

	if err := coll.Add(0, &recordSink{}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	err := coll.Add(0, &recordSink{})
	if !errors.Is(err, ErrDuplicateChannel) {
		t.Errorf("expected ErrDuplicateChannel, got %v", err)
	}
}

func TestCollectionAddRejectsOutOfRange(t *testing.T) {
	coll := NewCollection(clock.NewManual(), 2)

	for _, id := range []ID{-1, 2, 100} {
		err := coll.Add(id, &recordSink{})
		if !errors.Is(err, ErrChannelOutOfRange) {
			t.Errorf("id %d: expected ErrChannelOutOfRange, got %v", id, err)
		}
	}
}

func TestCollectionRouteUnknownChannel(t *testing.T) {
	coll := NewCollection(clock.NewManual(), 2)

	_, err := coll.Route(0, Start())
	if !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel, got %v", err)
	}
	if _, err := coll.StateOf(1); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel from StateOf, got %v", err)
	}
	if _, err := coll.ColorOf(1); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel from ColorOf, got %v", err)
	}
	if _, err := coll.Sequencer(1); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("expected ErrUnknownChannel from Sequencer, got %v", err)
	}
}

func TestCollectionRouteDrivesChannel(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 2)
	sink := &recordSink{}

	if err := coll.Add(0, sink); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := coll.Route(0, Load(solidSeq(t, colors.Red, 1000))); err != nil {
		t.Fatalf("route load failed: %v", err)
	}

	state, err := coll.StateOf(0)
	if err != nil || state != StateLoaded {
		t.Errorf("expected StateLoaded, got %v (err=%v)", state, err)
	}

	hint, err := coll.Route(0, Start())
	if err != nil {
		t.Fatalf("route start failed: %v", err)
	}
	if d, ok := hint.Delay(); !ok || d != clock.Millis(1000) {
		t.Errorf("expected After(1000ms), got %v", hint)
	}

	c, err := coll.ColorOf(0)
	if err != nil || !colorsEqual(c, colors.Red) {
		t.Errorf("expected red on channel 0, got %v (err=%v)", c, err)
	}
}

func TestServiceAllReportsMinimumDelay(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 4)

	delays := []uint64{5000, 2000, 3000}
	for i, ms := range delays {
		id := ID(i)
		if err := coll.Add(id, &recordSink{}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		coll.Route(id, Load(solidSeq(t, colors.Red, ms)))
		coll.Route(id, Start())
	}

	hint, err := coll.ServiceAll()
	if err != nil {
		t.Fatalf("service failed: %v", err)
	}
	d, ok := hint.Delay()
	if !ok || d != clock.Millis(2000) {
		t.Errorf("expected the minimum delay 2000ms, got %v", hint)
	}
}

func TestServiceAllContinuousWins(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 2)

	coll.Add(0, &recordSink{})
	coll.Route(0, Load(solidSeq(t, colors.Red, 5000)))
	coll.Route(0, Start())

	fade, err := sequence.NewBuilder(4).
		Step(colors.White, clock.Millis(1000), sequence.Linear).
		Loop(sequence.Forever()).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	coll.Add(1, &recordSink{})
	coll.Route(1, Load(fade))
	coll.Route(1, Start())

	hint, err := coll.ServiceAll()
	if err != nil {
		t.Fatalf("service failed: %v", err)
	}
	if !hint.IsContinuous() {
		t.Errorf("expected Continuous to dominate, got %v", hint)
	}
}

func TestServiceAllDoneWhenNothingRuns(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 2)

	// Empty collection
	hint, err := coll.ServiceAll()
	if err != nil {
		t.Fatalf("service failed: %v", err)
	}
	if !hint.IsDone() {
		t.Errorf("expected Done for an empty collection, got %v", hint)
	}

	// Loaded but not started
	coll.Add(0, &recordSink{})
	coll.Route(0, Load(solidSeq(t, colors.Red, 1000)))
	hint, _ = coll.ServiceAll()
	if !hint.IsDone() {
		t.Errorf("expected Done with no running channels, got %v", hint)
	}
}

func TestServiceAllAfterCompletion(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 1)
	sink := &recordSink{}

	coll.Add(0, sink)
	coll.Route(0, Load(solidSeq(t, colors.Red, 1000)))
	coll.Route(0, Start())

	clk.Advance(clock.Millis(1000))
	hint, err := coll.ServiceAll()
	if err != nil {
		t.Fatalf("service failed: %v", err)
	}
	if !hint.IsDone() {
		t.Errorf("expected Done once the only channel completed, got %v", hint)
	}
	if state, _ := coll.StateOf(0); state != StateComplete {
		t.Errorf("expected StateComplete, got %v", state)
	}

	// Subsequent sweeps skip the completed channel
	hint, _ = coll.ServiceAll()
	if !hint.IsDone() {
		t.Errorf("expected Done on the next sweep, got %v", hint)
	}
}

func TestServiceAllSkipsPausedChannels(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 2)

	coll.Add(0, &recordSink{})
	coll.Route(0, Load(solidSeq(t, colors.Red, 1000)))
	coll.Route(0, Start())
	coll.Route(0, Pause())

	coll.Add(1, &recordSink{})
	coll.Route(1, Load(solidSeq(t, colors.Blue, 4000)))
	coll.Route(1, Start())

	hint, err := coll.ServiceAll()
	if err != nil {
		t.Fatalf("service failed: %v", err)
	}
	d, ok := hint.Delay()
	if !ok || d != clock.Millis(4000) {
		t.Errorf("expected only the running channel's delay, got %v", hint)
	}
}

func TestCollectionPerChannelOptions(t *testing.T) {
	clk := clock.NewManual()
	coll := NewCollection(clk, 2)

	dimSink := &recordSink{}
	fullSink := &recordSink{}
	coll.Add(0, dimSink, WithBrightness(0.5))
	coll.Add(1, fullSink)

	for _, id := range []ID{0, 1} {
		coll.Route(id, Load(solidSeq(t, colors.Red, 1000)))
		coll.Route(id, Start())
	}

	if !colorsEqual(dimSink.last(), colorful.Color{R: 0.5, G: 0, B: 0}) {
		t.Errorf("expected half red on the dimmed channel, got %v", dimSink.last())
	}
	if !colorsEqual(fullSink.last(), colors.Red) {
		t.Errorf("expected full red on the default channel, got %v", fullSink.last())
	}
}
