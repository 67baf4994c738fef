package clock

import (
	"math"
	"testing"
)

func TestDurationSaturatingSub(t *testing.T) {
	if got := Millis(100).SaturatingSub(Millis(30)); got != Millis(70) {
		t.Errorf("expected 70ms, got %v", got)
	}
	if got := Millis(30).SaturatingSub(Millis(100)); got != 0 {
		t.Errorf("expected saturation to zero, got %v", got)
	}
	if got := Millis(50).SaturatingSub(Millis(50)); got != 0 {
		t.Errorf("expected zero for equal durations, got %v", got)
	}
}

func TestInstantSubIsWrapping(t *testing.T) {
	earlier := Instant(math.MaxUint64 - 4)
	later := Instant(5)

	// 5 ms before the wrap plus 5 ms after it
	if got := later.Sub(earlier); got != Millis(10) {
		t.Errorf("expected 10ms across wrap, got %d", got.Millis())
	}
}

func TestInstantSubCausallyOrdered(t *testing.T) {
	if got := Instant(1500).Sub(Instant(500)); got != Millis(1000) {
		t.Errorf("expected 1000ms, got %d", got.Millis())
	}
	if got := Instant(500).Sub(Instant(500)); got != 0 {
		t.Errorf("expected 0ms, got %d", got.Millis())
	}
}

func TestInstantAddChecked(t *testing.T) {
	shifted, ok := Instant(100).Add(Millis(50))
	if !ok || shifted != Instant(150) {
		t.Errorf("expected 150, got %d (ok=%v)", shifted, ok)
	}

	_, ok = Instant(math.MaxUint64).Add(Millis(1))
	if ok {
		t.Error("expected overflow to report !ok")
	}
}

func TestInstantSubtractChecked(t *testing.T) {
	shifted, ok := Instant(100).Subtract(Millis(40))
	if !ok || shifted != Instant(60) {
		t.Errorf("expected 60, got %d (ok=%v)", shifted, ok)
	}

	if _, ok := Instant(10).Subtract(Millis(20)); ok {
		t.Error("expected underflow to report !ok")
	}
}

func TestManualClock(t *testing.T) {
	clk := NewManual()
	if clk.Now() != 0 {
		t.Errorf("expected manual clock to start at zero, got %d", clk.Now())
	}

	clk.Advance(Millis(250))
	clk.Advance(Millis(250))
	if clk.Now() != Instant(500) {
		t.Errorf("expected 500 after advancing, got %d", clk.Now())
	}

	clk.Set(Instant(42))
	if clk.Now() != Instant(42) {
		t.Errorf("expected 42 after set, got %d", clk.Now())
	}
}

func TestCounter32UnwrapsAcrossWrap(t *testing.T) {
	raw := uint32(math.MaxUint32 - 10)
	clk := NewCounter32(func() uint32 { return raw })

	before := clk.Now()

	// Move the raw counter past its wrap point
	raw = 20
	after := clk.Now()

	want := Millis(31) // 11 ms to the wrap plus 20 ms after it
	if got := after.Sub(before); got != want {
		t.Errorf("expected %dms across raw wrap, got %dms", want.Millis(), got.Millis())
	}
}

func TestCounter32Monotonic(t *testing.T) {
	raw := uint32(0)
	clk := NewCounter32(func() uint32 { return raw })

	prev := clk.Now()
	for _, next := range []uint32{100, math.MaxUint32, 5, 6} {
		raw = next
		now := clk.Now()
		if uint64(now) < uint64(prev) {
			t.Fatalf("clock went backwards: %d after %d", now, prev)
		}
		prev = now
	}
}

func TestSystemClockAdvances(t *testing.T) {
	clk := NewSystem()
	a := clk.Now()
	b := clk.Now()
	if uint64(b) < uint64(a) {
		t.Errorf("system clock went backwards: %d after %d", b, a)
	}
}
