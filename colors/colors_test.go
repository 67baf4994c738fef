package colors

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestEqualWithinEpsilon(t *testing.T) {
	a := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	b := colorful.Color{R: 0.5005, G: 0.5, B: 0.4995}

	if !Equal(a, b, 0.001) {
		t.Error("expected colors within epsilon to compare equal")
	}
	if Equal(a, b, 0.0001) {
		t.Error("expected colors outside epsilon to compare unequal")
	}
}

func TestEqualChecksEveryChannel(t *testing.T) {
	a := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	for _, b := range []colorful.Color{
		{R: 0.6, G: 0.5, B: 0.5},
		{R: 0.5, G: 0.6, B: 0.5},
		{R: 0.5, G: 0.5, B: 0.6},
	} {
		if Equal(a, b, 0.001) {
			t.Errorf("expected %v to differ from %v", a, b)
		}
	}
}

func TestScale(t *testing.T) {
	c := colorful.Color{R: 1, G: 0.5, B: 0.2}

	half := Scale(c, 0.5)
	want := colorful.Color{R: 0.5, G: 0.25, B: 0.1}
	if !Equal(half, want, 0.0001) {
		t.Errorf("expected %v, got %v", want, half)
	}

	if got := Scale(c, 0); got != Off {
		t.Errorf("expected zero factor to yield Off, got %v", got)
	}
	if got := Scale(c, -1); got != Off {
		t.Errorf("expected negative factor to yield Off, got %v", got)
	}
	if got := Scale(c, 1); got != c {
		t.Errorf("expected unit factor to be identity, got %v", got)
	}
	if got := Scale(c, 2); got != c {
		t.Errorf("expected factor above one to clamp, got %v", got)
	}
}

func TestHSVPrimaries(t *testing.T) {
	cases := []struct {
		hue  float64
		want colorful.Color
	}{
		{0, Red},
		{120, Green},
		{240, Blue},
	}
	for _, tc := range cases {
		if got := Hue(tc.hue); !Equal(got, tc.want, 0.001) {
			t.Errorf("Hue(%v): expected %v, got %v", tc.hue, tc.want, got)
		}
	}
}

func TestHSVValueDims(t *testing.T) {
	dim := HSV(0, 1, 0.5)
	if !Equal(dim, colorful.Color{R: 0.5, G: 0, B: 0}, 0.001) {
		t.Errorf("expected half-value red, got %v", dim)
	}
}
