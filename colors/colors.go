// Package colors provides named sequence colors and small color helpers
// on top of colorful.Color, which the rest of the module uses as its
// color representation (float channels in the 0.0-1.0 range).
package colors

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultEpsilon is the per-channel tolerance used when deciding whether
// two colors differ enough to be worth pushing to a sink
const DefaultEpsilon = 0.001

// Predefined colors
var (
	Off     = colorful.Color{R: 0, G: 0, B: 0}
	Black   = Off
	White   = colorful.Color{R: 1, G: 1, B: 1}
	Red     = colorful.Color{R: 1, G: 0, B: 0}
	Green   = colorful.Color{R: 0, G: 1, B: 0}
	Blue    = colorful.Color{R: 0, G: 0, B: 1}
	Yellow  = colorful.Color{R: 1, G: 1, B: 0}
	Cyan    = colorful.Color{R: 0, G: 1, B: 1}
	Magenta = colorful.Color{R: 1, G: 0, B: 1}
	Orange  = colorful.Color{R: 1, G: 0.5, B: 0}
)

// Equal reports whether a and b match within eps on every channel
func Equal(a, b colorful.Color, eps float64) bool {
	return abs(a.R-b.R) <= eps && abs(a.G-b.G) <= eps && abs(a.B-b.B) <= eps
}

// Scale multiplies each channel by factor, clamping the result to [0,1]
func Scale(c colorful.Color, factor float64) colorful.Color {
	if factor <= 0 {
		return Off
	}
	if factor >= 1 {
		return c
	}
	return colorful.Color{R: c.R * factor, G: c.G * factor, B: c.B * factor}
}

// HSV builds an sRGB color from hue (degrees, 0-360), saturation and value
func HSV(h, s, v float64) colorful.Color {
	return colorful.Hsv(h, s, v)
}

// Hue builds a fully saturated, full-value color from hue alone
func Hue(h float64) colorful.Color {
	return colorful.Hsv(h, 1, 1)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
