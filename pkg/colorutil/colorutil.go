// Package colorutil provides shared color utilities for diagram rendering.
package colorutil

import (
	"image/color"
	"strings"
)

// Named colors used for wires, markers and label backgrounds.
// Values follow the usual web color names (green is the dark #008000).
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Purple = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	Gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

var byName = map[string]color.RGBA{
	"black":  Black,
	"white":  White,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"orange": Orange,
	"purple": Purple,
	"gray":   Gray,
}

// ByName looks up a named color, ignoring case.
func ByName(name string) (color.RGBA, bool) {
	c, ok := byName[strings.ToLower(name)]
	return c, ok
}

// Blend paints src over dst with the given opacity (0-1) and returns the result.
// The result is always opaque.
func Blend(dst, src color.RGBA, opacity float64) color.RGBA {
	a := clamp(opacity, 0, 1)
	mix := func(d, s uint8) uint8 {
		return uint8(clamp(float64(s)*a+float64(d)*(1-a)+0.5, 0, 255))
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 255,
	}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
