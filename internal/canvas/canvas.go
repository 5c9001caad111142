// Package canvas defines the fixed logical drawing space and its zones.
//
// The canvas spans 0..100 on both axes with y pointing up. The board is
// placed in the left zone and peripheral modules are stacked in the right
// zone.
package canvas

import "circuit-diagram/pkg/geometry"

// Layout constants in canvas units.
const (
	Size       = 100.0
	Margin     = 5.0
	LeftWidth  = 40.0
	Gap        = 10.0
	RightWidth = 40.0
)

// Bounds returns the whole logical canvas.
func Bounds() geometry.Box {
	return geometry.NewBox(0, 0, Size, Size)
}

// LeftZone returns the board zone.
func LeftZone() geometry.Box {
	return geometry.NewBox(Margin, Margin, Margin+LeftWidth, Size-Margin)
}

// RightZone returns the module zone.
func RightZone() geometry.Box {
	x0 := Margin + LeftWidth + Gap
	return geometry.NewBox(x0, Margin, x0+RightWidth, Size-Margin)
}
