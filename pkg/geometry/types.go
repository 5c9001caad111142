// Package geometry provides basic geometric types used throughout the application.
//
// Canvas coordinates are y-up: Y0 is the bottom edge of a box and Y1 its top.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used by the approximate comparisons in this package.
const Epsilon = 1e-9

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Midpoint returns the point halfway between p and other.
func (p Point2D) Midpoint(other Point2D) Point2D {
	return Point2D{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// ApproxEqual reports whether two points match within Epsilon on both axes.
func (p Point2D) ApproxEqual(other Point2D) bool {
	return Near(p.X, other.X) && Near(p.Y, other.Y)
}

// Near reports whether a and b are equal within Epsilon, absolute or relative.
func Near(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, Epsilon, Epsilon)
}

// Box is an axis-aligned rectangle given by its two corners.
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewBox creates a Box from its corners.
func NewBox(x0, y0, x1, y1 float64) Box {
	return Box{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the center point of the box.
func (b Box) Center() Point2D {
	return Point2D{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// AspectRatio returns width divided by height, or 0 for a flat box.
func (b Box) AspectRatio() float64 {
	if b.Height() == 0 {
		return 0
	}
	return b.Width() / b.Height()
}

// Intersects returns true if the interiors of the two boxes overlap.
func (b Box) Intersects(other Box) bool {
	return b.X0 < other.X1 && b.X1 > other.X0 &&
		b.Y0 < other.Y1 && b.Y1 > other.Y0
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	return Box{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Lerp returns the point at fractions (fx, fy) across the box, measured from (X0, Y0).
func (b Box) Lerp(fx, fy float64) Point2D {
	return Point2D{X: b.X0 + fx*b.Width(), Y: b.Y0 + fy*b.Height()}
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// ApplyBox transforms both corners of a box and returns the normalized result.
// Only meaningful for transforms without rotation.
func (t AffineTransform) ApplyBox(b Box) Box {
	p0 := t.Apply(Point2D{X: b.X0, Y: b.Y0})
	p1 := t.Apply(Point2D{X: b.X1, Y: b.Y1})
	return Box{
		X0: math.Min(p0.X, p1.X),
		Y0: math.Min(p0.Y, p1.Y),
		X1: math.Max(p0.X, p1.X),
		Y1: math.Max(p0.Y, p1.Y),
	}
}

// Compose returns this transform composed with another (this * other).
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}
