// Package core provides fundamental types and utilities for the game platform.
// It depends on nothing UI related (especially no Bubble Tea) to keep game
// logic pure and testable. Vector math comes from mathgl.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is a screen-space rectangle in cells, y down.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Circle is a collision circle in world units.
type Circle struct {
	Center mgl32.Vec2
	Radius float32
}

// Box is an axis-aligned box in half-extent form.
type Box struct {
	Center mgl32.Vec2
	Half   mgl32.Vec2
}

// BoxFromMin builds a box from its bottom-left corner and full size.
func BoxFromMin(x, y, w, h float32) Box {
	return Box{
		Center: mgl32.Vec2{x + w/2, y + h/2},
		Half:   mgl32.Vec2{w / 2, h / 2},
	}
}

// Min returns the corner with the smallest coordinates.
func (b Box) Min() mgl32.Vec2 {
	return b.Center.Sub(b.Half)
}

// Max returns the corner with the largest coordinates.
func (b Box) Max() mgl32.Vec2 {
	return b.Center.Add(b.Half)
}

// Width returns the full width of the box.
func (b Box) Width() float32 {
	return b.Half.X() * 2
}

// Height returns the full height of the box.
func (b Box) Height() float32 {
	return b.Half.Y() * 2
}

// CircleBoxDistance returns the Euclidean gap between the edge of c and b.
// The result is never negative: touching and penetrating shapes both yield 0.
func CircleBoxDistance(c Circle, b Box) float32 {
	dx := absF32(c.Center.X()-b.Center.X()) - b.Half.X()
	dy := absF32(c.Center.Y()-b.Center.Y()) - b.Half.Y()
	if dx < 0 {
		dx = 0
	}
	if dy < 0 {
		dy = 0
	}

	d := float32(math.Sqrt(float64(dx*dx+dy*dy))) - c.Radius
	if d < 0 {
		return 0
	}
	return d
}

// Overlaps reports whether the circle touches or intersects the box.
func Overlaps(c Circle, b Box) bool {
	return CircleBoxDistance(c, b) == 0
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
