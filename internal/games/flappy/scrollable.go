package flappy

import "github.com/go-gl/mathgl/mgl32"

// Scrollable is a fixed-size rectangle moving at a constant horizontal
// velocity. Ground strips and pipes are built on it. Velocity.y is always 0.
type Scrollable struct {
	position     mgl32.Vec2
	velocity     mgl32.Vec2
	width        int
	height       int
	scrolledLeft bool
}

func newScrollable(x, y float32, width, height int, scrollSpeed float32) Scrollable {
	return Scrollable{
		position: mgl32.Vec2{x, y},
		velocity: mgl32.Vec2{scrollSpeed, 0},
		width:    width,
		height:   height,
	}
}

// Update moves the rectangle and flags it once its tail has left the screen.
// The flag is only cleared by Reset.
func (s *Scrollable) Update(dt float32) {
	s.position = s.position.Add(s.velocity.Mul(dt))

	if s.TailX() < 0 {
		s.scrolledLeft = true
	}
}

// Reset moves the rectangle to newX and clears the scrolled-left flag.
func (s *Scrollable) Reset(newX float32) {
	s.position[0] = newX
	s.scrolledLeft = false
}

// OnRestart restores the scroll velocity, undoing Stop, then resets to newX.
func (s *Scrollable) OnRestart(newX, scrollSpeed float32) {
	s.velocity[0] = scrollSpeed
	s.Reset(newX)
}

// Stop freezes the rectangle in place.
func (s *Scrollable) Stop() {
	s.velocity[0] = 0
}

// ScrolledLeft reports whether the rectangle is fully past the left edge.
func (s *Scrollable) ScrolledLeft() bool { return s.scrolledLeft }

// TailX returns the x coordinate of the right edge.
func (s *Scrollable) TailX() float32 { return s.position.X() + float32(s.width) }

// Position returns the bottom-left corner.
func (s *Scrollable) Position() mgl32.Vec2 { return s.position }

// Velocity returns the current velocity.
func (s *Scrollable) Velocity() mgl32.Vec2 { return s.velocity }

// X returns the x coordinate of the left edge.
func (s *Scrollable) X() float32 { return s.position.X() }

// Y returns the y coordinate of the bottom edge.
func (s *Scrollable) Y() float32 { return s.position.Y() }

// Width returns the width in world units.
func (s *Scrollable) Width() int { return s.width }

// Height returns the height in world units.
func (s *Scrollable) Height() int { return s.height }

// Grass is one tile of the endlessly scrolling ground strip.
// Two of them are recycled end to end by the ScrollHandler.
type Grass struct {
	Scrollable
}

func newGrass(x, y float32, width, height int, scrollSpeed float32) Grass {
	return Grass{Scrollable: newScrollable(x, y, width, height, scrollSpeed)}
}
