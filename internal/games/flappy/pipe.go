package flappy

import "github.com/vovakirdan/zombiebird/internal/core"

// RandSource is the random number source used for pipe heights.
// *rand.Rand satisfies it; tests can pass a scripted source.
type RandSource interface {
	Intn(n int) int
}

// Pipe is a scrolling obstacle: a lower bar of randomized height, a gap of
// fixed clearance above it, and an upper bar reaching the top of the world.
//
// The Scrollable's height is the lower bar's height. Both bar shapes are kept
// in pipe-local coordinates and only recomputed on reset; BarLower/BarUpper
// translate them by the current position.
type Pipe struct {
	Scrollable

	ceiling     float32 // world height, top of the upper bar
	verticalGap float32
	minHeight   int
	heightRange int
	scored      bool

	barLower core.Box
	barUpper core.Box
}

func newPipe(x, y float32, width, height int, scrollSpeed, ceiling, verticalGap float32, minHeight, heightRange int) Pipe {
	p := Pipe{
		Scrollable:  newScrollable(x, y, width, height, scrollSpeed),
		ceiling:     ceiling,
		verticalGap: verticalGap,
		minHeight:   minHeight,
		heightRange: heightRange,
	}
	p.updateBars()
	return p
}

// Reset recycles the pipe to newX with a fresh random height in
// [minHeight, minHeight+heightRange) and clears its scored flag.
func (p *Pipe) Reset(newX float32, rng RandSource) {
	p.Scrollable.Reset(newX)
	p.height = rng.Intn(p.heightRange) + p.minHeight
	p.scored = false
	p.updateBars()
}

// OnRestart restores the scroll velocity and resets the pipe.
func (p *Pipe) OnRestart(newX, scrollSpeed float32, rng RandSource) {
	p.velocity[0] = scrollSpeed
	p.Reset(newX, rng)
}

// updateBars derives both collision boxes from the current height.
func (p *Pipe) updateBars() {
	w := float32(p.width)
	lower := p.LowerBarHeight()
	upper := p.UpperBarHeight()

	p.barLower = core.BoxFromMin(0, 0, w, lower)
	p.barUpper = core.BoxFromMin(0, lower+p.verticalGap, w, upper)
}

// LowerBarHeight returns the height of the bar rising from the ground.
func (p *Pipe) LowerBarHeight() float32 {
	return float32(p.height)
}

// UpperBarHeight returns the height of the bar hanging from the top.
func (p *Pipe) UpperBarHeight() float32 {
	h := p.ceiling - (p.position.Y() + float32(p.height) + p.verticalGap)
	if h < 0 {
		return 0
	}
	return h
}

// GapBottom returns the world y where the opening starts.
func (p *Pipe) GapBottom() float32 {
	return p.position.Y() + float32(p.height)
}

// GapTop returns the world y where the opening ends.
func (p *Pipe) GapTop() float32 {
	return p.GapBottom() + p.verticalGap
}

// BarLower returns the lower bar's collision box in world coordinates.
func (p *Pipe) BarLower() core.Box {
	return p.translate(p.barLower)
}

// BarUpper returns the upper bar's collision box in world coordinates.
func (p *Pipe) BarUpper() core.Box {
	return p.translate(p.barUpper)
}

func (p *Pipe) translate(b core.Box) core.Box {
	return core.Box{Center: b.Center.Add(p.position), Half: b.Half}
}

// IsScored reports whether the bird already earned a point for this pipe.
func (p *Pipe) IsScored() bool { return p.scored }

// CenterX returns the horizontal center of the pipe.
func (p *Pipe) CenterX() float32 {
	return p.position.X() + float32(p.width)/2
}

// Collides reports whether the bird's bounding circle touches either bar.
// Only pipes that have reached the bird are tested.
func (p *Pipe) Collides(b *Bird) bool {
	if p.position.X() >= b.X()+b.Width() {
		return false
	}
	c := b.BoundingCircle()
	return core.Overlaps(c, p.BarLower()) || core.Overlaps(c, p.BarUpper())
}
