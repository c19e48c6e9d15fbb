package flappy

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
)

// Bird is the player. It bobs in place while the world is Ready, falls under
// gravity and flaps while Running, and keeps tumbling after it dies.
//
// A dead bird cannot flap and its rotation only moves toward the minimum.
// Gravity keeps pulling it down until Decelerate is called on ground contact.
type Bird struct {
	position     mgl32.Vec2
	velocity     mgl32.Vec2
	acceleration mgl32.Vec2

	rotation  float32 // degrees, counterclockwise positive
	originalY float32
	ceiling   float32
	alive     bool

	cfg config.BirdConfig
}

// NewBird places a live bird at (cfg.X, y). ceiling is the world height.
func NewBird(cfg config.BirdConfig, y, ceiling float32) Bird {
	return Bird{
		position:     mgl32.Vec2{cfg.X, y},
		acceleration: mgl32.Vec2{0, cfg.Gravity},
		originalY:    y,
		ceiling:      ceiling,
		alive:        true,
		cfg:          cfg,
	}
}

// UpdateReady bobs the bird around its start height.
func (b *Bird) UpdateReady(runTime float32) {
	wave := math.Sin(float64(b.cfg.BobFrequency * runTime))
	b.position[1] = b.cfg.BobAmplitude*float32(wave) + b.originalY
}

// UpdateRunning integrates one physics step and reports whether the bird flapped.
func (b *Bird) UpdateRunning(flap bool, dt float32) bool {
	flapped := false
	if flap && b.alive {
		b.velocity[1] = b.cfg.FlapImpulse
		flapped = true
	}

	b.velocity = b.velocity.Add(b.acceleration.Mul(dt))

	if b.velocity.Y() < -b.cfg.MaxFallSpeed {
		b.velocity[1] = -b.cfg.MaxFallSpeed
	}

	if ceiling := b.ceiling + b.cfg.Radius; b.position.Y() > ceiling {
		b.position[1] = ceiling
		b.velocity[1] = 0
	}

	b.position = b.position.Add(b.velocity.Mul(dt))

	if b.velocity.Y() > 0 {
		b.rotation += b.cfg.RiseRotationSpeed * dt
		if b.rotation > b.cfg.MaxRotation {
			b.rotation = b.cfg.MaxRotation
		}
	}

	if b.IsFalling() || !b.alive {
		b.rotation -= b.cfg.FallRotationSpeed * dt
		if b.rotation < b.cfg.MinRotation {
			b.rotation = b.cfg.MinRotation
		}
	}

	return flapped
}

// IsFalling reports whether the bird is diving faster than the tilt threshold.
func (b *Bird) IsFalling() bool {
	return b.velocity.Y() < -b.cfg.FallingThreshold
}

// Die marks the bird dead and stops its vertical motion.
func (b *Bird) Die() {
	b.alive = false
	b.velocity[1] = 0
}

// Decelerate removes gravity once the bird lies on the ground.
func (b *Bird) Decelerate() {
	b.acceleration[1] = 0
}

// OnRestart revives the bird at height y with gravity restored.
func (b *Bird) OnRestart(y float32) {
	b.rotation = 0
	b.position[1] = y
	b.velocity = mgl32.Vec2{}
	b.acceleration = mgl32.Vec2{0, b.cfg.Gravity}
	b.alive = true
}

// BoundingCircle returns the collision circle in world coordinates.
func (b *Bird) BoundingCircle() core.Circle {
	return core.Circle{
		Center: b.position.Add(mgl32.Vec2{b.cfg.OffsetX, b.cfg.OffsetY}),
		Radius: b.cfg.Radius,
	}
}

// Position returns the bottom-left corner of the sprite.
func (b *Bird) Position() mgl32.Vec2 { return b.position }

// Velocity returns the current velocity.
func (b *Bird) Velocity() mgl32.Vec2 { return b.velocity }

// Acceleration returns the current acceleration.
func (b *Bird) Acceleration() mgl32.Vec2 { return b.acceleration }

// X returns the left edge.
func (b *Bird) X() float32 { return b.position.X() }

// Y returns the bottom edge.
func (b *Bird) Y() float32 { return b.position.Y() }

// Width returns the sprite width.
func (b *Bird) Width() float32 { return b.cfg.Width }

// Height returns the sprite height.
func (b *Bird) Height() float32 { return b.cfg.Height }

// Rotation returns the visual tilt in degrees.
func (b *Bird) Rotation() float32 { return b.rotation }

// IsAlive reports whether the bird can still flap.
func (b *Bird) IsAlive() bool { return b.alive }

// OriginalY returns the start height.
func (b *Bird) OriginalY() float32 { return b.originalY }
