package flappy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/zombiebird/internal/config"
)

const tick = float32(1.0 / 60.0)

func newTestBird(y float32) Bird {
	cfg := config.DefaultFlappyConfig()
	return NewBird(cfg.Bird, y, cfg.World.Height)
}

func TestBirdFlap(t *testing.T) {
	b := newTestBird(97)

	require.True(t, b.UpdateRunning(true, tick))
	assert.InDelta(t, 140-460*tick, b.Velocity().Y(), 1e-3)
	assert.Greater(t, b.Y(), float32(97))
	assert.InDelta(t, 600*tick, b.Rotation(), 1e-3, "rising tilts the nose up")
}

func TestBirdTerminalVelocity(t *testing.T) {
	b := newTestBird(150)

	for i := 0; i < 26; i++ {
		b.UpdateRunning(false, tick)
	}
	assert.Greater(t, b.Velocity().Y(), float32(-200))

	b.UpdateRunning(false, tick)
	assert.Equal(t, float32(-200), b.Velocity().Y())

	for i := 0; i < 30; i++ {
		b.UpdateRunning(false, tick)
		require.GreaterOrEqual(t, b.Velocity().Y(), float32(-200))
	}
}

func TestBirdRotationBounds(t *testing.T) {
	b := newTestBird(97)

	for i := 0; i < 10; i++ {
		b.UpdateRunning(true, tick)
		require.LessOrEqual(t, b.Rotation(), float32(20))
	}
	assert.Equal(t, float32(20), b.Rotation())

	for i := 0; i < 120; i++ {
		b.UpdateRunning(false, tick)
		require.GreaterOrEqual(t, b.Rotation(), float32(-90))
	}
	assert.Equal(t, float32(-90), b.Rotation())
	assert.True(t, b.IsFalling())
}

func TestBirdCeilingClamp(t *testing.T) {
	b := newTestBird(300)

	b.UpdateRunning(false, tick)
	assert.Equal(t, float32(204+6.5), b.Y())
	assert.Equal(t, float32(0), b.Velocity().Y())
}

func TestBirdDie(t *testing.T) {
	b := newTestBird(97)
	b.UpdateRunning(true, tick)

	b.Die()
	assert.False(t, b.IsAlive())
	assert.Equal(t, float32(0), b.Velocity().Y())

	// A dead bird cannot flap and only tilts down
	assert.False(t, b.UpdateRunning(true, tick))
	assert.Less(t, b.Velocity().Y(), float32(0))
	assert.Less(t, b.Rotation(), 600*tick)

	b.Decelerate()
	b.Die()
	y := b.Y()
	b.UpdateRunning(false, tick)
	assert.Equal(t, float32(0), b.Acceleration().Y())
	assert.Equal(t, float32(0), b.Velocity().Y())
	assert.Equal(t, y, b.Y())
}

func TestBirdOnRestart(t *testing.T) {
	b := newTestBird(97)
	for i := 0; i < 30; i++ {
		b.UpdateRunning(false, tick)
	}
	b.Die()
	b.Decelerate()

	b.OnRestart(97)
	assert.True(t, b.IsAlive())
	assert.Equal(t, float32(97), b.Y())
	assert.Equal(t, float32(33), b.X())
	assert.Equal(t, float32(0), b.Rotation())
	assert.Equal(t, float32(0), b.Velocity().Y())
	assert.Equal(t, float32(-460), b.Acceleration().Y())
}

func TestBirdBob(t *testing.T) {
	b := newTestBird(97)

	b.UpdateReady(0)
	assert.InDelta(t, 97, b.Y(), 1e-4)

	b.UpdateReady(float32(math.Pi / 14))
	assert.InDelta(t, 99, b.Y(), 1e-3)

	b.UpdateReady(float32(3 * math.Pi / 14))
	assert.InDelta(t, 95, b.Y(), 1e-3)
	assert.Equal(t, float32(97), b.OriginalY())
}

func TestBirdBoundingCircle(t *testing.T) {
	b := newTestBird(97)
	c := b.BoundingCircle()

	assert.Equal(t, float32(42), c.Center.X())
	assert.Equal(t, float32(103), c.Center.Y())
	assert.Equal(t, float32(6.5), c.Radius)
}
