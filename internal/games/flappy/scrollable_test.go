package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollableMovesLeft(t *testing.T) {
	s := newScrollable(10, 0, 20, 5, -59)

	s.Update(0.1)
	assert.InDelta(t, 4.1, s.X(), 1e-4)
	assert.InDelta(t, 0, s.Y(), 1e-6, "scrolling is horizontal only")
	assert.InDelta(t, 24.1, s.TailX(), 1e-4)
	assert.False(t, s.ScrolledLeft())
}

func TestScrollableScrolledLeftOnlyWhenTailPasses(t *testing.T) {
	s := newScrollable(0, 0, 20, 5, -59)

	// Head past the edge, tail still visible
	s.Update(0.2)
	require.Less(t, s.X(), float32(0))
	assert.False(t, s.ScrolledLeft())

	s.Update(0.2)
	require.Less(t, s.TailX(), float32(0))
	assert.True(t, s.ScrolledLeft())

	s.Reset(50)
	assert.False(t, s.ScrolledLeft())
	assert.Equal(t, float32(50), s.X())
}

func TestScrollableStopAndRestart(t *testing.T) {
	s := newScrollable(30, 0, 10, 5, -59)

	s.Stop()
	s.Update(1)
	assert.Equal(t, float32(30), s.X())
	assert.Equal(t, float32(0), s.Velocity().X())

	s.OnRestart(100, -59)
	assert.Equal(t, float32(100), s.X())
	assert.Equal(t, float32(-59), s.Velocity().X())

	s.Update(1)
	assert.InDelta(t, 41, s.X(), 1e-4)
}
