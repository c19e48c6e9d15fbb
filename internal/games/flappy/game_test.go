package flappy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.ResetWithConfig(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}, config.DefaultFlappyConfig())
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// flapEvery flaps on every n-th tick to keep the bird in the air for a while.
func flapEvery(n, tick int) core.InputFrame {
	if tick%n == 0 {
		return frameWith(core.ActionJump)
	}
	return core.NewInputFrame()
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	for i := 0; i < 1500; i++ {
		in := flapEvery(22, i)
		r1 := g1.Step(in)
		r2 := g2.Step(in)
		require.Equal(t, r1, r2, "tick %d", i)
	}

	w1, w2 := g1.World(), g2.World()
	assert.Equal(t, w1.Bird().Position(), w2.Bird().Position())
	for i := 0; i < 3; i++ {
		assert.Equal(t, w1.Scroller().Pipe(i).Height(), w2.Scroller().Pipe(i).Height())
		assert.Equal(t, w1.Scroller().Pipe(i).X(), w2.Scroller().Pipe(i).X())
	}
}

func TestStepEvents(t *testing.T) {
	g := newTestGame(1)

	r := g.Step(frameWith(core.ActionJump))
	assert.True(t, r.Has(core.EventFlap))
	assert.Equal(t, StateRunning, g.World().State())
	assert.Equal(t, 1, g.Ticks())

	var sawDeath, sawOver bool
	for i := 0; i < 600 && !g.State().GameOver; i++ {
		r = g.Step(core.NewInputFrame())
		sawDeath = sawDeath || r.Has(core.EventDeath)
		sawOver = sawOver || r.Has(core.EventGameOver)
	}
	require.True(t, g.State().GameOver)
	assert.True(t, sawDeath)
	assert.True(t, sawOver)
	assert.Equal(t, 1, g.State().Runs)

	r = g.Step(frameWith(core.ActionRestart))
	assert.True(t, r.Has(core.EventRestart))
	assert.False(t, r.Has(core.EventFlap))
	assert.False(t, r.State.GameOver)
	assert.Equal(t, 0, r.State.Score)
	assert.Equal(t, StateReady, g.World().State())
}

func TestRestartKeyIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(1)
	g.Step(frameWith(core.ActionJump))

	r := g.Step(frameWith(core.ActionRestart))
	assert.False(t, r.Has(core.EventRestart))
	assert.False(t, r.Has(core.EventFlap))
	assert.Equal(t, StateRunning, g.World().State())
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(1)
	g.Step(frameWith(core.ActionJump))

	r := g.Step(frameWith(core.ActionPause))
	require.True(t, r.State.Paused)
	ticks := g.Ticks()
	pos := g.World().Bird().Position()

	for i := 0; i < 30; i++ {
		g.Step(frameWith(core.ActionJump))
	}
	assert.Equal(t, ticks, g.Ticks())
	assert.Equal(t, pos, g.World().Bird().Position())

	r = g.Step(frameWith(core.ActionPause))
	assert.False(t, r.State.Paused)
	assert.Equal(t, ticks+1, g.Ticks())
}

func TestPauseIgnoredAfterGameOver(t *testing.T) {
	g := newTestGame(1)
	g.Step(frameWith(core.ActionJump))
	for i := 0; i < 600 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	require.True(t, g.State().GameOver)

	r := g.Step(frameWith(core.ActionPause))
	assert.False(t, r.State.Paused)
}

func TestGameMetadata(t *testing.T) {
	g := New()
	assert.Equal(t, "flappy", g.ID())
	assert.Equal(t, "Zombie Bird", g.Title())
}

func TestResetUsesDefaultConfig(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}

	g := New()
	g.Reset(rt)
	want := newTestGame(9)

	require.NotNil(t, g.World())
	assert.Equal(t, StateReady, g.World().State())
	assert.Equal(t, float32(97), g.World().Bird().Y())
	for i := 0; i < 3; i++ {
		assert.Equal(t, want.World().Scroller().Pipe(i).X(), g.World().Scroller().Pipe(i).X())
		assert.Equal(t, want.World().Scroller().Pipe(i).LowerBarHeight(), g.World().Scroller().Pipe(i).LowerBarHeight())
	}
}

func TestRenderReady(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Press SPACE to flap")
	assert.True(t, strings.ContainsRune(out, '→'), "bird should be drawn level")
	assert.Contains(t, screen.Row(23), string(DirtChar))
	assert.Contains(t, screen.Row(20), string(GrassChar))
	assert.Contains(t, screen.Row(0), " 0 ")
}

func TestRenderGameOverAndPause(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)

	g.Step(frameWith(core.ActionJump))
	g.Step(frameWith(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	g.Step(frameWith(core.ActionPause))
	for i := 0; i < 600 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.True(t, strings.ContainsRune(out, BirdDeadChar))
}

func TestBirdGlyph(t *testing.T) {
	assert.Equal(t, '↗', BirdGlyph(20))
	assert.Equal(t, '→', BirdGlyph(0))
	assert.Equal(t, '↘', BirdGlyph(-45))
	assert.Equal(t, '↓', BirdGlyph(-90))
}
