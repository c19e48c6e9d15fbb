package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/zombiebird/internal/config"
)

// soundLog records every cue the world plays.
type soundLog []Sound

func (l *soundLog) Play(s Sound) { *l = append(*l, s) }

func newTestWorld(t *testing.T) (*World, *soundLog) {
	t.Helper()
	w := NewWorld(config.DefaultFlappyConfig(), rand.New(rand.NewSource(1)))
	sounds := &soundLog{}
	w.SetSoundPlayer(sounds)
	return w, sounds
}

// runUntil steps the world without input until cond holds or the limit is hit.
func runUntil(w *World, limit int, cond func() bool) bool {
	for i := 0; i < limit; i++ {
		if cond() {
			return true
		}
		w.Update(Input{}, tick)
	}
	return cond()
}

func TestWorldStartsReady(t *testing.T) {
	w, _ := newTestWorld(t)

	assert.Equal(t, StateReady, w.State())
	assert.Equal(t, PhaseReady, w.Phase())
	assert.Equal(t, 0, w.Score())
	assert.Equal(t, float32(102), w.MidPointY())
	assert.Equal(t, float32(97), w.Bird().Y())
	assert.InDelta(t, 36, w.Ground().Max().Y(), 1e-4)
	assert.InDelta(t, 25, w.Ground().Min().Y(), 1e-4)
}

func TestWorldReadyBobsAndScrollsGround(t *testing.T) {
	w, sounds := newTestWorld(t)

	for i := 0; i < 30; i++ {
		w.Update(Input{}, tick)
		require.InDelta(t, 97, w.Bird().Y(), 2.001)
	}

	assert.Equal(t, StateReady, w.State())
	assert.Less(t, w.Scroller().FrontGrass().X(), float32(0))
	assert.Equal(t, float32(210), w.Scroller().Pipe(0).X(), "pipes wait for the run")
	assert.InDelta(t, 0.5, w.RunTime(), 1e-4)
	assert.Empty(t, *sounds)
}

func TestWorldFlapStartsRun(t *testing.T) {
	w, sounds := newTestWorld(t)

	w.Update(Input{Flap: true}, tick)

	assert.Equal(t, StateRunning, w.State())
	assert.Equal(t, PhaseFlying, w.Phase())
	assert.InDelta(t, 140-460*tick, w.Bird().Velocity().Y(), 1e-3)
	assert.Less(t, w.Scroller().Pipe(0).X(), float32(210))
	assert.Equal(t, soundLog{SoundFlap}, *sounds)
}

func TestWorldClampsFrameDelta(t *testing.T) {
	w, _ := newTestWorld(t)

	w.Update(Input{Flap: true}, 1.0)

	assert.InDelta(t, 210-59*0.15, w.Scroller().Pipe(0).X(), 1e-3)
	assert.InDelta(t, 1.0, w.RunTime(), 1e-6)
}

func TestWorldScoresPipe(t *testing.T) {
	w, sounds := newTestWorld(t)
	w.scroller.pipes[0].position[0] = 35

	w.Update(Input{Flap: true}, tick)
	assert.Equal(t, 1, w.Score())
	assert.Equal(t, soundLog{SoundFlap, SoundScore}, *sounds)

	w.Update(Input{}, tick)
	assert.Equal(t, 1, w.Score(), "a pipe scores once")
	assert.True(t, w.Bird().IsAlive())
}

func TestWorldGroundHitEndsRun(t *testing.T) {
	w, sounds := newTestWorld(t)

	w.Update(Input{Flap: true}, tick)
	require.True(t, runUntil(w, 600, func() bool { return w.State() == StateGameOver }))

	b := w.Bird()
	assert.Equal(t, PhaseOver, w.Phase())
	assert.False(t, b.IsAlive())
	assert.Equal(t, float32(0), b.Acceleration().Y())
	assert.Equal(t, float32(0), b.Velocity().Y())
	assert.Equal(t, float32(0), w.Scroller().Pipe(0).Velocity().X())
	assert.Equal(t, soundLog{SoundFlap, SoundDeath}, *sounds)

	y := b.Y()
	x := w.Scroller().Pipe(0).X()
	w.Update(Input{}, tick)
	assert.Equal(t, StateGameOver, w.State())
	assert.Equal(t, y, b.Y())
	assert.Equal(t, x, w.Scroller().Pipe(0).X())
}

func TestWorldPipeHitKillsButKeepsRunning(t *testing.T) {
	w, sounds := newTestWorld(t)
	w.scroller.pipes[0].position[0] = 40
	w.bird.position[1] = 60

	w.Update(Input{Flap: true}, tick)

	assert.Equal(t, StateRunning, w.State())
	assert.Equal(t, PhaseDying, w.Phase())
	assert.False(t, w.Bird().IsAlive())
	assert.Equal(t, float32(0), w.Scroller().Pipe(0).Velocity().X())
	assert.Equal(t, soundLog{SoundFlap, SoundDeath}, *sounds)

	// Flapping does nothing while the bird falls to the ground
	w.Update(Input{Flap: true}, tick)
	assert.Less(t, w.Bird().Velocity().Y(), float32(0))

	require.True(t, runUntil(w, 600, func() bool { return w.State() == StateGameOver }))
	assert.Equal(t, soundLog{SoundFlap, SoundDeath}, *sounds, "death plays once")
	assert.Equal(t, 0, w.Score())
}

func TestWorldRestartFromGameOver(t *testing.T) {
	w, sounds := newTestWorld(t)
	w.scroller.pipes[0].position[0] = 35

	w.Update(Input{Flap: true}, tick)
	require.Equal(t, 1, w.Score())
	require.True(t, runUntil(w, 600, func() bool { return w.State() == StateGameOver }))
	heard := len(*sounds)

	w.Update(Input{Flap: true}, tick)

	assert.Equal(t, StateReady, w.State())
	assert.Equal(t, 0, w.Score())
	assert.Len(t, *sounds, heard, "the restart flap is consumed")

	b := w.Bird()
	assert.True(t, b.IsAlive())
	assert.Equal(t, float32(97), b.OriginalY())
	assert.Equal(t, float32(97), b.Y())
	assert.Equal(t, float32(0), b.Velocity().Y())
	assert.Equal(t, float32(0), b.Rotation())
	assert.Equal(t, float32(-460), b.Acceleration().Y())

	s := w.Scroller()
	assert.Equal(t, float32(210), s.Pipe(0).X())
	assert.Equal(t, float32(281), s.Pipe(1).X())
	assert.Equal(t, float32(352), s.Pipe(2).X())
	assert.False(t, s.Pipe(0).IsScored())
	assert.Equal(t, float32(0), s.FrontGrass().X())
	assert.Equal(t, s.FrontGrass().TailX(), s.BackGrass().X())

	// The next flap starts a fresh run
	w.Update(Input{Flap: true}, tick)
	assert.Equal(t, StateRunning, w.State())
	assert.True(t, w.Bird().IsAlive())
}

func TestWorldHighScoreIgnoresInput(t *testing.T) {
	w, sounds := newTestWorld(t)
	w.state = StateHighScore

	w.Update(Input{Flap: true}, tick)

	assert.Equal(t, StateHighScore, w.State())
	assert.Equal(t, PhaseOver, w.Phase())
	assert.Empty(t, *sounds)
}

func TestWorldMenuBehavesLikeReady(t *testing.T) {
	w, _ := newTestWorld(t)
	w.state = StateMenu

	w.Update(Input{}, tick)
	assert.Equal(t, StateMenu, w.State())
	assert.Equal(t, PhaseReady, w.Phase())

	w.Update(Input{Flap: true}, tick)
	assert.Equal(t, StateRunning, w.State())
}

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "game_over", StateGameOver.String())
	assert.Equal(t, "unknown", GameState(42).String())
}
