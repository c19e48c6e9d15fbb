package flappy

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
)

// GameState is the top-level state of the world.
type GameState int

const (
	StateMenu GameState = iota
	StateReady
	StateRunning
	StateGameOver
	StateHighScore // never entered; high scores are not tracked
)

// String returns a human-readable name for the state.
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// Phase folds the game state and the bird's life into one value, so callers
// never have to combine StateRunning with IsAlive themselves.
type Phase int

const (
	PhaseReady  Phase = iota // Menu or Ready: idle bob, waiting for a flap
	PhaseFlying              // Running with a live bird
	PhaseDying               // Running, bird hit a pipe and is falling to the ground
	PhaseOver                // GameOver (or HighScore)
)

// Sound identifies an audio cue raised by the world.
type Sound int

const (
	SoundFlap Sound = iota
	SoundScore
	SoundDeath
)

// SoundPlayer receives audio cues. Play must not block.
type SoundPlayer interface {
	Play(s Sound)
}

type nopSounds struct{}

func (nopSounds) Play(Sound) {}

// Input is the per-frame input, edge-triggered.
type Input struct {
	Flap bool
}

// World is the game's state machine. It owns the bird, the scrolling
// obstacles and the ground, and decides every state transition.
type World struct {
	state   GameState
	score   int
	runTime float32

	midPointY float32
	maxDT     float32

	bird     Bird
	scroller ScrollHandler
	ground   core.Box

	sounds SoundPlayer
}

// NewWorld builds a world in the Ready state.
func NewWorld(cfg config.FlappyConfig, rng RandSource) *World {
	mid := cfg.World.MidPointY()
	groundY := cfg.GroundY()
	grassH := float32(cfg.Scroll.GrassHeight)

	return &World{
		state:     StateReady,
		midPointY: mid,
		maxDT:     cfg.World.MaxFrameDT,
		bird:      NewBird(cfg.Bird, startHeight(mid), cfg.World.Height),
		scroller:  NewScrollHandler(cfg, rng),
		ground: core.Box{
			Center: mgl32.Vec2{cfg.World.Width / 2, groundY + grassH/2},
			Half:   mgl32.Vec2{cfg.World.Width / 2, grassH / 2},
		},
		sounds: nopSounds{},
	}
}

func startHeight(midPointY float32) float32 {
	return midPointY - 5
}

// SetSoundPlayer routes audio cues to p. A nil player mutes the world.
func (w *World) SetSoundPlayer(p SoundPlayer) {
	if p == nil {
		p = nopSounds{}
	}
	w.sounds = p
}

// Update advances the world by dt seconds.
//
// A flap starts the run from Menu/Ready (and flaps the bird in the same
// frame), or restarts the world from GameOver. The restarting frame only
// resets the world. HighScore ignores input.
func (w *World) Update(in Input, dt float32) {
	w.runTime += dt

	switch w.state {
	case StateMenu, StateReady:
		if in.Flap {
			w.state = StateRunning
		}
	case StateGameOver:
		if in.Flap {
			w.restart()
			return
		}
	}

	switch w.state {
	case StateMenu, StateReady:
		w.updateReady(dt)
	case StateRunning:
		w.updateRunning(in, dt)
	}
}

func (w *World) updateReady(dt float32) {
	w.bird.UpdateReady(w.runTime)
	w.scroller.UpdateReady(dt)
}

func (w *World) updateRunning(in Input, dt float32) {
	if dt > w.maxDT {
		dt = w.maxDT
	}

	if w.bird.UpdateRunning(in.Flap, dt) {
		w.sounds.Play(SoundFlap)
	}
	w.scroller.UpdateRunning(dt)

	if w.scroller.Scored(&w.bird) {
		w.score++
		w.sounds.Play(SoundScore)
	}

	// Hitting a pipe kills the bird but the run continues until it lands
	if w.bird.IsAlive() && w.scroller.Collides(&w.bird) {
		w.scroller.Stop()
		w.bird.Die()
		w.sounds.Play(SoundDeath)
	}

	if core.Overlaps(w.bird.BoundingCircle(), w.ground) {
		if w.bird.IsAlive() {
			w.sounds.Play(SoundDeath)
		}
		w.scroller.Stop()
		w.bird.Die()
		w.bird.Decelerate()
		w.state = StateGameOver
	}
}

func (w *World) restart() {
	w.score = 0
	w.bird.OnRestart(startHeight(w.midPointY))
	w.scroller.OnRestart()
	w.state = StateReady
}

// State returns the current game state.
func (w *World) State() GameState { return w.state }

// Phase returns the combined state/bird lifecycle phase.
func (w *World) Phase() Phase {
	switch w.state {
	case StateMenu, StateReady:
		return PhaseReady
	case StateRunning:
		if w.bird.IsAlive() {
			return PhaseFlying
		}
		return PhaseDying
	default:
		return PhaseOver
	}
}

// Score returns the points earned in the current run.
func (w *World) Score() int { return w.score }

// RunTime returns the total simulated seconds.
func (w *World) RunTime() float32 { return w.runTime }

// MidPointY returns the vertical center of the world.
func (w *World) MidPointY() float32 { return w.midPointY }

// Bird returns the player.
func (w *World) Bird() *Bird { return &w.bird }

// Scroller returns the ground and pipe manager.
func (w *World) Scroller() *ScrollHandler { return &w.scroller }

// Ground returns the ground collision box.
func (w *World) Ground() core.Box { return w.ground }
