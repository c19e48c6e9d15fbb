// Package flappy implements Zombie Bird, a Flappy Bird-style game.
// The player flaps a bird through gaps between scrolling pipes.
//
// World holds the simulation; Game adapts it to the platform's fixed-tick
// Game interface and terminal renderer.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
	"github.com/vovakirdan/zombiebird/internal/registry"
)

// GameID is the registry identifier of this game.
const GameID = "flappy"

// Game implements registry.Game on top of World.
type Game struct {
	world     *World
	cfg       config.FlappyConfig
	runtime   core.RuntimeConfig
	paused    bool
	tickCount int
	runs      int
	events    []core.Event // Events raised during the current Step
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Zombie Bird"
}

// Reset initializes the world from the default configuration and the
// runtime seed. Callers holding a loaded configuration use ResetWithConfig.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.ResetWithConfig(runtime, config.DefaultFlappyConfig())
}

// ResetWithConfig initializes the world from an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.FlappyConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.world = NewWorld(cfg, rand.New(rand.NewSource(runtime.Seed)))
	g.world.SetSoundPlayer(g)
	g.paused = false
	g.tickCount = 0
	g.runs = 0
	g.events = nil
}

// Play collects world sound cues as platform events.
func (g *Game) Play(s Sound) {
	switch s {
	case SoundFlap:
		g.events = append(g.events, core.EventFlap)
	case SoundScore:
		g.events = append(g.events, core.EventScore)
	case SoundDeath:
		g.events = append(g.events, core.EventDeath)
	}
}

// Step advances the world by one fixed tick of 1/TickRate seconds.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionPause) && g.world.State() != StateGameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	before := g.world.State()
	flap := in.Has(core.ActionJump) || (before == StateGameOver && in.Has(core.ActionRestart))
	g.world.Update(Input{Flap: flap}, g.runtime.TickDelta())
	after := g.world.State()

	switch {
	case before != StateGameOver && after == StateGameOver:
		g.runs++
		g.events = append(g.events, core.EventGameOver)
	case before == StateGameOver && after != StateGameOver:
		g.events = append(g.events, core.EventRestart)
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.State() == StateGameOver,
		Paused:   g.paused,
		Runs:     g.runs,
	}
}

// Ticks returns the number of simulated ticks since Reset.
func (g *Game) Ticks() int {
	return g.tickCount
}

// World exposes the simulation for rendering and inspection.
func (g *Game) World() *World {
	return g.world
}

// Render draws the current world to the screen.
func (g *Game) Render(dst *core.Screen) {
	NewRenderer(g.cfg).Render(dst, g.world, g.paused)
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
