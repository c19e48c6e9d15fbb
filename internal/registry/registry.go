// Package registry maps game IDs to factories. Games register themselves in
// init(); the CLI and the replay verifier look them up by the ID stored on
// the command line or in a recording.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/zombiebird/internal/core"
)

// Game is a deterministic fixed-tick simulation.
// Implementations must not depend on Bubble Tea; the platform handles
// timing, input mapping and drawing the screen buffer.
type Game interface {
	// ID returns a unique identifier ("flappy"). Stored with every replay.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset rebuilds the game from scratch. Two games reset with the same
	// RuntimeConfig and fed the same inputs stay identical.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of cfg.TickDelta() seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current score, pause and game over status.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
