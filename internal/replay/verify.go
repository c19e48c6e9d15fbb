package replay

import (
	"fmt"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
	"github.com/vovakirdan/zombiebird/internal/registry"
)

// configurable is implemented by games that accept an explicit world config.
type configurable interface {
	ResetWithConfig(rt core.RuntimeConfig, cfg config.FlappyConfig)
}

// Report compares the runs stored in a recording with a fresh re-simulation.
type Report struct {
	Expected []Run
	Actual   []Run
	Ticks    int
}

// OK reports whether the re-simulation reproduced every run.
func (r Report) OK() bool {
	if len(r.Expected) != len(r.Actual) {
		return false
	}
	for i := range r.Expected {
		if r.Expected[i] != r.Actual[i] {
			return false
		}
	}
	return true
}

// Mismatches describes each run that differs.
func (r Report) Mismatches() []string {
	var out []string
	for i := 0; i < max(len(r.Expected), len(r.Actual)); i++ {
		switch {
		case i >= len(r.Actual):
			out = append(out, fmt.Sprintf("run %d: recorded score %d, missing from re-run", i+1, r.Expected[i].Score))
		case i >= len(r.Expected):
			out = append(out, fmt.Sprintf("run %d: re-run scored %d, missing from recording", i+1, r.Actual[i].Score))
		case r.Expected[i] != r.Actual[i]:
			out = append(out, fmt.Sprintf("run %d: recorded score %d at tick %d, re-run score %d at tick %d",
				i+1, r.Expected[i].Score, r.Expected[i].EndTick, r.Actual[i].Score, r.Actual[i].EndTick))
		}
	}
	return out
}

// NewGame builds the recorded game, reset exactly as it was when recording.
func NewGame(r Replay) (registry.Game, error) {
	g, err := registry.Create(r.GameID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	if cg, ok := g.(configurable); ok {
		cg.ResetWithConfig(r.Runtime(), r.Config)
	} else {
		g.Reset(r.Runtime())
	}
	return g, nil
}

// Verify re-simulates the recording headless and reports the runs it produced.
func Verify(r Replay) (Report, error) {
	if r.TotalTicks == 0 {
		return Report{}, ErrNoFrames
	}

	g, err := NewGame(r)
	if err != nil {
		return Report{}, err
	}

	rec := NewRecorder(r.GameID, r.Runtime(), r.Config)
	player := NewReplayer(r)
	for {
		in, ok := player.Next()
		if !ok {
			break
		}
		rec.Record(in, g.Step(in))
	}

	return Report{
		Expected: r.Runs,
		Actual:   rec.rec.Runs,
		Ticks:    rec.Ticks(),
	}, nil
}
