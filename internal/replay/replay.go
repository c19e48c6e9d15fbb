// Package replay records the input frames of a play session and feeds them
// back into a fresh game. The simulation is deterministic for a given seed,
// tick rate and world config, so a recording reproduces every run exactly.
package replay

import (
	"errors"
	"time"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
)

// ErrNoFrames is returned when a recording has no ticks to play.
var ErrNoFrames = errors.New("replay: recording has no frames")

// Input is one action pressed during step Tick (0-based, counted per Step call).
type Input struct {
	Tick   int
	Action core.Action
}

// Run is the outcome of one finished run.
type Run struct {
	Score   int
	EndTick int // step on which the game ended
}

// Replay is a complete recording.
type Replay struct {
	ID         int64
	GameID     string
	Seed       int64
	TickRate   int
	TotalTicks int
	Config     config.FlappyConfig
	CreatedAt  time.Time
	Inputs     []Input
	Runs       []Run
}

// Runtime returns the runtime config the recording was made with.
func (r Replay) Runtime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = r.Seed
	rt.TickRate = r.TickRate
	return rt
}

// Duration returns the wall-clock length of the recording.
func (r Replay) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.TotalTicks) * time.Second / time.Duration(r.TickRate)
}

// BestScore returns the highest score among finished runs.
func (r Replay) BestScore() int {
	best := 0
	for _, run := range r.Runs {
		best = max(best, run.Score)
	}
	return best
}

// Recorder captures a session step by step.
type Recorder struct {
	rec  Replay
	tick int
}

// NewRecorder starts a recording for gameID with the given runtime and world config.
func NewRecorder(gameID string, rt core.RuntimeConfig, cfg config.FlappyConfig) *Recorder {
	return &Recorder{
		rec: Replay{
			GameID:   gameID,
			Seed:     rt.Seed,
			TickRate: rt.TickRate,
			Config:   cfg,
		},
	}
}

// Record stores the input fed to one Step call and its result.
// Quit is a platform action and is not recorded.
func (r *Recorder) Record(in core.InputFrame, res core.StepResult) {
	for _, a := range in.List() {
		if a == core.ActionQuit || a == core.ActionNone {
			continue
		}
		r.rec.Inputs = append(r.rec.Inputs, Input{Tick: r.tick, Action: a})
	}

	if res.Has(core.EventGameOver) {
		r.rec.Runs = append(r.rec.Runs, Run{Score: res.State.Score, EndTick: r.tick})
	}
	r.tick++
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() int {
	return r.tick
}

// Finish returns the recording. The recorder can keep recording afterwards.
func (r *Recorder) Finish() Replay {
	out := r.rec
	out.TotalTicks = r.tick
	out.CreatedAt = time.Now()
	out.Inputs = append([]Input(nil), r.rec.Inputs...)
	out.Runs = append([]Run(nil), r.rec.Runs...)
	return out
}

// Replayer yields the recorded input frame for each step.
type Replayer struct {
	rec  Replay
	tick int
	next int // index into rec.Inputs
}

// NewReplayer creates a replayer positioned at the first step.
func NewReplayer(r Replay) *Replayer {
	return &Replayer{rec: r}
}

// Next returns the input for the current step and advances.
// ok is false once every recorded step has been returned.
func (p *Replayer) Next() (core.InputFrame, bool) {
	if p.tick >= p.rec.TotalTicks {
		return core.InputFrame{}, false
	}

	frame := core.NewInputFrame()
	for p.next < len(p.rec.Inputs) && p.rec.Inputs[p.next].Tick <= p.tick {
		if p.rec.Inputs[p.next].Tick == p.tick {
			frame.Set(p.rec.Inputs[p.next].Action)
		}
		p.next++
	}
	p.tick++
	return frame, true
}

// Tick returns the index of the next step to be returned.
func (p *Replayer) Tick() int {
	return p.tick
}

// Done reports whether the recording is exhausted.
func (p *Replayer) Done() bool {
	return p.tick >= p.rec.TotalTicks
}

// Replay returns the recording being played.
func (p *Replayer) Replay() Replay {
	return p.rec
}
