package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/zombiebird/internal/core"
)

const (
	flapDuration  = 90 * time.Millisecond
	scoreNote1    = 70 * time.Millisecond
	scoreNote2    = 140 * time.Millisecond
	deathDuration = 450 * time.Millisecond
	cueAttack     = 5 * time.Millisecond
)

// FlapCue is a short upward chirp.
func FlapCue(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(420, 780, flapDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, flapDuration, cueAttack, 60*time.Millisecond, rate), 0.35)
}

// ScoreCue is a two-note coin chime (B5 then E6).
func ScoreCue(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(987.77, scoreNote1, WaveSquare, rate)
	n2 := NewOscillator(1318.51, scoreNote2, WaveSquare, rate)

	return newVolume(beep.Seq(
		NewEnvelope(n1, scoreNote1, cueAttack, 20*time.Millisecond, rate),
		NewEnvelope(n2, scoreNote2, cueAttack, 110*time.Millisecond, rate),
	), 0.3)
}

// DeathCue is a falling saw buzz over a burst of noise.
func DeathCue(rate beep.SampleRate) beep.Streamer {
	buzz := NewSweep(220, 55, deathDuration, WaveSaw, rate)
	noise := NewOscillator(0, deathDuration/3, WaveNoise, rate)

	return beep.Mix(
		newVolume(NewEnvelope(buzz, deathDuration, cueAttack, 300*time.Millisecond, rate), 0.4),
		newVolume(NewEnvelope(noise, deathDuration/3, cueAttack, 100*time.Millisecond, rate), 0.2),
	)
}

// Cue returns the streamer for an event, or nil if the event is silent.
func Cue(e core.Event, rate beep.SampleRate) beep.Streamer {
	switch e {
	case core.EventFlap:
		return FlapCue(rate)
	case core.EventScore:
		return ScoreCue(rate)
	case core.EventDeath:
		return DeathCue(rate)
	default:
		return nil
	}
}
