// Package audio synthesizes the game's sound cues with beep and plays them
// on the system speaker. Cues are generated on the fly, no assets required.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/zombiebird/internal/core"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Player plays the sound for a game event. Play must not block.
type Player interface {
	Play(e core.Event)
	Close()
}

// Nop is a silent Player.
type Nop struct{}

// Play discards the event.
func (Nop) Play(core.Event) {}

// Close does nothing.
func (Nop) Close() {}

// SoundManager mixes cues onto the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates an uninitialized manager at the given master volume (0..1).
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues the cue for e. Events without a cue are ignored.
func (sm *SoundManager) Play(e core.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	cue := Cue(e, SampleRate)
	if cue == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(newVolume(cue, sm.volume))
	speaker.Unlock()
	sm.logger.Debug("cue", "event", e)
}

// Close silences all cues. The speaker itself stays open for the process.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Open returns a speaker-backed Player, or Nop when muted or when the audio
// device cannot be opened.
func Open(muted bool, volume float64, logger *log.Logger) Player {
	if muted {
		return Nop{}
	}

	sm := NewSoundManager(volume, logger)
	if err := sm.Initialize(); err != nil {
		sm.logger.Warn("audio disabled", "err", err)
		return Nop{}
	}
	return sm
}
