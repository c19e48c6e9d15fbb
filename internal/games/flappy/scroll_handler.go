package flappy

import "github.com/vovakirdan/zombiebird/internal/config"

// ScrollHandler owns everything that scrolls: two ground tiles and a ring of
// three pipes. It advances them, recycles whatever leaves the screen to the
// back of its sequence, and answers scoring and collision queries.
type ScrollHandler struct {
	frontGrass Grass
	backGrass  Grass
	pipes      [3]Pipe

	speed   float32
	firstX  float32
	pipeGap float32
	rng     RandSource
}

// NewScrollHandler lays out the ground at cfg.GroundY() and the pipes on top
// of it. The rng drives every pipe height after the initial layout.
func NewScrollHandler(cfg config.FlappyConfig, rng RandSource) ScrollHandler {
	sc, pc := cfg.Scroll, cfg.Pipes
	groundY := cfg.GroundY()
	pipeY := cfg.PipeY()

	s := ScrollHandler{
		speed:   sc.Speed,
		firstX:  pc.FirstX,
		pipeGap: pc.Gap,
		rng:     rng,
	}

	s.frontGrass = newGrass(0, groundY, sc.GrassWidth, sc.GrassHeight, sc.Speed)
	s.backGrass = newGrass(s.frontGrass.TailX(), groundY, sc.GrassWidth, sc.GrassHeight, sc.Speed)

	x := pc.FirstX
	for i := range s.pipes {
		s.pipes[i] = newPipe(x, pipeY, pc.Width, pc.InitialHeights[i], sc.Speed,
			cfg.World.Height, pc.VerticalGap, pc.MinHeight, pc.HeightRange)
		x = s.pipes[i].TailX() + pc.Gap
	}

	return s
}

// UpdateReady scrolls the ground only.
func (s *ScrollHandler) UpdateReady(dt float32) {
	s.updateGrass(dt)
}

// UpdateRunning scrolls the ground and the pipes.
func (s *ScrollHandler) UpdateRunning(dt float32) {
	s.updateGrass(dt)
	s.updatePipes(dt)
}

func (s *ScrollHandler) updateGrass(dt float32) {
	s.frontGrass.Update(dt)
	s.backGrass.Update(dt)

	// At most one tile laps per tick at playable speeds
	if s.frontGrass.ScrolledLeft() {
		s.frontGrass.Reset(s.backGrass.TailX())
	} else if s.backGrass.ScrolledLeft() {
		s.backGrass.Reset(s.frontGrass.TailX())
	}
}

func (s *ScrollHandler) updatePipes(dt float32) {
	for i := range s.pipes {
		s.pipes[i].Update(dt)
	}

	// Each pipe follows the one before it in the ring; first match wins.
	for i := range s.pipes {
		if s.pipes[i].ScrolledLeft() {
			prev := &s.pipes[(i+len(s.pipes)-1)%len(s.pipes)]
			s.pipes[i].Reset(prev.TailX()+s.pipeGap, s.rng)
			break
		}
	}
}

// Scored marks the first unscored pipe whose center is left of the bird's
// right edge and reports whether one was found. One point per call at most.
func (s *ScrollHandler) Scored(b *Bird) bool {
	for i := range s.pipes {
		p := &s.pipes[i]
		if !p.scored && p.CenterX() < b.X()+b.Width() {
			p.scored = true
			return true
		}
	}
	return false
}

// Collides reports whether the bird touches any pipe bar.
func (s *ScrollHandler) Collides(b *Bird) bool {
	for i := range s.pipes {
		if s.pipes[i].Collides(b) {
			return true
		}
	}
	return false
}

// Stop freezes the ground and all pipes in place.
func (s *ScrollHandler) Stop() {
	s.frontGrass.Stop()
	s.backGrass.Stop()
	for i := range s.pipes {
		s.pipes[i].Stop()
	}
}

// OnRestart puts the ground and pipes back in their initial relative layout
// at the original scroll speed. Pipe heights are drawn fresh.
func (s *ScrollHandler) OnRestart() {
	s.frontGrass.OnRestart(0, s.speed)
	s.backGrass.OnRestart(s.frontGrass.TailX(), s.speed)

	x := s.firstX
	for i := range s.pipes {
		s.pipes[i].OnRestart(x, s.speed, s.rng)
		x = s.pipes[i].TailX() + s.pipeGap
	}
}

// FrontGrass returns the first ground tile.
func (s *ScrollHandler) FrontGrass() *Grass { return &s.frontGrass }

// BackGrass returns the second ground tile.
func (s *ScrollHandler) BackGrass() *Grass { return &s.backGrass }

// Pipe returns pipe i (0, 1 or 2) of the ring.
func (s *ScrollHandler) Pipe(i int) *Pipe { return &s.pipes[i] }

// Pipes returns the pipe ring in order.
func (s *ScrollHandler) Pipes() []*Pipe {
	return []*Pipe{&s.pipes[0], &s.pipes[1], &s.pipes[2]}
}
