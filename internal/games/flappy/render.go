package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GrassChar     = '▓'
	DirtChar      = '░'
	BirdDeadChar  = 'x'
)

// Renderer maps the y-up world onto a terminal screen. The world is scaled
// independently on each axis to fill the screen.
type Renderer struct {
	worldW float32
	worldH float32
}

// NewRenderer creates a renderer for the given world dimensions.
func NewRenderer(cfg config.FlappyConfig) Renderer {
	return Renderer{worldW: cfg.World.Width, worldH: cfg.World.Height}
}

// view holds the per-frame scale factors.
type view struct {
	w, h   int
	sx, sy float32
}

func (r Renderer) view(dst *core.Screen) view {
	return view{
		w:  dst.Width(),
		h:  dst.Height(),
		sx: float32(dst.Width()) / r.worldW,
		sy: float32(dst.Height()) / r.worldH,
	}
}

// cellX converts a world x to a column.
func (v view) cellX(x float32) int {
	return int(math.Floor(float64(x * v.sx)))
}

// cellY converts a world y to a row (row 0 is the top of the world).
func (v view) cellY(y float32) int {
	return v.h - 1 - int(math.Floor(float64(y*v.sy)))
}

// rect converts the world-space box [x0,x1]x[y0,y1] to the covering cells.
func (v view) rect(x0, y0, x1, y1 float32) core.Rect {
	left := int(math.Floor(float64(x0 * v.sx)))
	right := int(math.Ceil(float64(x1 * v.sx)))
	top := v.h - int(math.Ceil(float64(y1*v.sy)))
	bottom := v.h - int(math.Floor(float64(y0*v.sy)))
	return core.NewRect(left, top, right-left, bottom-top)
}

// Render draws one frame of the world.
func (r Renderer) Render(dst *core.Screen, w *World, paused bool) {
	dst.Clear()
	v := r.view(dst)

	s := w.Scroller()
	ground := w.Ground()

	// Dirt under the grass strip
	dst.FillRect(v.rect(0, 0, r.worldW, ground.Min().Y()), DirtChar, core.ColorBrown)

	for _, g := range []*Grass{s.FrontGrass(), s.BackGrass()} {
		dst.FillRect(v.rect(g.X(), g.Y(), g.TailX(), g.Y()+float32(g.Height())), GrassChar, core.ColorGreen)
	}

	for _, p := range s.Pipes() {
		r.drawPipe(dst, v, p)
	}

	r.drawBird(dst, v, w.Bird())
	r.drawHUD(dst, w, paused)
}

func (r Renderer) drawPipe(dst *core.Screen, v view, p *Pipe) {
	lower := v.rect(p.X(), p.Y(), p.TailX(), p.GapBottom())
	upper := v.rect(p.X(), p.GapTop(), p.TailX(), r.worldH)

	dst.FillRect(lower, PipeChar, core.ColorBrightGreen)
	dst.FillRect(upper, PipeChar, core.ColorBrightGreen)

	// Caps face the gap
	if lower.H > 0 {
		dst.FillRect(core.NewRect(lower.X, lower.Y, lower.W, 1), PipeCapTop, core.ColorGreen)
	}
	if upper.H > 0 {
		dst.FillRect(core.NewRect(upper.X, upper.Bottom()-1, upper.W, 1), PipeCapBottom, core.ColorGreen)
	}
}

func (r Renderer) drawBird(dst *core.Screen, v view, b *Bird) {
	c := b.BoundingCircle().Center
	x, y := v.cellX(c.X()), v.cellY(c.Y())

	if !b.IsAlive() {
		dst.SetColored(x, y, BirdDeadChar, core.ColorRed)
		return
	}
	dst.SetColored(x-1, y, '<', core.ColorYellow)
	dst.SetColored(x, y, BirdGlyph(b.Rotation()), core.ColorBrightYellow)
}

// BirdGlyph picks an arrow matching the bird's tilt in degrees.
func BirdGlyph(rotation float32) rune {
	switch {
	case rotation > 5:
		return '↗'
	case rotation > -30:
		return '→'
	case rotation > -70:
		return '↘'
	default:
		return '↓'
	}
}

func (r Renderer) drawHUD(dst *core.Screen, w *World, paused bool) {
	dst.DrawTextCentered(0, fmt.Sprintf(" %d ", w.Score()), core.ColorBrightWhite)

	switch w.Phase() {
	case PhaseReady:
		dst.DrawTextCentered(dst.Height()/3, "Press SPACE to flap", core.ColorBrightCyan)
	case PhaseOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to retry", w.Score()))
	}

	if paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
