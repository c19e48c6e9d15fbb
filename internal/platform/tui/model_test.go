package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/core"
	"github.com/vovakirdan/zombiebird/internal/games/flappy"
	"github.com/vovakirdan/zombiebird/internal/replay"
)

// eventLog is an audio.Player that remembers what it was asked to play.
type eventLog struct{ events []core.Event }

func (l *eventLog) Play(e core.Event) { l.events = append(l.events, e) }
func (l *eventLog) Close() {}

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func newTestModel(t *testing.T, opts Options) (Model, *flappy.Game) {
	t.Helper()

	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 5}
	g := flappy.New()
	g.ResetWithConfig(rt, config.DefaultFlappyConfig())

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = t.TempDir()
	}
	return NewModel(g, rt, opts), g
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space flaps", space(), core.ActionJump},
		{"up flaps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"r restarts", runeKey('r'), core.ActionRestart},
		{"p pauses", runeKey('p'), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"q quits", runeKey('q'), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x does nothing", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.msg))
		})
	}
}

func TestWatchKeyMapDisablesGameInput(t *testing.T) {
	km := WatchKeyMap()
	assert.Equal(t, core.ActionNone, km.Action(space()))
	assert.Equal(t, core.ActionPause, km.Action(runeKey('p')))
	assert.Equal(t, core.ActionQuit, km.Action(runeKey('q')))
}

func TestKeyPressAppliesOnNextTick(t *testing.T) {
	sounds := &eventLog{}
	rec := replay.NewRecorder(flappy.GameID, core.DefaultConfig(), config.DefaultFlappyConfig())
	m, g := newTestModel(t, Options{Audio: sounds, Recorder: rec})

	m, _ = update(t, m, space())
	assert.Equal(t, flappy.StateReady, g.World().State(), "input waits for the tick")

	m, cmd := update(t, m, TickMsg{})
	require.NotNil(t, cmd, "tick loop continues")
	assert.Equal(t, flappy.StateRunning, g.World().State())
	assert.Equal(t, []core.Event{core.EventFlap}, sounds.events)
	assert.True(t, m.inputFrame.Empty(), "input is cleared after the tick")

	m, _ = update(t, m, TickMsg{})
	r := rec.Finish()
	assert.Equal(t, 2, r.TotalTicks)
	assert.Equal(t, []replay.Input{{Tick: 0, Action: core.ActionJump}}, r.Inputs)
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := update(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestResizeKeepsGame(t *testing.T) {
	m, g := newTestModel(t, Options{})
	m, _ = update(t, m, space())
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height(), "one row is kept for the help footer")
	assert.Equal(t, flappy.StateRunning, g.World().State())
}

func TestViewShowsGameAndHelp(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	view := m.View()
	assert.Contains(t, view, "Press SPACE to flap")
	assert.Contains(t, view, "flap")
	assert.Contains(t, view, "quit")
}

func TestWatchModeReplaysInput(t *testing.T) {
	rec := replay.Replay{
		ID:         3,
		GameID:     flappy.GameID,
		TotalTicks: 2,
		Inputs:     []replay.Input{{Tick: 0, Action: core.ActionJump}},
	}
	m, g := newTestModel(t, Options{Replayer: replay.NewReplayer(rec)})

	// Live keys are ignored while watching
	m, _ = update(t, m, space())
	assert.True(t, m.inputFrame.Empty())

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, flappy.StateReady, g.World().State(), "held playback does not step")

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, flappy.StateRunning, g.World().State())

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, 2, g.Ticks(), "playback stops at the end of the recording")
	assert.Contains(t, m.View(), "replay finished")
	assert.Contains(t, m.View(), "REPLAY #3")
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, Options{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "flappy_"))

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Press SPACE to flap")
	assert.Contains(t, m.statusLine(), "saved")
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "xyz")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
