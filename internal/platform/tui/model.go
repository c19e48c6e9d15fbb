package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombiebird/internal/audio"
	"github.com/vovakirdan/zombiebird/internal/core"
	"github.com/vovakirdan/zombiebird/internal/registry"
	"github.com/vovakirdan/zombiebird/internal/replay"
)

// Options wires the optional collaborators of a session.
type Options struct {
	Audio         audio.Player     // nil plays nothing
	Logger        *log.Logger      // nil uses the default logger
	Recorder      *replay.Recorder // records live input; nil disables recording
	Replayer      *replay.Replayer // non-nil switches to watch mode
	ScreenshotDir string           // defaults to ~/.zombiebird/screenshots
}

// Model is the Bubble Tea model for running a game. The game must already
// be Reset; the model only steps and draws it.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	keys KeyMap
	help help.Model

	audio    audio.Player
	logger   *log.Logger
	recorder *replay.Recorder
	replayer *replay.Replayer

	screenshotDir string
	status        string
	hold          bool // watch mode: playback held
	quitting      bool
}

// NewModel creates a model for an already reset game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = defaultScreenshotDir()
	}

	keys := DefaultKeyMap()
	if opts.Replayer != nil {
		keys = WatchKeyMap()
	}

	return Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:        cfg,
		inputFrame:    core.NewInputFrame(),
		gameState:     game.State(),
		keys:          keys,
		help:          help.New(),
		audio:         opts.Audio,
		logger:        opts.Logger,
		recorder:      opts.Recorder,
		replayer:      opts.Replayer,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "game", m.game.ID(), "seed", m.config.Seed,
		"tick_rate", m.config.TickRate, "watch", m.replayer != nil)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game actions are collected until the
// next tick, so a press between ticks is never lost.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case m.replayer != nil:
		if action == core.ActionPause {
			m.hold = !m.hold
		}
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize fits the screen buffer to the terminal. The world has a fixed
// size, so the game itself is not reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame
	if m.replayer != nil {
		if m.hold || m.replayer.Done() {
			return m, tickCmd(m.config.TickRate)
		}
		in, _ = m.replayer.Next()
	}

	result := m.game.Step(in)
	if m.recorder != nil {
		m.recorder.Record(in, result)
	}
	m.dispatch(result)
	m.gameState = result.State

	if m.replayer != nil && m.replayer.Done() {
		m.status = "replay finished"
		m.logger.Info("replay finished", "ticks", m.replayer.Tick(), "runs", m.gameState.Runs)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// dispatch plays audio cues and logs lifecycle events.
func (m *Model) dispatch(result core.StepResult) {
	for _, e := range result.Events {
		m.audio.Play(e)

		switch e {
		case core.EventGameOver:
			m.logger.Info("game over", "score", result.State.Score, "run", result.State.Runs)
		case core.EventRestart:
			m.logger.Debug("run restarted")
		}
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.status = "saved " + filepath.Base(path)
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if status := m.statusLine(); status != "" {
		out = statusStyle.Render(status) + "\n" + trimFirstLine(out)
	}
	return out + "\n" + m.help.View(m.keys)
}

// statusLine describes playback progress or the last notification.
func (m Model) statusLine() string {
	if m.replayer != nil {
		r := m.replayer.Replay()
		line := fmt.Sprintf(" REPLAY #%d  tick %d/%d ", r.ID, m.replayer.Tick(), r.TotalTicks)
		if m.hold {
			line += "[held] "
		}
		if m.status != "" {
			line += m.status + " "
		}
		return line
	}
	if m.status != "" {
		return " " + m.status + " "
	}
	return ""
}

func trimFirstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[i+1:]
		}
	}
	return ""
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".zombiebird", "screenshots")
}

// Run starts the Bubble Tea program for an already reset game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
