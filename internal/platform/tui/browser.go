package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zombiebird/internal/replay"
	"github.com/vovakirdan/zombiebird/internal/storage"
)

// Browser layout constants
const (
	browserChrome  = 8  // Rows taken by title, borders and help
	dateColumnMax  = 18 // Widest the date column grows
	browserMinRows = 3
)

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "watch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel lists recordings in a table and lets the user pick one.
type BrowserModel struct {
	entries  []storage.ReplaySummary
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	selected int64
	chosen   bool
	quitting bool
}

// NewBrowserModel creates a browser over the given recordings.
func NewBrowserModel(entries []storage.ReplaySummary, width, height int) BrowserModel {
	m := BrowserModel{
		entries: entries,
		help:    help.New(),
		keys:    DefaultBrowserKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 16},
		{Title: "Length", Width: 8},
		{Title: "Runs", Width: 5},
		{Title: "Best", Width: 5},
	}

	// Give spare width to the date column
	if spare := m.width - 4 - 49; spare > 0 {
		columns[1].Width = min(columns[1].Width+spare, dateColumnMax)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-browserChrome, browserMinRows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		r := replay.Replay{TickRate: e.TickRate, TotalTicks: e.TotalTicks}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Duration().Round(100 * time.Millisecond).String(),
			fmt.Sprintf("%d", e.Runs),
			fmt.Sprintf("%d", e.BestScore),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.entries) {
				m.selected = m.entries[cursor].ID
				m.chosen = true
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RECORDINGS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		b.WriteString(tableStyle.Render("No recordings yet."))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the chosen recording ID and whether one was chosen.
func (m BrowserModel) Selected() (int64, bool) {
	return m.selected, m.chosen
}

// RunBrowser shows the browser and returns the chosen recording ID.
// ok is false when the user quit without choosing.
func RunBrowser(entries []storage.ReplaySummary, width, height int) (id int64, ok bool, err error) {
	p := tea.NewProgram(NewBrowserModel(entries, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	id, ok = final.(BrowserModel).Selected()
	return id, ok, nil
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
