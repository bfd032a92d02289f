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

	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForDetail = 80  // Minimum width to show the detail pane beside the table
	detailWidth       = 30  // Width of the detail pane
	maxRuns           = 100 // Max runs to load
)

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Delete, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored runs.
type ReplaysModel struct {
	store      *storage.Store
	runs       []storage.RunInfo
	table      table.Model
	help       help.Model
	keys       ReplaysKeyMap
	detail     string // Summary of the last replayed run
	err        error  // Last storage or replay error
	width      int
	height     int
	quitting   bool
	showDetail bool // Whether to show the detail pane beside the table
}

// NewReplaysModel creates a new replay browser.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		store:      store,
		keys:       DefaultReplaysKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Recorded", Width: 14},
		{Title: "Events", Width: 8},
		{Title: "Length", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("160")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reads the run list from the store.
func (m *ReplaysModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.ListRuns(maxRuns)
		if err != nil {
			m.err = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.EventCount),
			r.Duration.Round(time.Second / 10).String(),
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// selected returns the run under the cursor.
func (m ReplaysModel) selected() (storage.RunInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.RunInfo{}, false
	}
	return m.runs[i], true
}

// replaySelected re-simulates the selected run and fills the detail pane.
func (m *ReplaysModel) replaySelected() {
	run, ok := m.selected()
	if !ok {
		return
	}

	trace, err := m.store.LoadRun(run.ID)
	if err != nil {
		m.err = err
		return
	}
	sum, err := replay.Summarize(trace)
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.detail = fmt.Sprintf("Run #%d\n\n%s", run.ID, strings.Join(SummaryLines(sum), "\n"))
}

// deleteSelected removes the selected run.
func (m *ReplaysModel) deleteSelected() {
	run, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.DeleteRun(run.ID); err != nil {
		m.err = err
		return
	}
	m.detail = ""
	m.loadRuns()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			m.replaySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))
	b.WriteString(titleStyle.Render(centerText("RECORDED RUNS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := boxStyle.Render(m.renderTableContent())
	if m.showDetail {
		detailRendered := boxStyle.Width(detailWidth).Render(m.renderDetail())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", detailRendered))
	} else {
		b.WriteString(tableRendered)
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay with --record to keep one!")
	}

	return m.table.View()
}

// renderDetail renders the replay summary or the last error.
func (m ReplaysModel) renderDetail() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error())
	}
	if m.detail == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Select a run to replay it.")
	}
	return m.detail
}

// SummaryLines formats a replay summary as label/value lines.
func SummaryLines(sum replay.Summary) []string {
	return []string{
		fmt.Sprintf("Outcome  %s", sum.Phase),
		fmt.Sprintf("Score    %d", sum.Score),
		fmt.Sprintf("Best     %d", sum.Best),
		fmt.Sprintf("Speed    %.1f", sum.Speed),
		fmt.Sprintf("Run time %s", sum.Elapsed.Round(time.Millisecond)),
		fmt.Sprintf("Length   %s", sum.Duration.Round(time.Millisecond)),
		fmt.Sprintf("Runs     %d", sum.Runs),
		fmt.Sprintf("Jumps    %d", sum.Jumps),
		fmt.Sprintf("Events   %d", sum.Events),
	}
}

// centerText pads text so it sits in the middle of the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunReplays runs the replay browser.
func RunReplays(store *storage.Store, width, height int) error {
	model := NewReplaysModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
