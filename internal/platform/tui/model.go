package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// Driver is the part of a simulation the frame driver and input adapter call.
// Both *runner.Sim and *replay.Recorder implement it.
type Driver interface {
	Advance(dt time.Duration)
	Jump()
	Reset()
	Resize(field runner.Field) error
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(1)

// Model is the Bubble Tea model for a runner session.
type Model struct {
	sim       *runner.Sim
	driver    Driver
	recorder  *replay.Recorder // nil unless recording
	runtime   core.RuntimeConfig
	layout    Layout
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	lastTick  time.Time
	lastPhase runner.Phase
	quitting  bool
}

// NewModel creates a model with a fresh simulation sized for the runtime
// screen. With record set, every driver call is captured for replay.
func NewModel(cfg config.RunnerConfig, rc core.RuntimeConfig, record bool, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.Default()
	}

	layout := NewLayout(rc.ScreenW, rc.ScreenH, cfg.Field.GroundHeight)

	m := Model{
		runtime: rc,
		layout:  layout,
		screen:  core.NewScreen(layout.Cols, layout.ScreenRows()),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  logger,
	}
	m.help.Width = layout.Cols

	// A terminal too small for the field starts on the configured one and
	// switches once a usable size arrives.
	field := layout.Field
	if field.Holds(cfg) != nil {
		field = runner.FieldFromConfig(cfg)
	}

	if record {
		rec, err := replay.NewRecorder(cfg, field)
		if err != nil {
			return Model{}, err
		}
		m.recorder = rec
		m.sim = rec.Sim()
		m.driver = rec
	} else {
		sim, err := runner.New(cfg, field)
		if err != nil {
			return Model{}, err
		}
		m.sim = sim
		m.driver = sim
	}

	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleAction applies a mapped input. Each action reaches the driver at most once.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.driver.Jump()
	case core.ActionRestart:
		m.driver.Reset()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleResize refits the field. The run restarts only if the field changed.
// A field too short for the character is never applied.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.layout = NewLayout(msg.Width, msg.Height, m.sim.Config().Field.GroundHeight)
	m.screen.Resize(m.layout.Cols, m.layout.ScreenRows())
	m.help.Width = m.layout.Cols

	if m.layout.Field == m.sim.Field() || !m.fits() {
		return m, nil
	}
	if err := m.driver.Resize(m.layout.Field); err != nil {
		m.logger.Warn("cannot resize field", "cols", msg.Width, "rows", msg.Height, "error", err)
	}
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
// The run is paused while the terminal is too small.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() && m.fits() {
		m.driver.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now

	if phase := m.sim.Phase(); phase != m.lastPhase {
		if phase == runner.PhaseGameOver {
			m.logger.Debug("run ended", "score", m.sim.Score(), "elapsed", m.sim.Elapsed())
		}
		m.lastPhase = phase
	}

	return m, tickCmd(m.runtime.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.fits() {
		DrawFrame(m.screen, m.layout, m.sim.Snapshot(), m.recorder != nil)
	} else {
		DrawTooSmall(m.screen)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// fits reports whether the terminal holds a playable field.
func (m Model) fits() bool {
	return m.layout.Field.Holds(m.sim.Config()) == nil
}

// Sim returns the simulation for read access.
func (m Model) Sim() *runner.Sim {
	return m.sim
}

// Recorder returns the session recorder, or nil when not recording.
func (m Model) Recorder() *replay.Recorder {
	return m.recorder
}

// Trace returns the recording of the session and whether one was made.
func (m Model) Trace() (replay.Trace, bool) {
	if m.recorder == nil {
		return replay.Trace{}, false
	}
	return m.recorder.Trace(), true
}

// Run starts the Bubble Tea program and returns the final model.
func Run(model Model) (Model, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click jumps
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		return m, err
	}
	return model, err
}
