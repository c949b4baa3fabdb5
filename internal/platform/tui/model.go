package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/mode"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// CloseMsg asks the model to deliver a window close event to the machine.
type CloseMsg struct{}

// Options configure a Model.
type Options struct {
	Config core.RuntimeConfig
	FieldW float64
	FieldH float64
	Keys   KeyMap
	Logger *log.Logger
}

// Stats is shared by every copy of a Model and read after the program ends.
type Stats struct {
	Started time.Time
	Frames  uint64
	Err     error
}

// Model is the Bubble Tea model driving one breakout machine.
type Model struct {
	machine *mode.Machine
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	config  core.RuntimeConfig
	fieldW  float64
	fieldH  float64
	frame   core.InputFrame
	axis    Axis
	stats   *Stats
	logger  *log.Logger
	now     func() time.Time

	quitting bool
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewModel creates a model for machine. The machine is started on the
// first tick if the caller has not started it.
func NewModel(machine *mode.Machine, opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	fieldW, fieldH := opts.FieldW, opts.FieldH
	if fieldW <= 0 || fieldH <= 0 {
		def := breakout.DefaultParams()
		fieldW, fieldH = def.FieldWidth, def.FieldHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	keys := opts.Keys
	if len(keys.Escape.Keys()) == 0 {
		keys = DefaultKeyMap()
	}

	return Model{
		machine: machine,
		screen:  core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		keys:    keys,
		help:    help.New(),
		config:  cfg,
		fieldW:  fieldW,
		fieldH:  fieldH,
		frame:   core.NewInputFrame(),
		stats:   &Stats{Started: time.Now()},
		logger:  logger,
		now:     time.Now,
	}
}

// The bottom row is reserved for the help footer.
func playHeight(h int) int {
	return max(1, h-1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case tea.BlurMsg:
		// No key repeats arrive while unfocused.
		m.axis.Release()
		return m, nil

	case CloseMsg:
		m.frame.Push(core.EventClose)
		return m.handleTick(m.now())

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues discrete events and deflects the axis. Nothing reaches
// the machine until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if dir := m.keys.Axis(msg); dir != 0 {
		m.axis.Press(dir, m.now())
		return m, nil
	}
	m.frame.Push(m.keys.Event(msg))
	return m, nil
}

// handleTick feeds one input frame to the machine with a fixed dt.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.frame.SetAxis(m.axis.Value(now))
	err := m.machine.Update(m.frame, m.config.TickSeconds())
	m.stats.Frames++
	m.frame.Clear()

	if err != nil {
		m.logger.Error("machine update failed", "err", err)
		m.stats.Err = err
		m.quitting = true
		return m, tea.Quit
	}
	if !m.machine.Running() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.screen, m.machine.World(), m.machine.Sprites(), m.fieldW, m.fieldH)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	var status string
	if loaded, total, ok := m.machine.LoadProgress(); ok {
		status = fmt.Sprintf("loading assets %d/%d", loaded, total)
	} else if k := m.machine.Current(); k == mode.KindPlay || k == mode.KindPaused {
		status = fmt.Sprintf("bricks %d", m.machine.BricksLeft())
	}
	parts := []string{m.help.View(m.keys)}
	if status != "" {
		parts = append([]string{status}, parts...)
	}
	return footerStyle.Render(strings.Join(parts, " • "))
}

// Result summarizes a finished run for the session journal.
type Result struct {
	StartedAt  time.Time
	Duration   time.Duration
	Frames     uint64
	BricksLeft int
	QuitReason core.Event
	Err        error
}

// EndReason names how the run ended.
func (r Result) EndReason() string {
	switch {
	case r.Err != nil:
		return "error"
	case r.QuitReason != core.EventNone:
		return strings.ToLower(r.QuitReason.String())
	default:
		return "disconnect"
	}
}

// Session converts the result into a journal row.
func (r Result) Session() storage.Session {
	return storage.Session{
		StartedAt:  r.StartedAt,
		Duration:   r.Duration,
		Frames:     r.Frames,
		BricksLeft: r.BricksLeft,
		EndReason:  r.EndReason(),
	}
}

// Summarize builds the result of a run from the machine and model stats.
func Summarize(machine *mode.Machine, stats *Stats) Result {
	return Result{
		StartedAt:  stats.Started,
		Duration:   time.Since(stats.Started),
		Frames:     stats.Frames,
		BricksLeft: machine.BricksLeft(),
		QuitReason: machine.QuitReason(),
		Err:        stats.Err,
	}
}

// Stats returns the counters shared by all copies of the model.
func (m Model) Stats() *Stats {
	return m.stats
}

// Run drives machine in the terminal until it quits or ctx is done.
// Cancelling ctx delivers a close event so the machine quits normally.
func Run(ctx context.Context, machine *mode.Machine, opts Options) (Result, error) {
	model := NewModel(machine, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Send(CloseMsg{})
		case <-done:
		}
	}()

	_, err := p.Run()
	machine.Stop()
	res := Summarize(machine, model.Stats())
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return res, fmt.Errorf("tui: %w", err)
	}
	return res, res.Err
}
