package mode

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Preloader starts asset loading and provides the menu labels.
// *assets.Loader implements it.
type Preloader interface {
	Preload(ctx context.Context, kinds []assets.Kind, sounds []core.SoundID) *assets.Progress
	Texts() ([]assets.TextDef, error)
}

// Attacher is implemented by sound sinks that need the loaded clips.
type Attacher interface {
	Attach(src audio.ClipSource)
}

// Deps are the collaborators a machine drives.
type Deps struct {
	World    *ecs.World
	Assets   Preloader
	Sounds   core.SoundSink // nil means silent
	Params   breakout.Params
	Debounce float64 // Seconds Space is ignored after resuming play
	Strict   bool
	Logger   *log.Logger
}

// Machine owns the mode stack.
type Machine struct {
	deps       Deps
	stack      []*Mode
	dispatcher *breakout.Dispatcher
	sprites    *assets.Registry
	camera     ecs.Entity

	ctx    context.Context
	cancel context.CancelFunc

	started    bool
	running    bool
	quitReason core.Event
	bricksLeft int // Counted when play last stopped
}

// NewMachine creates a machine. Loading started by the Start mode is
// cancelled when ctx is done or the machine stops.
func NewMachine(ctx context.Context, deps Deps) *Machine {
	if deps.World == nil {
		deps.World = ecs.NewWorld()
	}
	if deps.Sounds == nil {
		deps.Sounds = core.Mute
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Machine{
		deps:       deps,
		dispatcher: breakout.NewDispatcher(deps.Params, deps.Strict, deps.Logger),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start enters the initial Start mode.
func (m *Machine) Start() error {
	if m.started {
		return nil
	}
	m.started = true
	m.running = true
	m.camera = breakout.SpawnCamera(m.deps.World, m.deps.Params)
	return m.push(NewStart())
}

// Update handles this frame's events in order, then runs the top mode's
// per-frame update. dt is the frame duration in seconds.
func (m *Machine) Update(frame core.InputFrame, dt float64) error {
	if !m.started {
		if err := m.Start(); err != nil {
			return err
		}
	}

	for _, ev := range frame.Events {
		if !m.running {
			return nil
		}
		if err := m.apply(m.handleEvent(m.top(), ev)); err != nil {
			return err
		}
		if ev.IsQuit() && !m.running {
			m.quitReason = ev
		}
	}
	if !m.running {
		return nil
	}

	trans, err := m.update(m.top(), frame.Axis, dt)
	if err != nil {
		return err
	}
	return m.apply(trans)
}

// Stop tears down every mode and cancels pending loads.
func (m *Machine) Stop() {
	_ = m.apply(Quit())
}

// Running reports whether the machine has not quit.
func (m *Machine) Running() bool {
	return m.running
}

// Current returns the kind of the top mode, KindNone once stopped.
func (m *Machine) Current() Kind {
	if top := m.top(); top != nil {
		return top.Kind
	}
	return KindNone
}

// QuitReason returns the event that ended the machine, EventNone if it is
// still running or was stopped by the host.
func (m *Machine) QuitReason() core.Event {
	return m.quitReason
}

// World returns the entity store the machine drives.
func (m *Machine) World() *ecs.World {
	return m.deps.World
}

// Sprites returns the loaded sprite registry, nil before loading finishes.
func (m *Machine) Sprites() *assets.Registry {
	return m.sprites
}

// Ticks returns how many simulation steps have run.
func (m *Machine) Ticks() uint64 {
	return m.dispatcher.Ticks()
}

// BricksLeft returns the live brick count while playing, otherwise the
// count when play last ended.
func (m *Machine) BricksLeft() int {
	for _, md := range m.stack {
		if md.Kind == KindPlay {
			return breakout.BricksLeft(m.deps.World)
		}
	}
	return m.bricksLeft
}

// Selection returns the start menu highlight.
func (m *Machine) Selection() Selection {
	for _, md := range m.stack {
		if md.Kind == KindStart {
			return md.start.selected
		}
	}
	return SelectStart
}

// Loading reports whether the start mode is still waiting for assets.
func (m *Machine) Loading() bool {
	top := m.top()
	return top != nil && top.Kind == KindStart && top.start.progress != nil
}

// LoadProgress returns the preload counters while the start mode is loading.
func (m *Machine) LoadProgress() (loaded, total int, ok bool) {
	if !m.Loading() {
		return 0, 0, false
	}
	loaded, total = m.top().start.progress.Counts()
	return loaded, total, true
}

func (m *Machine) top() *Mode {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Machine) apply(t Trans) error {
	switch t.Kind {
	case TransContinue:
		return nil
	case TransPush:
		if top := m.top(); top != nil {
			m.onPause(top)
		}
		return m.push(t.Next)
	case TransPop:
		m.pop()
		if top := m.top(); top != nil {
			m.onResume(top)
			return nil
		}
		m.halt()
		return nil
	case TransSwitch:
		m.pop()
		return m.push(t.Next)
	case TransQuit:
		for len(m.stack) > 0 {
			m.pop()
		}
		m.halt()
		return nil
	default:
		return fmt.Errorf("mode: unknown transition %d", t.Kind)
	}
}

func (m *Machine) push(next *Mode) error {
	m.stack = append(m.stack, next)
	m.deps.Logger.Debug("mode start", "mode", next.Kind, "depth", len(m.stack))
	if err := m.onStart(next); err != nil {
		return fmt.Errorf("mode: start %s: %w", next.Kind, err)
	}
	return nil
}

func (m *Machine) pop() {
	top := m.top()
	if top == nil {
		return
	}
	m.onStop(top)
	m.stack = m.stack[:len(m.stack)-1]
	m.deps.Logger.Debug("mode stop", "mode", top.Kind, "depth", len(m.stack))
}

func (m *Machine) halt() {
	if !m.running {
		return
	}
	m.running = false
	m.cancel()
	m.deps.Logger.Info("machine stopped", "ticks", m.dispatcher.Ticks())
}

func (m *Machine) handleEvent(md *Mode, ev core.Event) Trans {
	if ev.IsQuit() {
		return Quit()
	}
	switch md.Kind {
	case KindStart:
		return m.startEvent(md, ev)
	case KindPlay:
		return m.playEvent(md, ev)
	case KindPaused:
		return m.pausedEvent(md, ev)
	}
	return Continue()
}

func (m *Machine) update(md *Mode, axis, dt float64) (Trans, error) {
	switch md.Kind {
	case KindStart:
		return m.startUpdate(md)
	case KindPlay:
		return m.playUpdate(md, axis, dt), nil
	}
	// Paused: simulation frozen, rendering continues.
	return Continue(), nil
}

func (m *Machine) onStart(md *Mode) error {
	switch md.Kind {
	case KindStart:
		return m.startOnStart(md)
	case KindPlay:
		return m.playOnStart(md)
	}
	return nil
}

func (m *Machine) onStop(md *Mode) {
	switch md.Kind {
	case KindStart:
		m.startOnStop(md)
	case KindPlay:
		m.playOnStop(md)
	}
}

func (m *Machine) onPause(md *Mode) {
	if md.Kind == KindPlay {
		m.playOnPause(md)
	}
}

func (m *Machine) onResume(md *Mode) {
	if md.Kind == KindPlay {
		m.playOnResume(md)
	}
}
