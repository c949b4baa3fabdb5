package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/mode"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func newTestModel(t *testing.T) (Model, *mode.Machine) {
	t.Helper()
	logger := log.New(io.Discard)
	p := breakout.DefaultParams()
	machine := mode.NewMachine(context.Background(), mode.Deps{
		World:    ecs.NewWorld(),
		Assets:   assets.NewLoader(assets.Embedded(), audio.DefaultSampleRate, logger),
		Params:   p,
		Debounce: 0.25,
		Strict:   true,
		Logger:   logger,
	})
	m := NewModel(machine, Options{
		Config: core.RuntimeConfig{ScreenW: 96, ScreenH: 40, TickRate: 60},
		FieldW: p.FieldWidth,
		FieldH: p.FieldHeight,
		Logger: logger,
	})
	return m, machine
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg(time.Now()))
	return next.(Model), cmd
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// waitLoaded ticks until the embedded assets finished loading.
func waitLoaded(t *testing.T, m Model, machine *mode.Machine) Model {
	t.Helper()
	m, _ = tick(t, m)
	deadline := time.Now().Add(5 * time.Second)
	for machine.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("assets did not finish loading")
		}
		time.Sleep(5 * time.Millisecond)
		m, _ = tick(t, m)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelStartsInMenu(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)

	if machine.Current() != mode.KindStart {
		t.Fatalf("expected start mode, got %s", machine.Current())
	}
	view := m.View()
	for _, want := range []string{"BREAKOUT", "START", "HIGH SCORE"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}
}

func TestModelEnterStartsPlay(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if machine.Current() != mode.KindStart {
		t.Fatal("keys must not reach the machine before the next tick")
	}
	m, _ = tick(t, m)

	if machine.Current() != mode.KindPlay {
		t.Fatalf("expected play mode, got %s", machine.Current())
	}
	if got := machine.BricksLeft(); got != 18 {
		t.Errorf("BricksLeft() = %d, want 18", got)
	}
	if !strings.Contains(m.View(), "●") {
		t.Error("ball glyph not rendered")
	}
}

func TestModelAxisMovesPaddle(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)

	paddleX := func() float64 {
		w := machine.World()
		for e := range w.Query(ecs.MaskPaddle | ecs.MaskTransform) {
			p, _ := w.Paddle(e)
			if p.Role == ecs.RolePlayer {
				tr, _ := w.Transform(e)
				return tr.X
			}
		}
		t.Fatal("no player paddle")
		return 0
	}

	before := paddleX()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = tick(t, m)
	if after := paddleX(); after <= before {
		t.Errorf("paddle did not move right: %g -> %g", before, after)
	}
}

func TestModelBlurReleasesAxis(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)

	paddleX := func() float64 {
		w := machine.World()
		for e := range w.Query(ecs.MaskPaddle | ecs.MaskTransform) {
			if p, _ := w.Paddle(e); p.Role == ecs.RolePlayer {
				tr, _ := w.Transform(e)
				return tr.X
			}
		}
		t.Fatal("no player paddle")
		return 0
	}

	before := paddleX()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	m, _ = tick(t, m)
	if after := paddleX(); after != before {
		t.Errorf("paddle moved after focus loss: %g -> %g", before, after)
	}
}

// pendingAssets never finishes loading.
type pendingAssets struct {
	*assets.Loader
	progress *assets.Progress
}

func (p pendingAssets) Preload(context.Context, []assets.Kind, []core.SoundID) *assets.Progress {
	return p.progress
}

func TestModelFooterShowsLoadProgress(t *testing.T) {
	logger := log.New(io.Discard)
	progress, step, _ := assets.Pending(7)
	step()
	step()
	step()
	machine := mode.NewMachine(context.Background(), mode.Deps{
		World:  ecs.NewWorld(),
		Assets: pendingAssets{Loader: assets.NewLoader(assets.Embedded(), audio.DefaultSampleRate, logger), progress: progress},
		Params: breakout.DefaultParams(),
		Logger: logger,
	})
	m := NewModel(machine, Options{Logger: logger})
	m, _ = tick(t, m)

	if view := m.View(); !strings.Contains(view, "loading assets 3/7") {
		t.Errorf("footer does not show load progress:\n%s", view)
	}
}

func TestModelEscapeQuits(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m, cmd := tick(t, m)

	if !isQuit(cmd) {
		t.Fatal("expected tea.Quit after escape")
	}
	if m.View() != "" {
		t.Error("view must be empty once quitting")
	}
	res := Summarize(machine, m.Stats())
	if res.EndReason() != "escape" {
		t.Errorf("EndReason() = %q, want escape", res.EndReason())
	}
	if res.Frames == 0 {
		t.Error("frames not counted")
	}
}

func TestModelCloseMessage(t *testing.T) {
	m, machine := newTestModel(t)
	m = waitLoaded(t, m, machine)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)

	next, cmd := m.Update(CloseMsg{})
	m = next.(Model)

	if !isQuit(cmd) {
		t.Fatal("expected tea.Quit after close")
	}
	res := Summarize(machine, m.Stats())
	if res.EndReason() != "close" {
		t.Errorf("EndReason() = %q, want close", res.EndReason())
	}
	if res.BricksLeft != 18 {
		t.Errorf("BricksLeft = %d, want 18", res.BricksLeft)
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	m = next.(Model)

	if m.screen.Width() != 50 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, want 50x19", m.screen.Width(), m.screen.Height())
	}
}

func TestResultEndReason(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"escape", Result{QuitReason: core.EventEscape}, "escape"},
		{"close", Result{QuitReason: core.EventClose}, "close"},
		{"disconnect", Result{}, "disconnect"},
		{"error wins", Result{QuitReason: core.EventEscape, Err: errors.New("boom")}, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.EndReason(); got != tt.want {
				t.Errorf("EndReason() = %q, want %q", got, tt.want)
			}
			if got := tt.res.Session().EndReason; got != tt.want {
				t.Errorf("Session().EndReason = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionsTable(t *testing.T) {
	out := SessionsTable(nil, nil)
	if !strings.Contains(out, "No sessions") {
		t.Errorf("empty journal output = %q", out)
	}

	out = SessionsTable([]storage.Session{{
		ID:         "0b7e6c1a-0000-4000-8000-000000000000",
		StartedAt:  time.Now(),
		Duration:   42 * time.Second,
		Frames:     2520,
		BricksLeft: 3,
		EndReason:  "escape",
	}}, &storage.Stats{Sessions: 1, TotalTime: 42 * time.Second})
	for _, want := range []string{"escape", "2520", "0b7e6c1a", "42s", "1 played"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q", want)
		}
	}
}
