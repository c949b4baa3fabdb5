package mode

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func (m *Machine) playOnStart(md *Mode) error {
	if t, err := m.deps.World.Text(md.play.title); err == nil {
		t.Text = PausedLabel
	}
	if m.sprites == nil {
		return errors.New("play started before assets were loaded")
	}
	return breakout.SpawnPlay(m.deps.World, m.sprites, m.deps.Params)
}

// playOnStop removes everything play spawned.
func (m *Machine) playOnStop(*Mode) {
	w := m.deps.World
	m.bricksLeft = breakout.BricksLeft(w)
	snap := breakout.TakeSnapshot(w, m.dispatcher.Ticks())
	m.deps.Logger.Debug("play ended", "ticks", snap.Tick, "bricks", m.bricksLeft, "state", fmt.Sprintf("%016x", snap.Hash()))
	for e := range w.Query(ecs.MaskPaddle) {
		_ = w.Delete(e)
	}
	for e := range w.Query(ecs.MaskBall) {
		_ = w.Delete(e)
	}
	w.Maintain()
}

func (m *Machine) playOnPause(md *Mode) {
	m.deps.Sounds.Play(core.SoundPause)
	if err := m.deps.World.SetHidden(md.play.title, false); err != nil {
		m.deps.Logger.Warn("cannot show paused text", "err", err)
	}
}

func (m *Machine) playOnResume(md *Mode) {
	md.play.debounce = m.deps.Debounce
	md.play.debouncing = true
	m.deps.Sounds.Play(core.SoundPause)
	if err := m.deps.World.SetHidden(md.play.title, true); err != nil {
		m.deps.Logger.Warn("cannot hide paused text", "err", err)
	}
}

func (m *Machine) playEvent(md *Mode, ev core.Event) Trans {
	if ev == core.EventSpace && !md.play.debouncing {
		return Push(newPaused())
	}
	return Continue()
}

// playUpdate counts down the resume debounce and steps the simulation.
func (m *Machine) playUpdate(md *Mode, axis, dt float64) Trans {
	if md.play.debouncing {
		md.play.debounce -= dt
		if md.play.debounce < 0 {
			md.play.debouncing = false
			md.play.debounce = 0
		}
	}
	m.dispatcher.Step(m.deps.World, axis, dt, m.deps.Sounds)
	return Continue()
}

func (m *Machine) pausedEvent(_ *Mode, ev core.Event) Trans {
	if ev == core.EventSpace {
		return Pop()
	}
	return Continue()
}
