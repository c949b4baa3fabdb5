package mode

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// UI text identifiers.
const (
	TextTitle     = "title"
	TextStart     = "start"
	TextHighScore = "highscore"
)

// PausedLabel replaces the title while playing.
const PausedLabel = "PAUSED"

func (m *Machine) startOnStart(md *Mode) error {
	w := m.deps.World

	texts, err := m.deps.Assets.Texts()
	if err != nil {
		return err
	}
	for _, t := range texts {
		w.Create(ecs.Text{ID: t.ID, Text: t.Text, Color: t.Color, X: t.X, Y: t.Y})
	}

	var ok bool
	if md.start.title, ok = w.FindText(TextTitle); !ok {
		return missingText(TextTitle)
	}
	if md.start.start, ok = w.FindText(TextStart); !ok {
		return missingText(TextStart)
	}
	if md.start.highscore, ok = w.FindText(TextHighScore); !ok {
		return missingText(TextHighScore)
	}
	m.highlight(md)

	md.start.progress = m.deps.Assets.Preload(m.ctx, assets.AllKinds, core.AllSounds)
	return nil
}

func missingText(id string) error {
	return &core.AssetError{Kind: "ui text", ID: id, Path: assets.TextManifest}
}

func (m *Machine) startOnStop(md *Mode) {
	w := m.deps.World
	for _, e := range []ecs.Entity{md.start.title, md.start.start, md.start.highscore} {
		if err := w.SetHidden(e, true); err != nil {
			m.deps.Logger.Warn("cannot hide menu text", "entity", e, "err", err)
		}
	}
}

func (m *Machine) startEvent(md *Mode, ev core.Event) Trans {
	switch ev {
	case core.EventUp:
		md.start.selected = SelectStart
		m.highlight(md)
		m.deps.Sounds.Play(core.SoundPaddleHit)
	case core.EventDown:
		md.start.selected = SelectHighScore
		m.highlight(md)
		m.deps.Sounds.Play(core.SoundPaddleHit)
	case core.EventReturn:
		if md.start.progress != nil {
			m.deps.Logger.Debug("return ignored while loading")
			return Continue()
		}
		m.deps.Sounds.Play(core.SoundConfirm)
		switch md.start.selected {
		case SelectStart:
			return Switch(newPlay(md.start.title))
		case SelectHighScore:
			m.deps.Logger.Info("high scores are not available")
		}
	}
	return Continue()
}

// highlight recolors the two menu entries after the selection.
func (m *Machine) highlight(md *Mode) {
	startColor, highColor := core.Highlight, core.White
	if md.start.selected == SelectHighScore {
		startColor, highColor = core.White, core.Highlight
	}
	if t, err := m.deps.World.Text(md.start.start); err == nil {
		t.Color = startColor
	}
	if t, err := m.deps.World.Text(md.start.highscore); err == nil {
		t.Color = highColor
	}
}

// startUpdate polls the preload. Once it completes the background is
// spawned and the token dropped, so later polls do nothing.
func (m *Machine) startUpdate(md *Mode) (Trans, error) {
	p := md.start.progress
	if p == nil || !p.IsComplete() {
		return Continue(), nil
	}
	md.start.progress = nil

	reg, err := p.Result()
	if err != nil {
		return Continue(), fmt.Errorf("mode: load assets: %w", err)
	}
	m.sprites = reg
	if a, ok := m.deps.Sounds.(Attacher); ok {
		a.Attach(reg)
	}

	bg, err := breakout.SpawnBackground(m.deps.World, reg, m.deps.Params)
	if err != nil {
		return Continue(), err
	}
	md.start.background = bg
	return Continue(), nil
}
