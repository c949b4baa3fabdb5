package mode

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/breakouttest"
)

type fakeAssets struct {
	progress *assets.Progress
	preloads int
}

func (f *fakeAssets) Preload(context.Context, []assets.Kind, []core.SoundID) *assets.Progress {
	f.preloads++
	return f.progress
}

func (f *fakeAssets) Texts() ([]assets.TextDef, error) {
	return []assets.TextDef{
		{ID: TextTitle, Text: "BREAKOUT", X: 216, Y: 170, Color: core.White},
		{ID: TextStart, Text: "START", X: 216, Y: 110, Color: core.White},
		{ID: TextHighScore, Text: "HIGH SCORE", X: 216, Y: 90, Color: core.White},
	}, nil
}

type attachingSink struct {
	breakouttest.SoundRecorder
	attached audio.ClipSource
}

func (s *attachingSink) Attach(src audio.ClipSource) {
	s.attached = src
}

func frame(events ...core.Event) core.InputFrame {
	f := core.NewInputFrame()
	for _, e := range events {
		f.Push(e)
	}
	return f
}

func newTestMachine(t *testing.T, progress *assets.Progress) (*Machine, *fakeAssets, *attachingSink) {
	t.Helper()
	fa := &fakeAssets{progress: progress}
	sink := &attachingSink{}
	m := NewMachine(context.Background(), Deps{
		World:    ecs.NewWorld(),
		Assets:   fa,
		Sounds:   sink,
		Params:   breakout.DefaultParams(),
		Debounce: 0.25,
		Strict:   true,
		Logger:   log.New(io.Discard),
	})
	require.NoError(t, m.Start())
	return m, fa, sink
}

func readyMachine(t *testing.T) (*Machine, *fakeAssets, *attachingSink) {
	t.Helper()
	m, fa, sink := newTestMachine(t, assets.Ready(breakouttest.Sprites(), nil))
	require.NoError(t, m.Update(frame(), 1.0/60))
	require.False(t, m.Loading())
	sink.Reset()
	return m, fa, sink
}

func playingMachine(t *testing.T) (*Machine, *attachingSink) {
	t.Helper()
	m, _, sink := readyMachine(t)
	require.NoError(t, m.Update(frame(core.EventReturn), 1.0/60))
	require.Equal(t, KindPlay, m.Current())
	sink.Reset()
	return m, sink
}

func textOf(t *testing.T, m *Machine, id string) (*ecs.Text, bool) {
	t.Helper()
	e, ok := m.World().FindText(id)
	require.True(t, ok, "text %s", id)
	tx, err := m.World().Text(e)
	require.NoError(t, err)
	return tx, m.World().Has(e, ecs.MaskHidden)
}

func countBackgrounds(w *ecs.World) int {
	n := 0
	for e := range w.Query(ecs.MaskSprite | ecs.MaskTransform) {
		if !w.Has(e, ecs.MaskPaddle) && !w.Has(e, ecs.MaskBall) {
			n++
		}
	}
	return n
}

func TestStartCreatesMenu(t *testing.T) {
	m, fa, _ := newTestMachine(t, assets.Ready(breakouttest.Sprites(), nil))

	assert.Equal(t, KindStart, m.Current())
	assert.True(t, m.Running())
	assert.Equal(t, 1, fa.preloads)
	assert.True(t, m.Loading())

	start, hidden := textOf(t, m, TextStart)
	assert.False(t, hidden)
	assert.Equal(t, core.Highlight, start.Color)
	high, _ := textOf(t, m, TextHighScore)
	assert.Equal(t, core.White, high.Color)
}

func TestStartPollingIsIdempotent(t *testing.T) {
	m, fa, sink := newTestMachine(t, assets.Ready(breakouttest.Sprites(), nil))

	for range 10 {
		require.NoError(t, m.Update(frame(), 1.0/60))
	}

	assert.Equal(t, 1, countBackgrounds(m.World()))
	assert.Equal(t, 1, fa.preloads)
	assert.NotNil(t, m.Sprites())
	assert.Same(t, m.Sprites(), sink.attached)
	assert.Zero(t, m.Ticks(), "simulation does not run in the menu")
}

func TestStartWaitsForPendingLoad(t *testing.T) {
	p, step, finish := assets.Pending(7)
	m, _, sink := newTestMachine(t, p)

	require.NoError(t, m.Update(frame(), 1.0/60))
	assert.True(t, m.Loading())

	step()
	step()
	step()
	loaded, total, ok := m.LoadProgress()
	assert.True(t, ok)
	assert.Equal(t, 3, loaded)
	assert.Equal(t, 7, total)
	assert.Zero(t, countBackgrounds(m.World()))

	require.NoError(t, m.Update(frame(core.EventReturn), 1.0/60))
	assert.Equal(t, KindStart, m.Current(), "return is ignored until assets are loaded")
	assert.Zero(t, sink.Count(core.SoundConfirm))

	finish(breakouttest.Sprites(), nil)
	require.NoError(t, m.Update(frame(), 1.0/60))
	assert.False(t, m.Loading())
	_, _, ok = m.LoadProgress()
	assert.False(t, ok, "no progress once loading finished")
	assert.Equal(t, 1, countBackgrounds(m.World()))
}

func TestStartLoadFailureIsFatal(t *testing.T) {
	failure := &core.AssetError{Kind: "sprite sheet", ID: assets.SheetBackground, Path: assets.SheetBackground}
	m, _, _ := newTestMachine(t, assets.Ready(nil, failure))

	err := m.Update(frame(), 1.0/60)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAssetMissing)
	assert.Contains(t, err.Error(), assets.SheetBackground)
}

func TestMenuNavigation(t *testing.T) {
	m, _, sink := readyMachine(t)

	require.NoError(t, m.Update(frame(core.EventDown), 1.0/60))
	assert.Equal(t, SelectHighScore, m.Selection())
	start, _ := textOf(t, m, TextStart)
	high, _ := textOf(t, m, TextHighScore)
	assert.Equal(t, core.White, start.Color)
	assert.Equal(t, core.Highlight, high.Color)

	require.NoError(t, m.Update(frame(core.EventUp), 1.0/60))
	assert.Equal(t, SelectStart, m.Selection())
	assert.Equal(t, core.Highlight, start.Color)
	assert.Equal(t, core.White, high.Color)

	assert.Equal(t, 2, sink.Count(core.SoundPaddleHit))
}

func TestHighScoreIsStub(t *testing.T) {
	m, _, sink := readyMachine(t)

	require.NoError(t, m.Update(frame(core.EventDown, core.EventReturn), 1.0/60))

	assert.Equal(t, KindStart, m.Current())
	assert.Equal(t, 1, sink.Count(core.SoundConfirm))
	assert.Zero(t, breakout.BricksLeft(m.World()))
}

func TestStartToPlay(t *testing.T) {
	m, _, sink := readyMachine(t)

	require.NoError(t, m.Update(frame(core.EventReturn), 1.0/60))

	assert.Equal(t, KindPlay, m.Current())
	assert.Equal(t, 1, len(m.stack))
	assert.Equal(t, 1, sink.Count(core.SoundConfirm))

	for _, id := range []string{TextTitle, TextStart, TextHighScore} {
		_, hidden := textOf(t, m, id)
		assert.True(t, hidden, "%s must be hidden in play", id)
	}
	title, _ := textOf(t, m, TextTitle)
	assert.Equal(t, PausedLabel, title.Text)

	assert.Equal(t, 18, breakout.BricksLeft(m.World()))
	assert.Equal(t, 1, m.World().Count(ecs.MaskBall))
	assert.Equal(t, uint64(1), m.Ticks(), "play updates in the frame it starts")
}

func TestPauseAndResume(t *testing.T) {
	m, sink := playingMachine(t)

	require.NoError(t, m.Update(frame(core.EventSpace), 1.0/60))
	assert.Equal(t, KindPaused, m.Current())
	assert.Equal(t, 2, len(m.stack))
	assert.Equal(t, 1, sink.Count(core.SoundPause))
	_, hidden := textOf(t, m, TextTitle)
	assert.False(t, hidden, "paused label is shown")

	require.NoError(t, m.Update(frame(core.EventSpace), 1.0/60))
	assert.Equal(t, KindPlay, m.Current())
	assert.Equal(t, 1, len(m.stack))
	assert.Equal(t, 2, sink.Count(core.SoundPause))
	_, hidden = textOf(t, m, TextTitle)
	assert.True(t, hidden)
}

func TestPausedFreezesSimulation(t *testing.T) {
	m, _ := playingMachine(t)
	require.NoError(t, m.Update(frame(core.EventSpace), 1.0/60))

	before := breakout.TakeSnapshot(m.World(), m.Ticks())
	for range 30 {
		require.NoError(t, m.Update(core.InputFrame{Axis: 1}, 1.0/60))
	}
	after := breakout.TakeSnapshot(m.World(), m.Ticks())

	assert.Equal(t, before.Hash(), after.Hash())
}

// Scenario D: a second Space in the same frame as the resume is swallowed.
func TestResumeDebounce(t *testing.T) {
	m, _ := playingMachine(t)
	require.NoError(t, m.Update(frame(core.EventSpace), 0))
	require.Equal(t, KindPaused, m.Current())

	require.NoError(t, m.Update(frame(core.EventSpace, core.EventSpace), 0))
	assert.Equal(t, KindPlay, m.Current())
	play := &m.top().play
	assert.True(t, play.debouncing)
	assert.Equal(t, 0.25, play.debounce)

	require.NoError(t, m.Update(frame(), 0.2))
	require.NoError(t, m.Update(frame(core.EventSpace), 0))
	assert.Equal(t, KindPlay, m.Current(), "still inside the debounce window")

	require.NoError(t, m.Update(frame(), 0.1))
	assert.False(t, play.debouncing)

	require.NoError(t, m.Update(frame(core.EventSpace), 0))
	assert.Equal(t, KindPaused, m.Current())
}

func TestQuitFromEveryMode(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Machine
		event core.Event
	}{
		{"start escape", func(t *testing.T) *Machine { m, _, _ := readyMachine(t); return m }, core.EventEscape},
		{"play close", func(t *testing.T) *Machine { m, _ := playingMachine(t); return m }, core.EventClose},
		{"paused escape", func(t *testing.T) *Machine {
			m, _ := playingMachine(t)
			require.NoError(t, m.Update(frame(core.EventSpace), 0))
			return m
		}, core.EventEscape},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.setup(t)
			require.NoError(t, m.Update(frame(tc.event, core.EventSpace), 1.0/60))

			assert.False(t, m.Running())
			assert.Equal(t, KindNone, m.Current())
			assert.Zero(t, len(m.stack))
			assert.Equal(t, tc.event, m.QuitReason())

			ticks := m.Ticks()
			require.NoError(t, m.Update(frame(core.EventReturn), 1.0/60))
			assert.Equal(t, ticks, m.Ticks())
		})
	}
}

func TestStopTearsDownPlay(t *testing.T) {
	m, _ := playingMachine(t)

	m.Stop()

	assert.False(t, m.Running())
	assert.Equal(t, core.EventNone, m.QuitReason())
	assert.Zero(t, m.World().Count(ecs.MaskPaddle))
	assert.Zero(t, m.World().Count(ecs.MaskBall))
	assert.Equal(t, 18, m.BricksLeft(), "brick count is kept after teardown")
}

func TestTransitionNames(t *testing.T) {
	assert.Equal(t, "push", Push(nil).Kind.String())
	assert.Equal(t, "continue", Continue().Kind.String())
	assert.Equal(t, "quit", Quit().Kind.String())
	assert.Equal(t, "paused", KindPaused.String())
}
