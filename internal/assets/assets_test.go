package assets

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func quietLoader(fsys fs.FS) *Loader {
	return NewLoader(fsys, 8000, log.New(io.Discard))
}

func TestKindSheetsAndIndices(t *testing.T) {
	assert.Equal(t, SheetBackground, KindBackground.Sheet())
	assert.Equal(t, 0, KindBackground.Index())
	assert.Equal(t, SheetBreakout, KindPaddleSmall.Sheet())
	assert.Equal(t, 0, KindPaddleSmall.Index())
	assert.Equal(t, 1, KindPaddleMedium.Index())
	assert.Equal(t, 2, KindBall.Index())
}

func TestEmbeddedAssetsLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reg, err := quietLoader(nil).Load(ctx, AllKinds, core.AllSounds)
	require.NoError(t, err)

	paddle, err := reg.Sprite(KindPaddleMedium)
	require.NoError(t, err)
	assert.Equal(t, 64.0, paddle.Width)
	assert.Equal(t, 16.0, paddle.Height)

	brick, err := reg.Sprite(KindPaddleSmall)
	require.NoError(t, err)
	assert.Equal(t, 32.0, brick.Width)

	ball, err := reg.Sprite(KindBall)
	require.NoError(t, err)
	assert.Equal(t, 8.0, ball.Width)
	assert.Equal(t, '●', ball.Glyph)

	// No wav files ship embedded; every sound comes from its synth description.
	for _, id := range core.AllSounds {
		clip, ok := reg.Clip(id)
		assert.True(t, ok, "sound %s", id)
		if ok {
			assert.Positive(t, clip.Len())
		}
	}
}

func TestEmbeddedTexts(t *testing.T) {
	texts, err := quietLoader(nil).Texts()
	require.NoError(t, err)

	ids := make([]string, 0, len(texts))
	for _, tx := range texts {
		ids = append(ids, tx.ID)
	}
	assert.ElementsMatch(t, []string{"title", "start", "highscore"}, ids)
}

const breakoutSheet = `
sprites:
  - {name: paddle_small, width: 32, height: 16}
  - {name: paddle_medium, width: 64, height: 16}
  - {name: ball, width: 8, height: 8}
`

func TestMissingSheetIsAssetMissing(t *testing.T) {
	fsys := fstest.MapFS{
		SheetBreakout: {Data: []byte(breakoutSheet)},
	}

	_, err := quietLoader(fsys).Load(context.Background(), AllKinds, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAssetMissing)

	var ae *core.AssetError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, SheetBackground, ae.Path)
	assert.Contains(t, err.Error(), SheetBackground)
}

func TestShortSheetIsAssetMissing(t *testing.T) {
	fsys := fstest.MapFS{
		SheetBreakout: {Data: []byte("sprites:\n  - {name: paddle_small, width: 32, height: 16}\n")},
	}

	_, err := quietLoader(fsys).Load(context.Background(), []Kind{KindBall}, nil)
	assert.ErrorIs(t, err, core.ErrAssetMissing)
}

func TestInvalidSheetIsParseError(t *testing.T) {
	fsys := fstest.MapFS{
		SheetBreakout: {Data: []byte("sprites:\n  - {name: ball, width: 0, height: 8}\n")},
	}

	_, err := quietLoader(fsys).Load(context.Background(), []Kind{KindPaddleSmall}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrAssetMissing)
}

func TestMissingSoundsAreSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		SheetBreakout: {Data: []byte(breakoutSheet)},
		SoundManifest: {Data: []byte(`
sounds:
  - id: wall_hit
    file: wall_hit.wav
    synth: {wave: square, freq: 220, duration_ms: 20}
  - id: pause
    file: pause.wav
`)},
	}

	reg, err := quietLoader(fsys).Load(context.Background(), []Kind{KindBall}, core.AllSounds)
	require.NoError(t, err)

	_, ok := reg.Clip(core.SoundWallHit)
	assert.True(t, ok)
	_, ok = reg.Clip(core.SoundPause)
	assert.False(t, ok, "pause has neither a file nor a synth")
	_, ok = reg.Clip(core.SoundConfirm)
	assert.False(t, ok, "confirm is not in the manifest")
}

func TestMissingSoundManifestIsSilent(t *testing.T) {
	fsys := fstest.MapFS{
		SheetBreakout: {Data: []byte(breakoutSheet)},
	}

	p := quietLoader(fsys).Preload(context.Background(), []Kind{KindBall}, core.AllSounds)
	reg, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Zero(t, reg.Clips())

	loaded, total := p.Counts()
	assert.Equal(t, 1+len(core.AllSounds), total)
	assert.Equal(t, total, loaded)
}

func TestProgressToken(t *testing.T) {
	p := newProgress(1)
	assert.False(t, p.IsComplete())
	_, err := p.Result()
	assert.ErrorIs(t, err, ErrNotReady)

	reg := NewRegistry()
	p.finish(reg, nil)
	assert.True(t, p.IsComplete())
	got, err := p.Result()
	require.NoError(t, err)
	assert.Same(t, reg, got)

	failed := Ready(nil, core.ErrAssetMissing)
	assert.True(t, failed.IsComplete())
	_, err = failed.Result()
	assert.ErrorIs(t, err, core.ErrAssetMissing)
}

func TestPreloadNothingIsComplete(t *testing.T) {
	p := quietLoader(fstest.MapFS{}).Preload(context.Background(), nil, nil)
	require.True(t, p.IsComplete())

	reg, err := p.Result()
	require.NoError(t, err)
	assert.Zero(t, reg.Sprites())
}

func TestPendingCountsSteps(t *testing.T) {
	p, step, finish := Pending(3)
	step()
	step()

	loaded, total := p.Counts()
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 3, total)
	assert.False(t, p.IsComplete())

	finish(NewRegistry(), nil)
	assert.True(t, p.IsComplete())
}

func TestProgressWaitHonoursContext(t *testing.T) {
	p := newProgress(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistrySpriteMissing(t *testing.T) {
	_, err := NewRegistry().Sprite(KindBackground)
	assert.ErrorIs(t, err, core.ErrAssetMissing)
}
