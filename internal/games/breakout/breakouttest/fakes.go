// Package breakouttest provides in-memory collaborators for simulation tests.
package breakouttest

import (
	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// SoundRecorder is a core.SoundSink that remembers every request.
type SoundRecorder struct {
	Played []core.SoundID
}

// Play records id.
func (r *SoundRecorder) Play(id core.SoundID) {
	r.Played = append(r.Played, id)
}

// Count returns how many times id was requested.
func (r *SoundRecorder) Count(id core.SoundID) int {
	n := 0
	for _, got := range r.Played {
		if got == id {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *SoundRecorder) Reset() {
	r.Played = r.Played[:0]
}

// Sprites returns a registry with the default sprite sizes:
// bricks 32x16, player paddle 64x16, ball 8x8, background 434x245.
func Sprites() *assets.Registry {
	reg := assets.NewRegistry()
	put := func(k assets.Kind, w, h float64, glyph rune) {
		reg.PutSprite(assets.SpriteInfo{
			Kind:   k,
			Sheet:  k.Sheet(),
			Index:  k.Index(),
			Width:  w,
			Height: h,
			Glyph:  glyph,
			Color:  core.ColorWhite,
		})
	}
	put(assets.KindBackground, 434, 245, '.')
	put(assets.KindPaddleSmall, 32, 16, '#')
	put(assets.KindPaddleMedium, 64, 16, '=')
	put(assets.KindBall, 8, 8, 'o')
	return reg
}
