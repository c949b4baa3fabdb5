package assets

import (
	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// SpriteInfo is a loaded sprite: its size in field units and how the
// terminal renderer draws it.
type SpriteInfo struct {
	Kind   Kind
	Sheet  string
	Index  int
	Width  float64
	Height float64
	Glyph  rune
	Color  core.Color
}

// Registry holds everything a finished preload produced.
// It is read-only once handed out by a Progress.
type Registry struct {
	sprites map[Kind]SpriteInfo
	clips   map[core.SoundID]*audio.Clip
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sprites: make(map[Kind]SpriteInfo),
		clips:   make(map[core.SoundID]*audio.Clip),
	}
}

// PutSprite registers a sprite under info.Kind.
func (r *Registry) PutSprite(info SpriteInfo) {
	r.sprites[info.Kind] = info
}

// PutClip registers a sound clip.
func (r *Registry) PutClip(id core.SoundID, clip *audio.Clip) {
	r.clips[id] = clip
}

// Sprite returns the sprite for kind, or an *core.AssetError.
func (r *Registry) Sprite(kind Kind) (SpriteInfo, error) {
	info, ok := r.sprites[kind]
	if !ok {
		return SpriteInfo{}, &core.AssetError{Kind: "sprite", ID: kind.String(), Path: kind.Sheet()}
	}
	return info, nil
}

// SpriteAt finds the sprite stored at index of sheet.
func (r *Registry) SpriteAt(sheet string, index int) (SpriteInfo, bool) {
	for _, info := range r.sprites {
		if info.Sheet == sheet && info.Index == index {
			return info, true
		}
	}
	return SpriteInfo{}, false
}

// Clip returns the clip for a sound. Implements audio.ClipSource.
func (r *Registry) Clip(id core.SoundID) (*audio.Clip, bool) {
	c, ok := r.clips[id]
	return c, ok
}

// Sprites returns the number of loaded sprites.
func (r *Registry) Sprites() int {
	return len(r.sprites)
}

// Clips returns the number of loaded clips.
func (r *Registry) Clips() int {
	return len(r.clips)
}

var _ audio.ClipSource = (*Registry)(nil)
