package audio

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultVolume is the linear gain applied to every effect.
const DefaultVolume = 0.15

// Output accepts streamers to play.
type Output interface {
	Play(s beep.Streamer)
}

// ClipSource resolves sound identifiers to loaded clips.
type ClipSource interface {
	Clip(id core.SoundID) (*Clip, bool)
}

// Board turns sound-trigger requests into playback. It implements
// core.SoundSink and is silent until an output and a clip source are present.
type Board struct {
	mu      sync.Mutex
	out     Output
	clips   ClipSource
	volume  float64
	logger  *log.Logger
	missing map[core.SoundID]bool
}

// NewBoard creates a board playing into out. A nil out means no device.
// volume is clamped to [0, 1].
func NewBoard(out Output, volume float64, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	return &Board{
		out:     out,
		volume:  core.ClampF(volume, 0, 1),
		logger:  logger,
		missing: make(map[core.SoundID]bool),
	}
}

// Attach sets the clip source, typically once assets finish loading.
func (b *Board) Attach(src ClipSource) {
	b.mu.Lock()
	b.clips = src
	clear(b.missing)
	b.mu.Unlock()
}

// Play starts the sound if everything needed is available.
func (b *Board) Play(id core.SoundID) {
	b.mu.Lock()
	out, clips, vol := b.out, b.clips, b.volume
	if out == nil || clips == nil {
		b.mu.Unlock()
		return
	}
	clip, ok := clips.Clip(id)
	if !ok {
		if !b.missing[id] {
			b.missing[id] = true
			b.logger.Warn("sound missing, playing nothing", "sound", id)
		}
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	out.Play(newVolume(clip.Streamer(), vol))
}

var _ core.SoundSink = (*Board)(nil)
