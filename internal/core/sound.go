package core

// SoundID identifies a logical sound effect.
type SoundID int

const (
	SoundPaddleHit SoundID = iota
	SoundConfirm
	SoundPause
	SoundWallHit
	SoundBrickHit
)

// AllSounds lists every sound the game preloads.
var AllSounds = []SoundID{SoundPaddleHit, SoundConfirm, SoundPause, SoundWallHit, SoundBrickHit}

// String returns the manifest key of the sound.
func (s SoundID) String() string {
	switch s {
	case SoundPaddleHit:
		return "paddle_hit"
	case SoundConfirm:
		return "confirm"
	case SoundPause:
		return "pause"
	case SoundWallHit:
		return "wall_hit"
	case SoundBrickHit:
		return "brick_hit_2"
	default:
		return "unknown"
	}
}

// SoundSink accepts sound-trigger requests.
// Implementations must never fail: a missing device or clip means silence.
type SoundSink interface {
	Play(id SoundID)
}

// SoundFunc adapts a function to SoundSink.
type SoundFunc func(id SoundID)

// Play calls f(id).
func (f SoundFunc) Play(id SoundID) {
	f(id)
}

// Mute is a SoundSink that drops every request.
var Mute SoundSink = SoundFunc(func(SoundID) {})
