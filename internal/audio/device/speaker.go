// Package device opens the sound card. Only the local host links it; the
// simulation and the SSH server reach audio through core.SoundSink.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Speaker is the process-wide sound device with one shared mixer.
// speaker.Init may only succeed once per process, so a single Speaker
// should be created by the host and shared.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	closed bool
}

// NewSpeaker opens the default output device.
// Returns an error wrapping core.ErrDeviceUnavailable if no device can be opened.
func NewSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if rate <= 0 {
		rate = audio.DefaultSampleRate
	}
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: open speaker: %w: %v", core.ErrDeviceUnavailable, err)
	}

	s := &Speaker{mixer: &beep.Mixer{}, rate: rate}
	speaker.Play(s.mixer)
	return s, nil
}

// SampleRate returns the device rate clips must be rendered at.
func (s *Speaker) SampleRate() beep.SampleRate {
	return s.rate
}

// Play mixes st into the output.
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

var _ audio.Output = (*Speaker)(nil)
