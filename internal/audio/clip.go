// Package audio plays the game's sound effects through gopxl/beep.
//
// Clips are decoded (or synthesized) once into memory buffers and replayed
// through a single mixer. Every failure on the playback path degrades to
// silence; only decoding reports errors.
package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is used when the configuration leaves it unset.
const DefaultSampleRate = beep.SampleRate(44100)

// Clip is a fully decoded sound held in memory.
type Clip struct {
	buf *beep.Buffer
}

// SynthSpec describes a generated sound effect.
type SynthSpec struct {
	Wave     string  `yaml:"wave"`
	Freq     float64 `yaml:"freq"`
	Sweep    float64 `yaml:"sweep"` // Hz added by the end of the clip
	Duration int     `yaml:"duration_ms"`
	Attack   int     `yaml:"attack_ms"`
	Release  int     `yaml:"release_ms"`
	Gain     float64 `yaml:"gain"` // 0 means 1
}

func format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// Decode reads a WAV stream into a clip resampled to rate.
func Decode(r io.Reader, rate beep.SampleRate) (*Clip, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	streamer, f, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if f.SampleRate != rate {
		s = beep.Resample(4, f.SampleRate, rate, streamer)
	}

	buf := beep.NewBuffer(format(rate))
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode wav: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: decode wav: no samples")
	}
	return &Clip{buf: buf}, nil
}

// Synthesize renders a generated effect into a clip.
func Synthesize(spec SynthSpec, rate beep.SampleRate) (*Clip, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	wave, err := ParseWave(spec.Wave)
	if err != nil {
		return nil, err
	}
	if spec.Duration <= 0 {
		return nil, fmt.Errorf("audio: synth duration must be positive (got %dms)", spec.Duration)
	}

	duration := time.Duration(spec.Duration) * time.Millisecond
	osc := NewOscillator(spec.Freq, spec.Sweep, duration, wave, rate)
	shaped := NewEnvelope(osc, duration,
		time.Duration(spec.Attack)*time.Millisecond,
		time.Duration(spec.Release)*time.Millisecond,
		rate)

	gain := spec.Gain
	if gain == 0 {
		gain = 1
	}

	buf := beep.NewBuffer(format(rate))
	buf.Append(newVolume(shaped, gain))
	return &Clip{buf: buf}, nil
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

// Len returns the clip length in samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}
