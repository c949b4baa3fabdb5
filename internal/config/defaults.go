package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			Width:  432,
			Height: 243,
		},
		Physics: PhysicsConfig{
			PaddleSpeed: 200,
			BallSpeed:   70,
			Debounce:    0.25,
		},
		Layout: LayoutConfig{
			PaddleY:      16,
			BrickRows:    2,
			BrickCols:    9,
			BrickOriginX: 5.2,
			BrickOriginY: 1.2,
			BrickGapX:    2,
			BrickGapY:    4,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.15,
			SampleRate: 44100,
		},
		Bindings: BindingsConfig{
			Left:   []string{"left", "a", "h"},
			Right:  []string{"right", "d", "l"},
			Up:     []string{"up", "w", "k"},
			Down:   []string{"down", "s", "j"},
			Return: []string{"enter"},
			Space:  []string{" "},
			Escape: []string{"esc", "q", "ctrl+c"},
		},
	}
}
