// Package config provides YAML-based game configuration loading and
// difficulty presets for breakout.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Layout   LayoutConfig   `yaml:"layout"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Bindings BindingsConfig `yaml:"bindings"`
}

// FieldConfig is the size of the play field in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines speeds and timers.
type PhysicsConfig struct {
	PaddleSpeed float64 `yaml:"paddle_speed"` // Units per second at full axis
	BallSpeed   float64 `yaml:"ball_speed"`   // Initial speed per axis, units per second
	Debounce    float64 `yaml:"debounce"`     // Seconds Space is ignored after resuming
}

// LayoutConfig defines where entities are spawned when play starts.
type LayoutConfig struct {
	PaddleY      float64 `yaml:"paddle_y"`
	BrickRows    int     `yaml:"brick_rows"`
	BrickCols    int     `yaml:"brick_cols"`
	BrickOriginX float64 `yaml:"brick_origin_x"` // Divisor of the field width
	BrickOriginY float64 `yaml:"brick_origin_y"` // Divisor of the field height
	BrickGapX    float64 `yaml:"brick_gap_x"`
	BrickGapY    float64 `yaml:"brick_gap_y"`
}

// AudioConfig defines sound playback.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// AssetsConfig points at the asset directory. Empty means the embedded set.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// BindingsConfig maps each input to the terminal keys that trigger it.
type BindingsConfig struct {
	Left   []string `yaml:"left"`
	Right  []string `yaml:"right"`
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Return []string `yaml:"return"`
	Space  []string `yaml:"space"`
	Escape []string `yaml:"escape"`
}

// Validation errors.
var (
	ErrInvalidField   = errors.New("config: field size must be positive")
	ErrInvalidPhysics = errors.New("config: speeds must be positive")
	ErrInvalidLayout  = errors.New("config: brick origin divisors must be positive")
)

// Validate rejects configurations the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("%w (got %gx%g)", ErrInvalidField, c.Field.Width, c.Field.Height)
	}
	if c.Physics.PaddleSpeed <= 0 || c.Physics.BallSpeed <= 0 {
		return fmt.Errorf("%w (paddle %g, ball %g)", ErrInvalidPhysics, c.Physics.PaddleSpeed, c.Physics.BallSpeed)
	}
	if c.Physics.Debounce < 0 {
		return fmt.Errorf("config: debounce must not be negative (got %g)", c.Physics.Debounce)
	}
	if c.Layout.BrickRows < 0 || c.Layout.BrickCols < 0 {
		return fmt.Errorf("config: brick grid must not be negative (got %dx%d)", c.Layout.BrickRows, c.Layout.BrickCols)
	}
	if c.Layout.BrickOriginX <= 0 || c.Layout.BrickOriginY <= 0 {
		return fmt.Errorf("%w (got %g, %g)", ErrInvalidLayout, c.Layout.BrickOriginX, c.Layout.BrickOriginY)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: volume must be in [0, 1] (got %g)", c.Audio.Volume)
	}
	return nil
}
