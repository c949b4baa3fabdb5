// Package breakout is the per-frame simulation: paddle movement, ball
// integration and collision resolution over an ecs.World.
package breakout

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// Params are the tunables the systems and spawners read.
type Params struct {
	FieldWidth  float64
	FieldHeight float64
	PaddleSpeed float64
	BallSpeed   float64
	PaddleY     float64
	Layout      config.LayoutConfig
}

// ParamsFromConfig extracts simulation parameters from the game config.
func ParamsFromConfig(cfg config.BreakoutConfig) Params {
	return Params{
		FieldWidth:  cfg.Field.Width,
		FieldHeight: cfg.Field.Height,
		PaddleSpeed: cfg.Physics.PaddleSpeed,
		BallSpeed:   cfg.Physics.BallSpeed,
		PaddleY:     cfg.Layout.PaddleY,
		Layout:      cfg.Layout,
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultBreakoutConfig())
}

// Dispatcher runs the systems in their fixed order: paddle, ball, collision.
type Dispatcher struct {
	paddle    PaddleSystem
	ball      BallSystem
	collision *CollisionSystem
	ticks     uint64
}

// NewDispatcher creates a dispatcher for the given parameters.
func NewDispatcher(p Params, strict bool, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		paddle: PaddleSystem{FieldWidth: p.FieldWidth, Speed: p.PaddleSpeed},
		collision: &CollisionSystem{
			FieldWidth:  p.FieldWidth,
			FieldHeight: p.FieldHeight,
			Strict:      strict,
			Logger:      logger,
		},
	}
}

// Step advances the simulation by dt seconds.
func (d *Dispatcher) Step(w *ecs.World, axis, dt float64, sounds core.SoundSink) {
	d.paddle.Run(w, axis, dt)
	d.ball.Run(w, dt)
	d.collision.Run(w, sounds)
	w.Maintain()
	d.ticks++
}

// Ticks returns how many steps have run.
func (d *Dispatcher) Ticks() uint64 {
	return d.ticks
}

// BricksLeft counts the remaining bricks.
func BricksLeft(w *ecs.World) int {
	n := 0
	for e := range w.Query(ecs.MaskPaddle) {
		if p, _ := w.Paddle(e); p.Role == ecs.RoleBrick {
			n++
		}
	}
	return n
}
