package breakout

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// PaddleSystem moves the player paddle along the horizontal axis.
type PaddleSystem struct {
	FieldWidth float64
	Speed      float64 // Units per second at full axis
}

// Run applies dx = dt * Speed * axis to every player paddle and clamps it
// inside the field. An idle axis leaves the paddle untouched.
func (s PaddleSystem) Run(w *ecs.World, axis, dt float64) {
	if axis == 0 {
		return
	}
	for e := range w.Query(ecs.MaskPaddle | ecs.MaskTransform) {
		p, _ := w.Paddle(e)
		if p.Role != ecs.RolePlayer {
			continue
		}
		t, _ := w.Transform(e)
		half := p.Width / 2
		x := t.X + dt*s.Speed*axis
		t.X = max(min(x, s.FieldWidth-half), half)
	}
}

// BallSystem integrates ball positions.
type BallSystem struct{}

// Run advances every ball by velocity * dt. Positions are never clamped;
// keeping balls inside the field is the collision pass's job.
func (BallSystem) Run(w *ecs.World, dt float64) {
	for e := range w.Query(ecs.MaskBall | ecs.MaskTransform) {
		b, _ := w.Ball(e)
		t, _ := w.Transform(e)
		t.X += b.VX * dt
		t.Y += b.VY * dt
	}
}

// CollisionSystem reflects balls off walls and paddles and removes bricks.
//
// Reflection only ever negates a velocity component. Every satisfied overlap
// applies its effect: a ball touching two bricks in one frame destroys both
// and flips twice.
type CollisionSystem struct {
	FieldWidth  float64
	FieldHeight float64

	// Strict turns a failed brick deletion into a panic.
	Strict bool
	Logger *log.Logger
}

// Run resolves collisions for every ball. Sounds are only requested, never played here.
func (s *CollisionSystem) Run(w *ecs.World, sounds core.SoundSink) {
	if sounds == nil {
		sounds = core.Mute
	}
	for e := range w.Query(ecs.MaskBall | ecs.MaskTransform) {
		b, _ := w.Ball(e)
		t, _ := w.Transform(e)
		x, y, r := t.X, t.Y, b.Radius

		if (y <= r && b.VY < 0) || (y >= s.FieldHeight-r && b.VY > 0) {
			b.VY = -b.VY
			sounds.Play(core.SoundWallHit)
		}
		if (x <= r && b.VX < 0) || (x >= s.FieldWidth-r && b.VX > 0) {
			b.VX = -b.VX
			sounds.Play(core.SoundWallHit)
		}

		s.resolvePaddles(w, b, x, y, sounds)
	}
}

func (s *CollisionSystem) resolvePaddles(w *ecs.World, b *ecs.Ball, x, y float64, sounds core.SoundSink) {
	for pe := range w.Query(ecs.MaskPaddle | ecs.MaskTransform) {
		p, _ := w.Paddle(pe)
		pt, _ := w.Transform(pe)
		if !p.Bounds(*pt).Expand(b.Radius).Contains(x, y) {
			continue
		}

		switch p.Role {
		case ecs.RolePlayer:
			if b.VY < 0 {
				b.VY = -b.VY
				sounds.Play(core.SoundPaddleHit)
			}
		default:
			if err := w.Delete(pe); err != nil {
				s.deleteFailed(pe, err)
			}
			b.VY = -b.VY
			sounds.Play(core.SoundBrickHit)
		}
	}
}

func (s *CollisionSystem) deleteFailed(e ecs.Entity, err error) {
	if s.Strict {
		panic(err)
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	if errors.Is(err, core.ErrNotFound) {
		logger.Error("brick deleted twice", "entity", e, "err", err)
		return
	}
	logger.Error("brick delete failed", "entity", e, "err", err)
}
