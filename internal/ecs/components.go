package ecs

import "github.com/vovakirdan/tui-breakout/internal/core"

// Mask is a set of component kinds.
type Mask uint16

const (
	MaskTransform Mask = 1 << iota
	MaskPaddle
	MaskBall
	MaskSprite
	MaskText
	MaskHidden
	MaskCamera
)

// Component is implemented by every value the world can store.
type Component interface {
	mask() Mask
}

// Transform places an entity in the field. The y axis points up and
// larger Z values are drawn on top.
type Transform struct {
	X, Y, Z        float64
	ScaleX, ScaleY float64
}

// NewTransform returns a unit-scale transform at (x, y, z).
func NewTransform(x, y, z float64) Transform {
	return Transform{X: x, Y: y, Z: z, ScaleX: 1, ScaleY: 1}
}

func (Transform) mask() Mask { return MaskTransform }

// Role distinguishes the player paddle from bricks sharing the paddle shape.
type Role int

const (
	RoleBrick Role = iota
	RolePlayer
)

// String returns the role name.
func (r Role) String() string {
	if r == RolePlayer {
		return "player"
	}
	return "brick"
}

// Paddle is a paddle-like rectangle. Width and Height come from sprite
// metadata at spawn and never change afterwards.
type Paddle struct {
	Width  float64
	Height float64
	Role   Role
}

func (Paddle) mask() Mask { return MaskPaddle }

// Bounds returns the paddle's box centered on the transform.
func (p Paddle) Bounds(t Transform) core.Box {
	return core.BoxAround(t.X, t.Y, p.Width, p.Height)
}

// Ball is the moving ball. Velocity is in field units per second.
type Ball struct {
	VX, VY float64
	Radius float64
}

func (Ball) mask() Mask { return MaskBall }

// Sprite references a sprite inside a loaded sheet.
type Sprite struct {
	Sheet string
	Index int
}

func (Sprite) mask() Mask { return MaskSprite }

// Text is a named UI label whose text, color and visibility the modes mutate.
type Text struct {
	ID    string
	Text  string
	Color core.RGBA
	X, Y  float64 // Center of the label in field units
}

func (Text) mask() Mask { return MaskText }

// Hidden marks an entity the renderer must skip.
type Hidden struct{}

func (Hidden) mask() Mask { return MaskHidden }

// Camera describes the visible part of the field.
type Camera struct {
	Width, Height float64
}

func (Camera) mask() Mask { return MaskCamera }
