package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// Draw order of spawned entities. Larger values are drawn on top.
const (
	ZBackground = 1.1
	ZPaddle     = 1.2
	ZBall       = 1.3
	ZCamera     = 10
)

// Sprites resolves sprite metadata. *assets.Registry implements it.
type Sprites interface {
	Sprite(kind assets.Kind) (assets.SpriteInfo, error)
}

func sprite(info assets.SpriteInfo) ecs.Sprite {
	return ecs.Sprite{Sheet: info.Sheet, Index: info.Index}
}

// SpawnPaddle creates the player paddle centered horizontally at PaddleY.
func SpawnPaddle(w *ecs.World, sprites Sprites, p Params) (ecs.Entity, error) {
	info, err := sprites.Sprite(assets.KindPaddleMedium)
	if err != nil {
		return 0, fmt.Errorf("spawn paddle: %w", err)
	}
	return w.Create(
		ecs.NewTransform(p.FieldWidth/2, p.PaddleY, ZPaddle),
		ecs.Paddle{Width: info.Width, Height: info.Height, Role: ecs.RolePlayer},
		sprite(info),
	), nil
}

// SpawnBall creates the ball at the field center with velocity (-V, -V),
// heading left and down toward the paddle.
func SpawnBall(w *ecs.World, sprites Sprites, p Params) (ecs.Entity, error) {
	info, err := sprites.Sprite(assets.KindBall)
	if err != nil {
		return 0, fmt.Errorf("spawn ball: %w", err)
	}
	return w.Create(
		ecs.NewTransform(p.FieldWidth/2, p.FieldHeight/2, ZBall),
		ecs.Ball{VX: -p.BallSpeed, VY: -p.BallSpeed, Radius: info.Width / 2},
		sprite(info),
	), nil
}

// SpawnBricks creates the brick grid, row by row.
func SpawnBricks(w *ecs.World, sprites Sprites, p Params) ([]ecs.Entity, error) {
	info, err := sprites.Sprite(assets.KindPaddleSmall)
	if err != nil {
		return nil, fmt.Errorf("spawn bricks: %w", err)
	}

	l := p.Layout
	originX := p.FieldWidth / l.BrickOriginX
	originY := p.FieldHeight / l.BrickOriginY

	bricks := make([]ecs.Entity, 0, l.BrickRows*l.BrickCols)
	for row := range l.BrickRows {
		for col := range l.BrickCols {
			x := originX + float64(col)*(info.Width+l.BrickGapX)
			y := originY + float64(row)*(info.Height+l.BrickGapY)
			bricks = append(bricks, w.Create(
				ecs.NewTransform(x, y, ZPaddle),
				ecs.Paddle{Width: info.Width, Height: info.Height, Role: ecs.RoleBrick},
				sprite(info),
			))
		}
	}
	return bricks, nil
}

// SpawnBackground creates the background sprite stretched over the field.
// The sheet's one-unit border on each side is cropped by the scale.
func SpawnBackground(w *ecs.World, sprites Sprites, p Params) (ecs.Entity, error) {
	info, err := sprites.Sprite(assets.KindBackground)
	if err != nil {
		return 0, fmt.Errorf("spawn background: %w", err)
	}
	t := ecs.NewTransform(p.FieldWidth/2, p.FieldHeight/2, ZBackground)
	if info.Width > 2 {
		t.ScaleX = p.FieldWidth / (info.Width - 2)
	}
	if info.Height > 2 {
		t.ScaleY = p.FieldHeight / (info.Height - 2)
	}
	return w.Create(t, sprite(info)), nil
}

// SpawnCamera creates the camera looking at the whole field.
func SpawnCamera(w *ecs.World, p Params) ecs.Entity {
	return w.Create(
		ecs.NewTransform(p.FieldWidth/2, p.FieldHeight/2, ZCamera),
		ecs.Camera{Width: p.FieldWidth, Height: p.FieldHeight},
	)
}

// SpawnPlay creates everything a round of play needs.
func SpawnPlay(w *ecs.World, sprites Sprites, p Params) error {
	if _, err := SpawnPaddle(w, sprites, p); err != nil {
		return err
	}
	if _, err := SpawnBall(w, sprites, p); err != nil {
		return err
	}
	_, err := SpawnBricks(w, sprites, p)
	return err
}
