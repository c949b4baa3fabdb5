package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/breakouttest"
)

func TestDrawFlipsY(t *testing.T) {
	p := breakout.DefaultParams()
	w := ecs.NewWorld()
	breakout.SpawnCamera(w, p)
	w.Create(ecs.Text{ID: "top", Text: "TOP", Color: core.White, X: p.FieldWidth / 2, Y: p.FieldHeight - 1})
	w.Create(ecs.Text{ID: "bottom", Text: "BOTTOM", Color: core.White, X: p.FieldWidth / 2, Y: 1})

	s := core.NewScreen(40, 20)
	Draw(s, w, nil, p.FieldWidth, p.FieldHeight)

	rows := strings.Split(s.String(), "\n")
	if !strings.Contains(rows[0], "TOP") {
		t.Errorf("high y must be drawn on the first row, got %q", rows[0])
	}
	if !strings.Contains(rows[19], "BOTTOM") {
		t.Errorf("low y must be drawn on the last row, got %q", rows[19])
	}
}

func TestDrawSkipsHidden(t *testing.T) {
	p := breakout.DefaultParams()
	w := ecs.NewWorld()
	e := w.Create(ecs.Text{ID: "title", Text: "TITLE", Color: core.White, X: p.FieldWidth / 2, Y: p.FieldHeight / 2})
	if err := w.SetHidden(e, true); err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(40, 20)
	Draw(s, w, nil, p.FieldWidth, p.FieldHeight)

	if strings.Contains(s.String(), "TITLE") {
		t.Error("hidden text was drawn")
	}
}

func TestDrawZOrder(t *testing.T) {
	p := breakout.DefaultParams()
	w := ecs.NewWorld()
	sprites := breakouttest.Sprites()

	if _, err := breakout.SpawnBall(w, sprites, p); err != nil {
		t.Fatal(err)
	}
	if _, err := breakout.SpawnBackground(w, sprites, p); err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(54, 30)
	Draw(s, w, sprites, p.FieldWidth, p.FieldHeight)

	out := s.String()
	if !strings.Contains(out, "o") {
		t.Error("ball must be drawn over the background")
	}
	if !strings.Contains(out, ".") {
		t.Error("background not drawn")
	}
}

func TestDrawWithoutSprites(t *testing.T) {
	p := breakout.DefaultParams()
	w := ecs.NewWorld()
	if _, err := breakout.SpawnBall(w, breakouttest.Sprites(), p); err != nil {
		t.Fatal(err)
	}

	s := core.NewScreen(20, 10)
	Draw(s, w, nil, p.FieldWidth, p.FieldHeight)

	if strings.TrimSpace(s.String()) != "" {
		t.Error("sprites must not be drawn before loading")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextStyled(0, 0, "hi", core.Cell{Hex: "#ffffff"})
	s.DrawRect(core.NewRect(0, 1, 3, 1), '#', core.ColorRed)

	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "###") {
		t.Errorf("RenderScreen lost content: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
