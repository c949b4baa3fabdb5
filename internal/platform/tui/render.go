package tui

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/assets"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func cellStyle(c core.Cell) lipgloss.Style {
	if c.Hex != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex))
	}
	if style, ok := colorStyles[c.Color]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != first.Color || cell.Hex != first.Hex {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(cellStyle(first).Render(run.String()))
		}
	}
	return sb.String()
}

// projection maps field units (y up) to screen cells (y down).
type projection struct {
	left, top      float64
	scaleX, scaleY float64
}

// newProjection fits the camera view, or the whole field when the world
// has no camera yet, onto a screen of w by h cells.
func newProjection(world *ecs.World, fieldW, fieldH float64, w, h int) projection {
	cx, cy, vw, vh := fieldW/2, fieldH/2, fieldW, fieldH
	for e := range world.Query(ecs.MaskCamera | ecs.MaskTransform) {
		t, _ := world.Transform(e)
		c, _ := world.Camera(e)
		if t != nil && c != nil && c.Width > 0 && c.Height > 0 {
			cx, cy, vw, vh = t.X, t.Y, c.Width, c.Height
		}
		break
	}
	return projection{
		left:   cx - vw/2,
		top:    cy + vh/2,
		scaleX: float64(w) / vw,
		scaleY: float64(h) / vh,
	}
}

func (p projection) cell(x, y float64) (int, int) {
	return int(math.Floor((x - p.left) * p.scaleX)), int(math.Floor((p.top - y) * p.scaleY))
}

// rect projects a box centered on (x, y). It is never smaller than one cell.
func (p projection) rect(x, y, w, h float64) core.Rect {
	x0, y0 := p.cell(x-w/2, y+h/2)
	x1, y1 := p.cell(x+w/2, y-h/2)
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

type drawable struct {
	z    float64
	rect core.Rect
	info assets.SpriteInfo
}

// Draw renders every visible sprite in Z order, then the visible UI texts.
// Sprites are skipped until sprites is non-nil.
func Draw(s *core.Screen, world *ecs.World, sprites *assets.Registry, fieldW, fieldH float64) {
	s.Clear()
	proj := newProjection(world, fieldW, fieldH, s.Width(), s.Height())

	if sprites != nil {
		var items []drawable
		for e := range world.Query(ecs.MaskSprite | ecs.MaskTransform) {
			if world.Has(e, ecs.MaskHidden) {
				continue
			}
			t, err := world.Transform(e)
			if err != nil {
				continue
			}
			sp, err := world.Sprite(e)
			if err != nil {
				continue
			}
			info, ok := sprites.SpriteAt(sp.Sheet, sp.Index)
			if !ok {
				continue
			}
			items = append(items, drawable{
				z:    t.Z,
				rect: proj.rect(t.X, t.Y, info.Width*t.ScaleX, info.Height*t.ScaleY),
				info: info,
			})
		}
		slices.SortStableFunc(items, func(a, b drawable) int { return cmp.Compare(a.z, b.z) })
		for _, it := range items {
			s.DrawRect(it.rect, it.info.Glyph, it.info.Color)
		}
	}

	for e := range world.Query(ecs.MaskText) {
		if world.Has(e, ecs.MaskHidden) {
			continue
		}
		t, err := world.Text(e)
		if err != nil {
			continue
		}
		col, row := proj.cell(t.X, t.Y)
		col -= len([]rune(t.Text)) / 2
		s.DrawTextStyled(col, row, t.Text, core.Cell{Hex: t.Color.Hex()})
	}
}
