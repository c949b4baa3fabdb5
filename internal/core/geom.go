// Package core provides fundamental types shared by the simulation and the host.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Box is an axis-aligned box in field units. The field's y axis points up.
type Box struct {
	Left, Bottom float64
	Right, Top   float64
}

// BoxAround returns the box of size w×h centered on (cx, cy).
func BoxAround(cx, cy, w, h float64) Box {
	return Box{
		Left:   cx - w*0.5,
		Bottom: cy - h*0.5,
		Right:  cx + w*0.5,
		Top:    cy + h*0.5,
	}
}

// Expand grows the box outward by d on all four sides.
func (b Box) Expand(d float64) Box {
	return Box{
		Left:   b.Left - d,
		Bottom: b.Bottom - d,
		Right:  b.Right + d,
		Top:    b.Top + d,
	}
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Bottom && y <= b.Top
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.Top - b.Bottom
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
