// Package render draws worlds. The ebiten renderer (build tag ebiten) paints
// sprites into a window; the text renderers map world pixels onto character
// cells for terminals and logs.
package render

import (
	"math"
	"unicode/utf8"

	"easygame/internal/world"
)

// Projection maps world coordinates onto a grid of character cells.
type Projection struct {
	Cols, Rows int
	sx, sy     float64
}

// NewProjection scales a worldW by worldH world onto cols by rows cells.
func NewProjection(cols, rows, worldW, worldH int) Projection {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if worldW < 1 {
		worldW = 1
	}
	if worldH < 1 {
		worldH = 1
	}
	return Projection{
		Cols: cols,
		Rows: rows,
		sx:   float64(cols) / float64(worldW),
		sy:   float64(rows) / float64(worldH),
	}
}

// Cell returns the cell containing p and whether it lies on the grid. Points
// on the far world edge map to the last row or column.
func (p Projection) Cell(pos world.Vec2) (int, int, bool) {
	col := int(math.Floor(pos.X * p.sx))
	row := int(math.Floor(pos.Y * p.sy))
	if col == p.Cols {
		col--
	}
	if row == p.Rows {
		row--
	}
	return col, row, col >= 0 && col < p.Cols && row >= 0 && row < p.Rows
}

// Span returns the half-open cell rectangle covered by a w by h area at
// (x, y), clipped to the grid.
func (p Projection) Span(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0 = clampInt(int(math.Floor(x*p.sx)), 0, p.Cols)
	r0 = clampInt(int(math.Floor(y*p.sy)), 0, p.Rows)
	c1 = clampInt(int(math.Ceil((x+w)*p.sx)), 0, p.Cols)
	r1 = clampInt(int(math.Ceil((y+h)*p.sy)), 0, p.Rows)
	return c0, r0, c1, r1
}

// textStart returns the first column of text centered on pos.
func (p Projection) textStart(text string, pos world.Vec2) (int, int) {
	col, row, _ := p.Cell(pos)
	return col - utf8.RuneCountInString(text)/2, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
