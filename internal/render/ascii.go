package render

import (
	"easygame/internal/core"
	"easygame/internal/world"
)

// ASCII renders a world into a core.CharGrid, one glyph per actor.
type ASCII struct {
	proj Projection
	grid *core.CharGrid
}

// NewASCII returns a cols by rows renderer for a world of the given size.
func NewASCII(cols, rows, worldW, worldH int) *ASCII {
	p := NewProjection(cols, rows, worldW, worldH)
	return &ASCII{proj: p, grid: core.NewCharGrid(p.Cols, p.Rows)}
}

// Reset blanks the grid before a new frame.
func (a *ASCII) Reset() { a.grid.Clear(' ') }

// DrawTile fills the covered cells with the tile's glyph.
func (a *ASCII) DrawTile(img world.Image, x, y float64) {
	glyph, _ := appearance(img)
	b := img.Bounds()
	c0, r0, c1, r1 := a.proj.Span(x, y, float64(b.Dx()), float64(b.Dy()))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			a.grid.Set(col, row, glyph)
		}
	}
}

// DrawSprite marks the actor's cell with its glyph.
func (a *ASCII) DrawSprite(img world.Image, pos world.Vec2, _ float64, _ bool) {
	col, row, ok := a.proj.Cell(pos)
	if !ok {
		return
	}
	glyph, _ := appearance(img)
	a.grid.Set(col, row, glyph)
}

// DrawText writes text centered on pos.
func (a *ASCII) DrawText(text string, pos world.Vec2) {
	col, row := a.proj.textStart(text, pos)
	a.grid.WriteString(col, row, text)
}

// String returns the rendered rows.
func (a *ASCII) String() string { return a.grid.String() }
