package render

import (
	"easygame/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Terminal renders a world onto a tcell screen. Actors become coloured glyphs
// and background tiles set the cell background colour.
type Terminal struct {
	screen tcell.Screen
	proj   Projection
	bg     [][]tcell.Color
}

// NewTerminal returns a renderer filling the whole screen with a world of
// the given size.
func NewTerminal(screen tcell.Screen, worldW, worldH int) *Terminal {
	t := &Terminal{screen: screen}
	t.Resize(worldW, worldH)
	return t
}

// Resize recomputes the projection after the screen or world changed size.
func (t *Terminal) Resize(worldW, worldH int) {
	cols, rows := t.screen.Size()
	t.proj = NewProjection(cols, rows, worldW, worldH)
	t.bg = make([][]tcell.Color, t.proj.Rows)
	for i := range t.bg {
		t.bg[i] = make([]tcell.Color, t.proj.Cols)
	}
}

// Projection exposes the current world-to-cell mapping.
func (t *Terminal) Projection() Projection { return t.proj }

// Begin clears the screen for a new frame.
func (t *Terminal) Begin() {
	t.screen.Clear()
	for _, row := range t.bg {
		for i := range row {
			row[i] = tcell.ColorDefault
		}
	}
}

// DrawTile paints the covered cells in the tile's colour.
func (t *Terminal) DrawTile(img world.Image, x, y float64) {
	_, col := appearance(img)
	c := tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))
	style := tcell.StyleDefault.Background(c)
	b := img.Bounds()
	c0, r0, c1, r1 := t.proj.Span(x, y, float64(b.Dx()), float64(b.Dy()))
	for row := r0; row < r1; row++ {
		for cx := c0; cx < c1; cx++ {
			t.bg[row][cx] = c
			t.screen.SetContent(cx, row, ' ', nil, style)
		}
	}
}

// DrawSprite draws the actor's glyph in its colour.
func (t *Terminal) DrawSprite(img world.Image, pos world.Vec2, _ float64, _ bool) {
	cx, row, ok := t.proj.Cell(pos)
	if !ok {
		return
	}
	glyph, col := appearance(img)
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))).
		Background(t.bg[row][cx])
	t.screen.SetContent(cx, row, glyph, nil, style)
}

// DrawText writes bold white text centered on pos.
func (t *Terminal) DrawText(text string, pos world.Vec2) {
	cx, row := t.proj.textStart(text, pos)
	if row < 0 || row >= t.proj.Rows {
		return
	}
	for _, r := range text {
		if cx >= 0 && cx < t.proj.Cols {
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(t.bg[row][cx]).Bold(true)
			t.screen.SetContent(cx, row, r, nil, style)
		}
		cx++
	}
}
