package core

import "strings"

// CharGrid stores a 2D grid of runes in row-major order. Text backends paint
// into it before flushing rows to their output.
type CharGrid struct {
	W, H int
	data []rune
}

// NewCharGrid allocates a grid with the given dimensions, filled with spaces.
func NewCharGrid(w, h int) *CharGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &CharGrid{W: w, H: h, data: make([]rune, w*h)}
	g.Clear(' ')
	return g
}

// Index returns the linear slice index for coordinates (x, y).
func (g *CharGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *CharGrid) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// Set writes r at (x, y). Writes outside the grid are dropped.
func (g *CharGrid) Set(x, y int, r rune) {
	if !g.In(x, y) {
		return
	}
	g.data[g.Index(x, y)] = r
}

// At returns the rune at (x, y), or 0 outside the grid.
func (g *CharGrid) At(x, y int) rune {
	if !g.In(x, y) {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// WriteString writes s starting at (x, y), clipped to the grid.
func (g *CharGrid) WriteString(x, y int, s string) {
	for _, r := range s {
		g.Set(x, y, r)
		x++
	}
}

// Clear fills the grid with r.
func (g *CharGrid) Clear(r rune) {
	for i := range g.data {
		g.data[i] = r
	}
}

// String renders the grid as newline-separated rows.
func (g *CharGrid) String() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		b.WriteString(string(g.data[y*g.W : (y+1)*g.W]))
		b.WriteByte('\n')
	}
	return b.String()
}
