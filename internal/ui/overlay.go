//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"easygame/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay outlines every live actor's collision circle and heading.
type Overlay struct {
	scale float64
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay drawing at the given pixel scale.
func NewOverlay(scale int) *Overlay {
	if scale < 1 {
		scale = 1
	}
	o := &Overlay{scale: float64(scale)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the collision shapes of w onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, w *world.World) {
	circle := color.RGBA{R: 80, G: 255, B: 120, A: 200}
	facing := color.RGBA{R: 255, G: 220, B: 60, A: 220}
	for _, s := range collisionShapes(w) {
		cx, cy := s.center.X*o.scale, s.center.Y*o.scale
		r := s.radius * o.scale
		o.drawCircle(screen, cx, cy, r, circle)
		o.drawLine(screen, cx, cy, cx+s.heading.X*r, cy+s.heading.Y*r, 1, facing)
		o.drawPoint(screen, cx, cy, 2, facing)
	}
}

func (o *Overlay) drawCircle(screen *ebiten.Image, cx, cy, r float64, col color.RGBA) {
	segments := int(math.Max(12, math.Min(48, r)))
	step := 2 * math.Pi / float64(segments)
	px, py := cx+r, cy
	for i := 1; i <= segments; i++ {
		a := float64(i) * step
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		o.drawLine(screen, px, py, x, y, 1, col)
		px, py = x, y
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
