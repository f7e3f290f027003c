package render

import (
	"image"
	"image/color"

	"easygame/internal/art"
	"easygame/internal/world"
)

// appearance picks the glyph and colour a text backend shows for img.
// Catalog sprites carry both; other images fall back to '*' tinted with the
// average of their opaque pixels.
func appearance(img world.Image) (rune, color.RGBA) {
	if s, ok := img.(*art.Sprite); ok {
		g := s.Glyph
		if g == 0 {
			g = '*'
		}
		return g, s.Color
	}
	if px, ok := img.(image.Image); ok {
		return '*', averageRGBA(px)
	}
	return '*', color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// averageRGBA averages the opaque pixels of img. Fully transparent images
// average to opaque white.
func averageRGBA(img image.Image) color.RGBA {
	var r, g, b, n uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			b += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}
