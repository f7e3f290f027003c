package art

import (
	"image"
	"image/color"
)

// newDisc returns a w*h image with a filled ellipse inscribed in it. Pixels
// outside the ellipse are transparent.
func newDisc(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx := float64(w) / 2
	cy := float64(h) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / cx
			dy := (float64(y) + 0.5 - cy) / cy
			if dx*dx+dy*dy > 1 {
				continue
			}
			setRGBA(img.Pix, img.PixOffset(x, y), col)
		}
	}
	return img
}

// newBlock returns a w*h image filled with col.
func newBlock(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		setRGBA(img.Pix, i*4, col)
	}
	return img
}

func setRGBA(buf []byte, base int, col color.RGBA) {
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}
