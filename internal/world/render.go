package world

import "image"

// Image is an opaque resolved image handle. Only its bounds matter here: they
// feed the collision radius and the background tiling step.
type Image interface {
	Bounds() image.Rectangle
}

// ImageResolver turns symbolic image names into loaded images.
type ImageResolver interface {
	Resolve(name string) (Image, error)
}

// Renderer consumes the draw calls produced by World.Draw.
type Renderer interface {
	// DrawTile draws img with its top-left corner at (x, y).
	DrawTile(img Image, x, y float64)
	// DrawSprite draws img centered on pos, rotated by rotation degrees.
	DrawSprite(img Image, pos Vec2, rotation float64, flipped bool)
	// DrawText draws text centered on pos.
	DrawText(text string, pos Vec2)
}
