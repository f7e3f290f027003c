//go:build ebiten

package render

import (
	"image"
	"image/color"
	"math"

	"easygame/internal/art"
	"easygame/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Sprites renders a world into an ebiten image, scaled by an integer factor.
type Sprites struct {
	dst   *ebiten.Image
	scale float64
	cache map[*art.Sprite]*ebiten.Image
}

// NewSprites returns a renderer drawing at the given pixel scale.
func NewSprites(scale int) *Sprites {
	if scale < 1 {
		scale = 1
	}
	return &Sprites{scale: float64(scale), cache: map[*art.Sprite]*ebiten.Image{}}
}

// Begin targets dst for the following draw calls.
func (s *Sprites) Begin(dst *ebiten.Image) { s.dst = dst }

// Scale returns the pixel scale.
func (s *Sprites) Scale() float64 { return s.scale }

func (s *Sprites) texture(img world.Image) *ebiten.Image {
	sp, ok := img.(*art.Sprite)
	if !ok || sp.Pixels == nil {
		return nil
	}
	if tex, ok := s.cache[sp]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(sp.Pixels)
	s.cache[sp] = tex
	return tex
}

// DrawTile draws img with its top-left corner at (x, y).
func (s *Sprites) DrawTile(img world.Image, x, y float64) {
	tex := s.texture(img)
	if tex == nil || s.dst == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Scale(s.scale, s.scale)
	s.dst.DrawImage(tex, op)
}

// DrawSprite draws img centered on pos, rotated clockwise by rotation degrees
// and mirrored horizontally when flipped.
func (s *Sprites) DrawSprite(img world.Image, pos world.Vec2, rotation float64, flipped bool) {
	tex := s.texture(img)
	if tex == nil || s.dst == nil {
		return
	}
	b := tex.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	if flipped {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Rotate(rotation * math.Pi / 180)
	op.GeoM.Translate(pos.X, pos.Y)
	op.GeoM.Scale(s.scale, s.scale)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(tex, op)
}

// DrawText draws text centered on pos in the basic 7x13 face.
func (s *Sprites) DrawText(str string, pos world.Vec2) {
	if s.dst == nil {
		return
	}
	face := basicfont.Face7x13
	bounds := text.BoundString(face, str)
	x := int(pos.X*s.scale) - bounds.Dx()/2
	y := int(pos.Y*s.scale) + face.Metrics().Ascent.Ceil()/2
	shadow := image.Pt(1, 1)
	text.Draw(s.dst, str, face, x+shadow.X, y+shadow.Y, color.RGBA{A: 200})
	text.Draw(s.dst, str, face, x, y, color.White)
}
