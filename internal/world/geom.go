package world

import "math"

// Vec2 is a position or direction in world coordinates. Y grows downwards.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 { return b.Sub(a).Len() }

// Heading converts a rotation in degrees into a unit vector. 0 faces +X and
// positive angles turn clockwise on screen.
func Heading(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// AngleTo returns the rotation in degrees that points from "from" towards "to".
func AngleTo(from, to Vec2) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// CirclesOverlap reports whether two circles overlap. Touching circles whose
// centers are exactly ra+rb apart do not overlap.
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return Distance(a, b) < ra+rb
}

// ImageRadius derives the collision radius of an image scaled by scale. A nil
// image yields the unloaded sentinel of 1.
func ImageRadius(img Image, scale float64) float64 {
	if img == nil {
		return 1
	}
	b := img.Bounds()
	return scale * float64(b.Dx()+b.Dy()) / 4
}

// ClampInto clamps p into [0,w]×[0,h].
func ClampInto(p Vec2, w, h int) Vec2 {
	return Vec2{X: clamp(p.X, 0, float64(w)), Y: clamp(p.Y, 0, float64(h))}
}

// Outside reports whether p lies outside [0,w]×[0,h].
func Outside(p Vec2, w, h int) bool {
	return p.X < 0 || p.X > float64(w) || p.Y < 0 || p.Y > float64(h)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
