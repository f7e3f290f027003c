package world

import "fmt"

// Kind tags a concrete actor type. The registry groups actors by kind and
// type-scoped queries take a kind.
type Kind string

// Member is implemented by every concrete actor. Embed Actor to get the base
// behaviour, then supply Kind and Act:
//
//	type Worm struct{ world.Actor }
//
//	func (*Worm) Kind() world.Kind    { return "worm" }
//	func (w *Worm) Act(f world.Frame) { w.Turn(3) }
type Member interface {
	Kind() Kind
	Act(f Frame)
	base() *Actor
}

// Updater is an optional per-frame hook. When a member implements it, the
// world calls Update instead of Act.
type Updater interface {
	Update(f Frame)
}

// Actor is the embeddable base of every member: a positioned, rotatable image
// with a circular collision shape.
type Actor struct {
	pos         Vec2
	rotation    float64
	flipped     bool
	scaleRadius float64
	imageName   string
	image       Image

	// world is non-nil exactly while the actor is live in that world.
	world *World
}

func (a *Actor) base() *Actor { return a }

// ActorOf returns the embedded base of m, or nil for a nil member.
func ActorOf(m Member) *Actor {
	if m == nil {
		return nil
	}
	return m.base()
}

// World returns the world the actor is live in, or nil.
func (a *Actor) World() *World { return a.world }

// Position returns the actor's center.
func (a *Actor) Position() Vec2 { return a.pos }

// X returns the x coordinate of the actor's center.
func (a *Actor) X() float64 { return a.pos.X }

// Y returns the y coordinate of the actor's center.
func (a *Actor) Y() float64 { return a.pos.Y }

// SetPosition moves the actor's center to (x, y).
func (a *Actor) SetPosition(x, y float64) { a.pos = Vec2{X: x, Y: y} }

// SetX sets the x coordinate.
func (a *Actor) SetX(x float64) { a.pos.X = x }

// SetY sets the y coordinate.
func (a *Actor) SetY(y float64) { a.pos.Y = y }

// Rotation returns the rotation in degrees; 0 faces right, 90 faces down.
func (a *Actor) Rotation() float64 { return a.rotation }

// SetRotation sets the rotation in degrees.
func (a *Actor) SetRotation(deg float64) { a.rotation = deg }

// Flipped reports whether the image is mirrored horizontally.
func (a *Actor) Flipped() bool { return a.flipped }

// SetFlipped sets the horizontal mirror flag.
func (a *Actor) SetFlipped(v bool) { a.flipped = v }

// ImageName returns the symbolic name of the actor's image.
func (a *Actor) ImageName() string { return a.imageName }

// Image returns the resolved image, or nil before the actor is committed.
func (a *Actor) Image() Image { return a.image }

// ScaleRadius returns the factor applied to the image-derived radius.
func (a *Actor) ScaleRadius() float64 {
	if a.scaleRadius == 0 {
		return 1
	}
	return a.scaleRadius
}

// SetScaleRadius sets the radius factor. Zero restores the default of 1.
func (a *Actor) SetScaleRadius(s float64) { a.scaleRadius = s }

// Radius returns the collision radius: a quarter of the image's width plus
// height, scaled, or 1 while no image is resolved.
func (a *Actor) Radius() (float64, error) {
	if a.world == nil {
		return 0, fmt.Errorf("radius: %w", ErrInvalidState)
	}
	return a.radius(), nil
}

func (a *Actor) radius() float64 {
	return ImageRadius(a.image, a.ScaleRadius())
}

// Move translates the actor distance units along its heading.
func (a *Actor) Move(distance float64) error {
	if a.world == nil {
		return fmt.Errorf("move: %w", ErrInvalidState)
	}
	a.pos = a.pos.Add(Heading(a.rotation).Scale(distance))
	return nil
}

// Turn adds deg to the rotation.
func (a *Actor) Turn(deg float64) { a.rotation += deg }

// TurnTowards points the actor at (x, y).
func (a *Actor) TurnTowards(x, y float64) {
	a.rotation = AngleTo(a.pos, Vec2{X: x, Y: y})
}

// Intersects reports whether the collision circles of a and other overlap.
// It is false for a itself, whenever either actor is not live, and for actors
// of different worlds.
func (a *Actor) Intersects(other Member) bool {
	if other == nil {
		return false
	}
	o := other.base()
	if o == a || a.world == nil || o.world != a.world {
		return false
	}
	return CirclesOverlap(a.pos, a.radius(), o.pos, o.radius())
}

// IsAtEdge reports whether the actor's center lies outside the world bounds.
// An actor without a world is never at the edge.
func (a *Actor) IsAtEdge() bool {
	if a.world == nil {
		return false
	}
	return Outside(a.pos, a.world.width, a.world.height)
}

// GetOneIntersectingActor returns the first live actor of kind intersecting
// a, in registry order, or nil.
func (a *Actor) GetOneIntersectingActor(kind Kind) Member {
	if a.world == nil {
		return nil
	}
	for _, m := range a.world.reg.group(kind) {
		if m.base().world == a.world && a.Intersects(m) {
			return m
		}
	}
	return nil
}

// GetAllIntersectingActors returns every live actor of kind intersecting a.
func (a *Actor) GetAllIntersectingActors(kind Kind) []Member {
	if a.world == nil {
		return nil
	}
	var found []Member
	for _, m := range a.world.reg.group(kind) {
		if m.base().world == a.world && a.Intersects(m) {
			found = append(found, m)
		}
	}
	return found
}

// GetActorsInRange returns the live actors of kind whose centers lie within r
// of a's center, excluding a.
func (a *Actor) GetActorsInRange(kind Kind, r float64) []Member {
	if a.world == nil {
		return nil
	}
	var found []Member
	for _, m := range a.world.reg.group(kind) {
		o := m.base()
		if o == a || o.world != a.world {
			continue
		}
		if Distance(a.pos, o.pos) <= r {
			found = append(found, m)
		}
	}
	return found
}

// IsTouching reports whether any live actor of kind intersects a.
func (a *Actor) IsTouching(kind Kind) bool {
	return a.GetOneIntersectingActor(kind) != nil
}

// RemoveTouching removes one intersecting actor of kind from the world and
// returns it. Call IsTouching first; when nothing touches it does nothing.
func (a *Actor) RemoveTouching(kind Kind) Member {
	m := a.GetOneIntersectingActor(kind)
	if m == nil {
		return nil
	}
	a.world.RemoveActor(m)
	return m
}
