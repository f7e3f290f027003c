package world

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Text is an overlay string drawn centered on an exact coordinate.
type Text struct {
	Text string
	X, Y int
}

type textKey struct{ x, y int }

// World owns a set of actors grouped by kind and advances them one frame at a
// time. Additions and removals requested while actors run are queued and
// applied in the commit phase at the end of Update, so no group is modified
// while it is being iterated.
//
// A World is not safe for concurrent use; hosts drive it from one goroutine.
type World struct {
	width, height int
	bounded       bool

	reg      registry
	resolver ImageResolver

	background      string
	backgroundTile  Image
	backgroundDirty bool

	texts     []Text
	textIndex map[textKey]int

	actOrder   []Kind
	paintOrder []Kind

	closers []func()

	log *zap.Logger
}

// New returns an empty bounded world. Dimensions below 1 are raised to 1.
func New(width, height int) *World {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &World{
		width:     width,
		height:    height,
		bounded:   true,
		reg:       newRegistry(),
		textIndex: map[textKey]int{},
		log:       zap.NewNop(),
	}
}

// Width returns the world width in pixels.
func (w *World) Width() int { return w.width }

// Height returns the world height in pixels.
func (w *World) Height() int { return w.height }

// Bounded reports whether actors are clamped into the world after they act.
func (w *World) Bounded() bool { return w.bounded }

// SetBounded toggles boundary clamping.
func (w *World) SetBounded(v bool) { w.bounded = v }

// SetResolver installs the image source used when actors are committed. Without
// one, images stay unresolved and radii keep their sentinel value.
func (w *World) SetResolver(r ImageResolver) { w.resolver = r }

// SetLogger replaces the world's logger. A nil logger disables logging.
func (w *World) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	w.log = l
}

// SetBackground sets the image tiled behind the actors. It is resolved in the
// next commit phase.
func (w *World) SetBackground(name string) {
	w.background = name
	w.backgroundTile = nil
	w.backgroundDirty = name != ""
}

// Background returns the background image name.
func (w *World) Background() string { return w.background }

// SetActOrder makes the listed kinds act first, in the given order. Other kinds
// act afterwards in the order they were first committed.
func (w *World) SetActOrder(kinds ...Kind) { w.actOrder = slices.Clone(kinds) }

// SetPaintOrder stacks the listed kinds: the first one is painted on top of
// all others. Unlisted kinds are painted beneath every listed kind.
func (w *World) SetPaintOrder(kinds ...Kind) { w.paintOrder = slices.Clone(kinds) }

// Add places m at (x, y) with the given image. The actor joins the world in
// the next commit phase and is invisible to queries until then. Adding an
// actor that is pending or live again is a caller error and is not detected.
func (w *World) Add(m Member, imageName string, x, y float64) {
	if m == nil {
		return
	}
	a := m.base()
	a.imageName = imageName
	a.pos = Vec2{X: x, Y: y}
	w.reg.enqueueAdd(m)
}

// RemoveActor takes m out of the world. Queries stop seeing it immediately;
// its index entry is dropped in the next commit phase. Removing twice is safe.
func (w *World) RemoveActor(m Member) {
	if m == nil {
		return
	}
	a := m.base()
	if a.world == w {
		a.world = nil
	}
	w.reg.enqueueRemove(m)
}

// GetActors returns the live actors of kind in insertion order, or nil.
func (w *World) GetActors(kind Kind) []Member {
	var live []Member
	for _, m := range w.reg.group(kind) {
		if m.base().world == w {
			live = append(live, m)
		}
	}
	return live
}

// Count returns the number of live actors of kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, m := range w.reg.group(kind) {
		if m.base().world == w {
			n++
		}
	}
	return n
}

// Kinds returns every kind committed so far in act order.
func (w *World) Kinds() []Kind {
	return w.orderedKinds(w.actOrder)
}

// Pending returns the lengths of the addition and removal queues.
func (w *World) Pending() (adds, removes int) {
	return len(w.reg.adds), len(w.reg.removes)
}

// ShowText shows text centered on (x, y), replacing any text already there.
func (w *World) ShowText(text string, x, y int) {
	key := textKey{x: x, y: y}
	if i, ok := w.textIndex[key]; ok {
		w.texts[i].Text = text
		return
	}
	w.textIndex[key] = len(w.texts)
	w.texts = append(w.texts, Text{Text: text, X: x, Y: y})
}

// ClearText removes the text at (x, y), if any.
func (w *World) ClearText(x, y int) {
	key := textKey{x: x, y: y}
	i, ok := w.textIndex[key]
	if !ok {
		return
	}
	w.texts = slices.Delete(w.texts, i, i+1)
	delete(w.textIndex, key)
	for j := i; j < len(w.texts); j++ {
		w.textIndex[textKey{x: w.texts[j].X, y: w.texts[j].Y}] = j
	}
}

// Texts returns the overlays in the order they were first shown.
func (w *World) Texts() []Text { return slices.Clone(w.texts) }

// OnClose registers fn to run when the world is closed. Scenes use it to
// release what the world's actors depend on, such as a script VM.
func (w *World) OnClose(fn func()) {
	if fn != nil {
		w.closers = append(w.closers, fn)
	}
}

// Close runs the registered hooks, most recent first. Later calls do nothing.
func (w *World) Close() {
	hooks := w.closers
	w.closers = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Update advances the world by one frame: every live actor acts and is
// clamped, then queued additions and removals are committed, in that order.
// The returned error joins any image resolution failures from the commit.
func (w *World) Update(f Frame) error {
	for _, kind := range w.orderedKinds(w.actOrder) {
		for _, m := range w.reg.group(kind) {
			a := m.base()
			if a.world != w {
				continue
			}
			if u, ok := m.(Updater); ok {
				u.Update(f)
			} else {
				m.Act(f)
			}
			if w.bounded {
				w.Clamp(a)
			}
		}
	}
	return w.commit()
}

// Clamp pulls a's center back inside the world bounds.
func (w *World) Clamp(a *Actor) {
	a.pos = ClampInto(a.pos, w.width, w.height)
}

func (w *World) commit() error {
	var errs []error
	if w.backgroundDirty && w.resolver != nil {
		img, err := w.resolver.Resolve(w.background)
		if err != nil {
			w.log.Error("resolve background", zap.String("image", w.background), zap.Error(err))
			errs = append(errs, fmt.Errorf("background %q: %w", w.background, err))
		} else {
			w.backgroundTile = img
		}
		w.backgroundDirty = false
	}

	adds := w.reg.takeAdds()
	committed := 0
	for _, m := range adds {
		a := m.base()
		if w.resolver != nil {
			img, err := w.resolver.Resolve(a.imageName)
			if err != nil {
				w.log.Error("resolve actor image",
					zap.String("kind", string(m.Kind())),
					zap.String("image", a.imageName),
					zap.Error(err))
				errs = append(errs, fmt.Errorf("add %s: %w", m.Kind(), err))
				continue
			}
			a.image = img
		}
		w.reg.insert(m)
		a.world = w
		committed++
	}

	removes := w.reg.takeRemoves()
	for _, m := range removes {
		a := m.base()
		if !w.reg.erase(m) && a.world == w {
			a.world = nil
		}
	}

	if committed > 0 || len(removes) > 0 {
		w.log.Debug("commit",
			zap.Int("added", committed),
			zap.Int("removed", len(removes)))
	}
	return errors.Join(errs...)
}

// Draw emits the background tiles, then every live actor, then the text
// overlays to r.
func (w *World) Draw(_ Frame, r Renderer) {
	w.drawBackground(r)
	for _, kind := range w.paintKinds() {
		for _, m := range w.reg.group(kind) {
			a := m.base()
			if a.world != w || a.image == nil {
				continue
			}
			r.DrawSprite(a.image, a.pos, a.rotation, a.flipped)
		}
	}
	for _, t := range w.texts {
		r.DrawText(t.Text, Vec2{X: float64(t.X), Y: float64(t.Y)})
	}
}

func (w *World) drawBackground(r Renderer) {
	if w.backgroundTile == nil {
		return
	}
	b := w.backgroundTile.Bounds()
	tw, th := b.Dx(), b.Dy()
	if tw <= 0 || th <= 0 {
		return
	}
	for x := 0; x < w.width; x += tw {
		for y := 0; y < w.height; y += th {
			r.DrawTile(w.backgroundTile, float64(x), float64(y))
		}
	}
}

// orderedKinds lists the committed kinds with the given ones first.
func (w *World) orderedKinds(first []Kind) []Kind {
	if len(first) == 0 {
		return slices.Clone(w.reg.kinds)
	}
	out := make([]Kind, 0, len(w.reg.kinds))
	for _, k := range first {
		if _, ok := w.reg.groups[k]; ok && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, k := range w.reg.kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// paintKinds lists kinds bottom to top.
func (w *World) paintKinds() []Kind {
	kinds := w.orderedKinds(w.paintOrder)
	listed := 0
	for _, k := range kinds {
		if !slices.Contains(w.paintOrder, k) {
			break
		}
		listed++
	}
	top := slices.Clone(kinds[:listed])
	slices.Reverse(top)
	return append(kinds[listed:], top...)
}
