package world

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"testing"
)

var errMissing = errors.New("missing image")

// sizes resolves image names to bare rectangles of the recorded size.
type sizes map[string]image.Rectangle

func (s sizes) Resolve(name string) (Image, error) {
	r, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errMissing)
	}
	return r, nil
}

var testArt = sizes{
	"coin":  image.Rect(0, 0, 20, 20),
	"small": image.Rect(0, 0, 16, 16),
	"crab":  image.Rect(0, 0, 10, 10),
	"tile":  image.Rect(0, 0, 40, 30),
}

type coin struct {
	Actor
	acts  int
	onAct func(c *coin, f Frame)
}

func (*coin) Kind() Kind { return "coin" }

func (c *coin) Act(f Frame) {
	c.acts++
	if c.onAct != nil {
		c.onAct(c, f)
	}
}

type crab struct {
	Actor
	onAct func(c *crab, f Frame)
}

func (*crab) Kind() Kind { return "crab" }

func (c *crab) Act(f Frame) {
	if c.onAct != nil {
		c.onAct(c, f)
	}
}

type custom struct {
	Actor
	acted, updated int
}

func (*custom) Kind() Kind     { return "custom" }
func (c *custom) Act(Frame)    { c.acted++ }
func (c *custom) Update(Frame) { c.updated++ }

func newTestWorld() *World {
	w := New(800, 600)
	w.SetResolver(testArt)
	return w
}

func mustUpdate(t *testing.T, w *World) {
	t.Helper()
	if err := w.Update(Frame{}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestMoveFollowsRotation(t *testing.T) {
	w := newTestWorld()
	p := &coin{}
	w.Add(p, "coin", 10, 10)
	mustUpdate(t, w)

	if err := p.Move(20); err != nil {
		t.Fatalf("move: %v", err)
	}
	if p.X() != 30 || p.Y() != 10 {
		t.Fatalf("expected (30,10), got (%v,%v)", p.X(), p.Y())
	}

	p.SetRotation(90)
	if err := p.Move(5); err != nil {
		t.Fatalf("move: %v", err)
	}
	if math.Abs(p.X()-30) > 1e-9 || math.Abs(p.Y()-15) > 1e-9 {
		t.Fatalf("expected (30,15) after moving down, got (%v,%v)", p.X(), p.Y())
	}
}

func TestMoveWithoutWorldFails(t *testing.T) {
	p := &coin{}
	if err := p.Move(1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := p.Radius(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState from Radius, got %v", err)
	}
}

func TestRadius(t *testing.T) {
	w := newTestWorld()
	c := &coin{}
	w.Add(c, "coin", 100, 100)
	mustUpdate(t, w)

	r, err := c.Radius()
	if err != nil {
		t.Fatalf("radius: %v", err)
	}
	if r != 10 {
		t.Fatalf("expected radius 10, got %v", r)
	}

	c.SetScaleRadius(0.5)
	if r, _ := c.Radius(); r != 5 {
		t.Fatalf("expected scaled radius 5, got %v", r)
	}

	bare := New(100, 100)
	u := &coin{}
	bare.Add(u, "anything", 1, 1)
	mustUpdate(t, bare)
	if r, _ := u.Radius(); r != 1 {
		t.Fatalf("expected sentinel radius 1 without resolver, got %v", r)
	}
}

func TestIntersectsByDistance(t *testing.T) {
	w := newTestWorld()
	a := &coin{}
	b := &coin{}
	w.Add(a, "coin", 100, 100)
	w.Add(b, "small", 115, 100)
	mustUpdate(t, w)

	if !a.Intersects(b) {
		t.Fatal("centers 15 apart with radii 10 and 8 should intersect")
	}
	b.SetX(120)
	if a.Intersects(b) {
		t.Fatal("centers 20 apart with radii 10 and 8 should not intersect")
	}
	b.SetX(118)
	if a.Intersects(b) {
		t.Fatal("circles exactly touching should not intersect")
	}
}

func TestIntersectsSymmetricAndExcludesSelf(t *testing.T) {
	w := newTestWorld()
	positions := []Vec2{{100, 100}, {110, 104}, {130, 100}, {400, 400}}
	var actors []*coin
	for i, p := range positions {
		c := &coin{}
		img := "coin"
		if i%2 == 1 {
			img = "small"
		}
		w.Add(c, img, p.X, p.Y)
		actors = append(actors, c)
	}
	mustUpdate(t, w)

	for i, a := range actors {
		if a.Intersects(a) {
			t.Fatalf("actor %d intersects itself", i)
		}
		for _, m := range a.GetAllIntersectingActors("coin") {
			if m.(*coin) == a {
				t.Fatalf("actor %d listed among its own intersections", i)
			}
		}
		for j, b := range actors {
			if i == j {
				continue
			}
			if a.Intersects(b) != b.Intersects(a) {
				t.Fatalf("intersection of %d and %d not symmetric", i, j)
			}
		}
	}
}

func TestClampAfterUpdate(t *testing.T) {
	w := newTestWorld()
	c := &coin{}
	w.Add(c, "coin", -5, 300)
	mustUpdate(t, w)
	mustUpdate(t, w)

	if c.X() != 0 || c.Y() != 300 {
		t.Fatalf("expected clamp to (0,300), got (%v,%v)", c.X(), c.Y())
	}

	c.onAct = func(c *coin, _ Frame) { c.SetPosition(900, 700) }
	mustUpdate(t, w)
	if c.X() != 800 || c.Y() != 600 {
		t.Fatalf("expected clamp to (800,600), got (%v,%v)", c.X(), c.Y())
	}
}

func TestClampIdempotent(t *testing.T) {
	cases := []Vec2{{-5, 300}, {900, -1}, {10, 10}, {800, 600}, {-1e9, 1e9}}
	for _, p := range cases {
		once := ClampInto(p, 800, 600)
		twice := ClampInto(once, 800, 600)
		if once != twice {
			t.Fatalf("clamp of %v not idempotent: %v then %v", p, once, twice)
		}
	}
}

func TestUnboundedWorldDoesNotClamp(t *testing.T) {
	w := newTestWorld()
	w.SetBounded(false)
	c := &coin{}
	w.Add(c, "coin", -5, 300)
	mustUpdate(t, w)
	mustUpdate(t, w)
	if c.X() != -5 {
		t.Fatalf("unbounded world moved actor to x=%v", c.X())
	}
	if !c.IsAtEdge() {
		t.Fatal("actor outside the world should be at the edge")
	}
}

func TestAdditionsCommitAfterTraversal(t *testing.T) {
	w := newTestWorld()
	spawned := &coin{}
	var seenDuring int
	spawner := &crab{}
	spawner.onAct = func(c *crab, _ Frame) {
		if spawned.World() == nil && len(w.GetActors("coin")) == 0 {
			w.Add(spawned, "coin", 50, 50)
		}
		seenDuring = len(w.GetActors("coin"))
	}
	w.Add(spawner, "crab", 10, 10)
	mustUpdate(t, w)

	mustUpdate(t, w)
	if seenDuring != 0 {
		t.Fatalf("addition visible during traversal: %d coins", seenDuring)
	}
	if spawned.acts != 0 {
		t.Fatal("actor added this frame must not act in the same frame")
	}
	got := w.GetActors("coin")
	if len(got) != 1 || got[0].(*coin) != spawned {
		t.Fatalf("expected the spawned coin after update, got %v", got)
	}
	if spawned.World() != w {
		t.Fatal("committed actor should reference its world")
	}
}

func TestRemovalHidesActorImmediately(t *testing.T) {
	w := newTestWorld()
	a := &crab{}
	b := &coin{}
	w.Add(a, "crab", 100, 100)
	w.Add(b, "coin", 105, 100)
	mustUpdate(t, w)

	if !a.IsTouching("coin") {
		t.Fatal("crab should touch coin before removal")
	}
	w.RemoveActor(b)
	if a.IsTouching("coin") || a.Intersects(b) {
		t.Fatal("removed coin still visible to queries")
	}
	if b.World() != nil {
		t.Fatal("removed coin still references the world")
	}
	if len(w.reg.group("coin")) != 1 {
		t.Fatal("removed coin should stay indexed until commit")
	}
	mustUpdate(t, w)
	if len(w.reg.group("coin")) != 0 {
		t.Fatal("removed coin still indexed after commit")
	}
}

func TestAddThenRemoveBeforeUpdate(t *testing.T) {
	w := newTestWorld()
	c := &coin{}
	w.Add(c, "coin", 10, 10)
	w.RemoveActor(c)
	mustUpdate(t, w)

	if n := len(w.GetActors("coin")); n != 0 {
		t.Fatalf("expected no live coins, got %d", n)
	}
	if len(w.reg.group("coin")) != 0 {
		t.Fatal("coin should not be indexed")
	}
	if c.World() != nil {
		t.Fatal("coin should not reference the world")
	}
}

func TestRemoveTwiceIsSafe(t *testing.T) {
	w := newTestWorld()
	a := &coin{}
	b := &coin{}
	w.Add(a, "coin", 10, 10)
	w.Add(b, "coin", 300, 300)
	mustUpdate(t, w)

	w.RemoveActor(a)
	w.RemoveActor(a)
	if _, removes := w.Pending(); removes != 2 {
		t.Fatalf("expected two queued removals, got %d", removes)
	}
	mustUpdate(t, w)
	got := w.GetActors("coin")
	if len(got) != 1 || got[0].(*coin) != b {
		t.Fatalf("expected only the second coin to remain, got %v", got)
	}
	w.RemoveActor(nil)
	mustUpdate(t, w)
}

func TestRemovedActorIsSkippedInTraversal(t *testing.T) {
	w := newTestWorld()
	victim := &coin{}
	hunter := &crab{}
	hunter.onAct = func(c *crab, _ Frame) {
		c.RemoveTouching("coin")
	}
	w.Add(hunter, "crab", 100, 100)
	w.Add(victim, "coin", 102, 100)
	mustUpdate(t, w)

	mustUpdate(t, w)
	if victim.acts != 0 {
		t.Fatalf("coin removed earlier in the frame still acted %d times", victim.acts)
	}
	if w.Count("coin") != 0 {
		t.Fatal("coin should be gone")
	}
}

func TestRemoveTouchingWithoutContact(t *testing.T) {
	w := newTestWorld()
	a := &crab{}
	w.Add(a, "crab", 10, 10)
	mustUpdate(t, w)
	if got := a.RemoveTouching("coin"); got != nil {
		t.Fatalf("expected nothing removed, got %v", got)
	}
	if _, removes := w.Pending(); removes != 0 {
		t.Fatal("no removal should be queued")
	}
}

func TestQueriesOnDetachedActor(t *testing.T) {
	w := newTestWorld()
	other := &coin{}
	w.Add(other, "coin", 10, 10)
	mustUpdate(t, w)

	loose := &crab{}
	loose.SetPosition(10, 10)
	if loose.IsTouching("coin") || loose.Intersects(other) || other.Intersects(loose) {
		t.Fatal("actor without a world should never intersect")
	}
	if loose.GetAllIntersectingActors("coin") != nil {
		t.Fatal("expected no matches for actor without a world")
	}
	if loose.IsAtEdge() {
		t.Fatal("actor without a world is not at an edge")
	}
}

func TestTurnAndTurnTowards(t *testing.T) {
	c := &coin{}
	c.Turn(30)
	c.Turn(-75)
	if c.Rotation() != -45 {
		t.Fatalf("expected rotation -45, got %v", c.Rotation())
	}
	c.SetPosition(10, 10)
	cases := []struct {
		x, y float64
		want float64
	}{
		{20, 10, 0},
		{10, 20, 90},
		{0, 10, 180},
		{10, 0, -90},
		{20, 20, 45},
	}
	for _, tc := range cases {
		c.TurnTowards(tc.x, tc.y)
		if math.Abs(c.Rotation()-tc.want) > 1e-9 {
			t.Fatalf("towards (%v,%v): expected %v, got %v", tc.x, tc.y, tc.want, c.Rotation())
		}
	}
}

func TestGetActorsInRange(t *testing.T) {
	w := newTestWorld()
	center := &crab{}
	near := &coin{}
	far := &coin{}
	w.Add(center, "crab", 100, 100)
	w.Add(near, "coin", 130, 140)
	w.Add(far, "coin", 300, 300)
	mustUpdate(t, w)

	got := center.GetActorsInRange("coin", 50)
	if len(got) != 1 || got[0].(*coin) != near {
		t.Fatalf("expected only the near coin, got %v", got)
	}
}

func TestResolveFailureSkipsActor(t *testing.T) {
	w := newTestWorld()
	good := &coin{}
	bad := &coin{}
	w.Add(bad, "nope", 10, 10)
	w.Add(good, "coin", 20, 20)

	err := w.Update(Frame{})
	if !errors.Is(err, errMissing) {
		t.Fatalf("expected missing image error, got %v", err)
	}
	if bad.World() != nil {
		t.Fatal("actor with unresolved image should not be committed")
	}
	if good.World() != w {
		t.Fatal("other queued actors should still commit")
	}
}

func TestUpdaterReplacesAct(t *testing.T) {
	w := newTestWorld()
	c := &custom{}
	w.Add(c, "coin", 10, 10)
	mustUpdate(t, w)
	mustUpdate(t, w)
	if c.updated != 1 || c.acted != 0 {
		t.Fatalf("expected Update once and Act never, got update=%d act=%d", c.updated, c.acted)
	}
}

func TestActOrder(t *testing.T) {
	w := newTestWorld()
	var order []Kind
	c := &coin{onAct: func(*coin, Frame) { order = append(order, "coin") }}
	r := &crab{onAct: func(*crab, Frame) { order = append(order, "crab") }}
	w.Add(c, "coin", 10, 10)
	w.Add(r, "crab", 50, 50)
	mustUpdate(t, w)

	mustUpdate(t, w)
	if !slices.Equal(order, []Kind{"coin", "crab"}) {
		t.Fatalf("default order should follow first insertion, got %v", order)
	}

	order = nil
	w.SetActOrder("crab")
	mustUpdate(t, w)
	if !slices.Equal(order, []Kind{"crab", "coin"}) {
		t.Fatalf("act order not applied, got %v", order)
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) DrawTile(img Image, x, y float64) {
	r.calls = append(r.calls, fmt.Sprintf("tile %v,%v", x, y))
}

func (r *recorder) DrawSprite(img Image, pos Vec2, rot float64, flipped bool) {
	r.calls = append(r.calls, fmt.Sprintf("sprite %d at %v,%v", img.Bounds().Dx(), pos.X, pos.Y))
}

func (r *recorder) DrawText(text string, pos Vec2) {
	r.calls = append(r.calls, fmt.Sprintf("text %s", text))
}

func TestDrawLayers(t *testing.T) {
	w := New(80, 40)
	w.SetResolver(testArt)
	w.SetBackground("tile")
	w.Add(&coin{}, "coin", 5, 5)
	w.Add(&crab{}, "crab", 6, 6)
	pending := &coin{}
	w.ShowText("score", 40, 10)
	mustUpdate(t, w)
	w.Add(pending, "coin", 7, 7)

	rec := &recorder{}
	w.Draw(Frame{}, rec)
	want := []string{
		"tile 0,0", "tile 0,30", "tile 40,0", "tile 40,30",
		"sprite 20 at 5,5",
		"sprite 10 at 6,6",
		"text score",
	}
	if !slices.Equal(rec.calls, want) {
		t.Fatalf("draw calls\n got %v\nwant %v", rec.calls, want)
	}

	w.SetPaintOrder("coin")
	rec = &recorder{}
	w.Draw(Frame{}, rec)
	if rec.calls[4] != "sprite 10 at 6,6" || rec.calls[5] != "sprite 20 at 5,5" {
		t.Fatalf("coins should be painted on top, got %v", rec.calls)
	}
}

func TestShowTextReplacesAtSameCoordinate(t *testing.T) {
	w := New(100, 100)
	w.ShowText("a", 10, 10)
	w.ShowText("b", 20, 10)
	w.ShowText("c", 10, 10)
	got := w.Texts()
	want := []Text{{Text: "c", X: 10, Y: 10}, {Text: "b", X: 20, Y: 10}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	w.ClearText(10, 10)
	w.ShowText("d", 30, 30)
	want = []Text{{Text: "b", X: 20, Y: 10}, {Text: "d", X: 30, Y: 30}}
	if got := w.Texts(); !slices.Equal(got, want) {
		t.Fatalf("after clear expected %v, got %v", want, got)
	}
}

func TestNewRaisesDimensions(t *testing.T) {
	w := New(0, -3)
	if w.Width() != 1 || w.Height() != 1 {
		t.Fatalf("expected 1x1, got %dx%d", w.Width(), w.Height())
	}
	if !w.Bounded() {
		t.Fatal("worlds are bounded by default")
	}
}

func TestActorOf(t *testing.T) {
	c := &coin{}
	if ActorOf(c) != &c.Actor {
		t.Fatal("ActorOf should return the embedded base")
	}
	if ActorOf(nil) != nil {
		t.Fatal("ActorOf(nil) should be nil")
	}
}

func TestIntersectsNeedsSameWorld(t *testing.T) {
	w1, w2 := newTestWorld(), newTestWorld()
	a, b := &coin{}, &coin{}
	w1.Add(a, "coin", 100, 100)
	w2.Add(b, "coin", 105, 100)
	mustUpdate(t, w1)
	mustUpdate(t, w2)

	if a.Intersects(b) || b.Intersects(a) {
		t.Fatal("actors in different worlds should never intersect")
	}
}

func TestCloseRunsHooksOnce(t *testing.T) {
	w := New(10, 10)
	var order []string
	w.OnClose(func() { order = append(order, "first") })
	w.OnClose(nil)
	w.OnClose(func() { order = append(order, "second") })
	w.Close()
	w.Close()
	if !slices.Equal(order, []string{"second", "first"}) {
		t.Fatalf("unexpected hook calls %v", order)
	}
}
