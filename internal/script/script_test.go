package script

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"easygame/internal/world"
)

type boxes map[string]image.Rectangle

func (b boxes) Resolve(name string) (world.Image, error) {
	if r, ok := b[name]; ok {
		return r, nil
	}
	return nil, os.ErrNotExist
}

var art = boxes{"bug": image.Rect(0, 0, 10, 10), "leaf": image.Rect(0, 0, 10, 10)}

func newWorld() *world.World {
	w := world.New(200, 200)
	w.SetResolver(art)
	return w
}

func TestActMovesActor(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `
function act(self, dt)
  self:turn(90)
  self:move(10)
end`); err != nil {
		t.Fatal(err)
	}

	w := newWorld()
	bug := e.NewActor("bug")
	w.Add(bug, "bug", 50, 50)
	if err := w.Update(world.Frame{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Update(world.Frame{}); err != nil {
		t.Fatal(err)
	}
	if bug.Rotation() != 90 {
		t.Fatalf("rotation %v", bug.Rotation())
	}
	if bug.X() < 49.999 || bug.X() > 50.001 || bug.Y() < 59.999 || bug.Y() > 60.001 {
		t.Fatalf("expected (50,60), got (%v,%v)", bug.X(), bug.Y())
	}
}

func TestScriptsKeepSeparateGlobals(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `speed = 1
function act(self, dt) self:move(speed) end`); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadString("leaf", `speed = 7
function act(self, dt) self:move(speed) end`); err != nil {
		t.Fatal(err)
	}

	w := newWorld()
	bug, leaf := e.NewActor("bug"), e.NewActor("leaf")
	w.Add(bug, "bug", 10, 10)
	w.Add(leaf, "leaf", 10, 100)
	_ = w.Update(world.Frame{})
	_ = w.Update(world.Frame{})
	if bug.X() != 11 || leaf.X() != 17 {
		t.Fatalf("globals leaked between scripts: bug=%v leaf=%v", bug.X(), leaf.X())
	}
}

func TestTouchingAndText(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `
eaten = 0
function act(self, dt)
  if self:is_touching("leaf") and self:remove_touching("leaf") then
    eaten = eaten + 1
    self:show_text("eaten " .. eaten, 100, 5)
  end
end`); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadString("leaf", `function act(self, dt) end`); err != nil {
		t.Fatal(err)
	}

	w := newWorld()
	w.Add(e.NewActor("bug"), "bug", 50, 50)
	w.Add(e.NewActor("leaf"), "leaf", 52, 50)
	_ = w.Update(world.Frame{})
	_ = w.Update(world.Frame{})

	if n := w.Count("leaf"); n != 0 {
		t.Fatalf("leaf should be eaten, %d left", n)
	}
	texts := w.Texts()
	if len(texts) != 1 || texts[0].Text != "eaten 1" {
		t.Fatalf("unexpected texts %v", texts)
	}
}

func TestFailedScriptStopsActing(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `
calls = 0
function act(self, dt)
  calls = calls + 1
  self:turn(1)
  error("boom")
end`); err != nil {
		t.Fatal(err)
	}
	w := newWorld()
	bug := e.NewActor("bug")
	w.Add(bug, "bug", 10, 10)
	for i := 0; i < 4; i++ {
		_ = w.Update(world.Frame{})
	}
	if !bug.Failed() {
		t.Fatal("actor should be marked failed")
	}
	if bug.Rotation() != 1 {
		t.Fatalf("failed actor kept acting, rotation %v", bug.Rotation())
	}
	if w.Count("bug") != 1 {
		t.Fatal("failed actor stays in the world")
	}
}

func TestPressedAndTick(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `
function act(self, dt)
  if self:pressed("right") then self:set_rotation(self:tick()) end
end`); err != nil {
		t.Fatal(err)
	}
	w := newWorld()
	bug := e.NewActor("bug")
	w.Add(bug, "bug", 10, 10)
	_ = w.Update(world.Frame{Tick: 1})
	_ = w.Update(world.Frame{Tick: 2, Input: world.Keys{"right": true}})
	if bug.Rotation() != 2 {
		t.Fatalf("rotation %v", bug.Rotation())
	}
}

func TestMissingActIsAnError(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("bug", `x = 1`); err == nil {
		t.Fatal("script without act should be rejected")
	}
	if err := e.LoadString("bug", `function act(`); err == nil {
		t.Fatal("syntax error should be reported")
	}
}

func TestNewEngineLoadsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "beetle.lua"), []byte("function act(self, dt) self:turn(5) end"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if kinds := e.Kinds(); len(kinds) != 1 || kinds[0] != "beetle" {
		t.Fatalf("unexpected kinds %v", kinds)
	}

	m, ok := e.Actors().New("beetle")
	if !ok || m.Kind() != "beetle" {
		t.Fatalf("scripted kind not constructible: %v %v", m, ok)
	}

	empty, err := NewEngine(filepath.Join(dir, "missing"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer empty.Close()
	if len(empty.Kinds()) != 0 {
		t.Fatal("missing dir should load nothing")
	}
}

func TestLoadFS(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	fsys := fstest.MapFS{
		"ant.lua":    {Data: []byte("function act(self, dt) self:turn(dt) end")},
		"broken.txt": {Data: []byte("not lua")},
		"sub/x.lua":  {Data: []byte("function act(self, dt) end")},
	}
	if err := e.LoadFS(fsys); err != nil {
		t.Fatal(err)
	}
	if !e.Has("ant") || e.Has("x") || len(e.Kinds()) != 1 {
		t.Fatalf("unexpected kinds %v", e.Kinds())
	}

	bad := fstest.MapFS{"bad.lua": {Data: []byte("function act(")}}
	if err := e.LoadFS(bad); err == nil {
		t.Fatal("syntax error should be reported")
	}
}

func TestSeedRepeatsSequence(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.LoadString("dice", "function act(self, dt) self:set_rotation(math.random(1, 1000000)) end"); err != nil {
		t.Fatal(err)
	}
	roll := func() float64 {
		e.Seed(11)
		w := newWorld()
		d := e.NewActor("dice")
		w.Add(d, "bug", 10, 10)
		_ = w.Update(world.Frame{})
		_ = w.Update(world.Frame{})
		return d.Rotation()
	}
	if a, b := roll(), roll(); a != b {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
}

func TestLuaRandomRanges(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	if err := e.vm.DoString(`
for i = 1, 200 do
  local a = math.random()
  local b = math.random(6)
  local c = math.random(-3, 3)
  assert(a >= 0 and a < 1, "float out of range")
  assert(b >= 1 and b <= 6, "die out of range")
  assert(c >= -3 and c <= 3, "range out of range")
end
math.randomseed(5)
first = math.random(1000)
math.randomseed(5)
assert(math.random(1000) == first, "randomseed should repeat")
`); err != nil {
		t.Fatal(err)
	}
}

func TestClosedEngineStopsActors(t *testing.T) {
	e := newEngine(nil)
	if err := e.LoadString("bug", "function act(self, dt) self:turn(1) end"); err != nil {
		t.Fatal(err)
	}
	w := newWorld()
	bug := e.NewActor("bug")
	w.Add(bug, "bug", 10, 10)
	_ = w.Update(world.Frame{})

	e.Close()
	e.Close()
	if !e.Closed() {
		t.Fatal("engine should report closed")
	}
	_ = w.Update(world.Frame{})
	if bug.Rotation() != 0 || !bug.Failed() {
		t.Fatalf("actor of a closed engine acted: rotation=%v failed=%v", bug.Rotation(), bug.Failed())
	}
}
