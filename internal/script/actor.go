package script

import (
	"easygame/internal/world"

	lua "github.com/yuin/gopher-lua"
)

// Actor is a member whose behaviour lives in a Lua script.
type Actor struct {
	world.Actor

	kind   world.Kind
	engine *Engine
	ud     *lua.LUserData
	frame  world.Frame
	failed bool
}

// NewActor returns an unplaced actor of kind driven by e.
func (e *Engine) NewActor(kind world.Kind) *Actor {
	return &Actor{kind: kind, engine: e}
}

// Kind implements world.Member.
func (a *Actor) Kind() world.Kind { return a.kind }

// Failed reports whether the script raised an error. A failed actor stays in
// the world but no longer acts.
func (a *Actor) Failed() bool { return a.failed }

// Act runs the script's act function.
func (a *Actor) Act(f world.Frame) {
	if a.failed {
		return
	}
	if !a.engine.run(a, f) {
		a.failed = true
	}
}

func (e *Engine) registerActorType() {
	mt := e.vm.NewTypeMetatable(actorTypeName)
	e.vm.SetField(mt, "__index", e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"x":               actorX,
		"y":               actorY,
		"rotation":        actorRotation,
		"set_rotation":    actorSetRotation,
		"move":            actorMove,
		"turn":            actorTurn,
		"turn_towards":    actorTurnTowards,
		"is_at_edge":      actorIsAtEdge,
		"is_touching":     actorIsTouching,
		"remove_touching": actorRemoveTouching,
		"show_text":       actorShowText,
		"pressed":         actorPressed,
		"tick":            actorTick,
	}))
}

func checkActor(L *lua.LState) *Actor {
	ud := L.CheckUserData(1)
	if a, ok := ud.Value.(*Actor); ok {
		return a
	}
	L.ArgError(1, "actor expected")
	return nil
}

func actorX(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).X()))
	return 1
}

func actorY(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).Y()))
	return 1
}

func actorRotation(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).Rotation()))
	return 1
}

func actorSetRotation(L *lua.LState) int {
	checkActor(L).SetRotation(float64(L.CheckNumber(2)))
	return 0
}

func actorMove(L *lua.LState) int {
	a := checkActor(L)
	if err := a.Move(float64(L.CheckNumber(2))); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func actorTurn(L *lua.LState) int {
	checkActor(L).Turn(float64(L.CheckNumber(2)))
	return 0
}

func actorTurnTowards(L *lua.LState) int {
	checkActor(L).TurnTowards(float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
	return 0
}

func actorIsAtEdge(L *lua.LState) int {
	L.Push(lua.LBool(checkActor(L).IsAtEdge()))
	return 1
}

func actorIsTouching(L *lua.LState) int {
	a := checkActor(L)
	L.Push(lua.LBool(a.IsTouching(world.Kind(L.CheckString(2)))))
	return 1
}

// remove_touching returns true when it removed something.
func actorRemoveTouching(L *lua.LState) int {
	a := checkActor(L)
	L.Push(lua.LBool(a.RemoveTouching(world.Kind(L.CheckString(2))) != nil))
	return 1
}

func actorShowText(L *lua.LState) int {
	a := checkActor(L)
	text := L.CheckString(2)
	x, y := L.CheckInt(3), L.CheckInt(4)
	if w := a.World(); w != nil {
		w.ShowText(text, x, y)
	}
	return 0
}

func actorPressed(L *lua.LState) int {
	a := checkActor(L)
	L.Push(lua.LBool(a.frame.Pressed(L.CheckString(2))))
	return 1
}

func actorTick(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).frame.Tick))
	return 1
}
