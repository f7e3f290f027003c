// Package script runs actor behaviour written in Lua.
//
// Every <dir>/<kind>.lua file defines a global act(self, dt) function. Each
// file gets its own environment, so kinds never overwrite each other's
// globals, while the standard libraries stay visible through _G.
package script

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"easygame/internal/core"
	"easygame/internal/world"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const actorTypeName = "actor"

// Engine wraps a single gopher-lua VM. It must only be used from the game loop
// goroutine.
type Engine struct {
	vm   *lua.LState
	log  *zap.Logger
	rng  *core.RNG
	acts map[world.Kind]*lua.LFunction
}

// NewEngine creates a VM and loads every script in dir. A missing directory
// yields an engine with no kinds.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(dir); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log, rng: core.NewRNG(1), acts: map[world.Kind]*lua.LFunction{}}
	e.installRandom()
	e.registerActorType()
	return e
}

func (e *Engine) loadDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return e.LoadFS(os.DirFS(dir))
}

// LoadFS loads every top-level .lua file of fsys, naming each kind after its
// file.
func (e *Engine) LoadFS(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		src, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		fn, err := e.vm.Load(bytes.NewReader(src), entry.Name())
		if err != nil {
			return fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		kind := world.Kind(strings.TrimSuffix(entry.Name(), ".lua"))
		if err := e.define(kind, fn); err != nil {
			return fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		e.log.Debug("loaded lua script", zap.String("file", entry.Name()))
	}
	return nil
}

// LoadString compiles src as the script for kind, replacing any earlier one.
func (e *Engine) LoadString(kind world.Kind, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("load %s: %w", kind, err)
	}
	return e.define(kind, fn)
}

// define runs chunk in a private environment and records its act function.
func (e *Engine) define(kind world.Kind, chunk *lua.LFunction) error {
	env := e.vm.NewTable()
	meta := e.vm.NewTable()
	meta.RawSetString("__index", e.vm.G.Global)
	e.vm.SetMetatable(env, meta)
	e.vm.SetFEnv(chunk, env)

	e.vm.Push(chunk)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return err
	}
	act, ok := env.RawGetString("act").(*lua.LFunction)
	if !ok {
		return fmt.Errorf("script for %s does not define act(self, dt)", kind)
	}
	e.acts[kind] = act
	return nil
}

// Seed reseeds the generator behind Lua's math.random.
func (e *Engine) Seed(seed int64) {
	e.rng = core.NewRNG(seed)
}

// installRandom routes math.random and math.randomseed to the engine's RNG so
// a seed fully determines script behaviour.
func (e *Engine) installRandom() {
	mathlib, ok := e.vm.GetGlobal("math").(*lua.LTable)
	if !ok {
		return
	}
	e.vm.SetFuncs(mathlib, map[string]lua.LGFunction{
		"random": func(L *lua.LState) int {
			switch L.GetTop() {
			case 0:
				L.Push(lua.LNumber(e.rng.Range(0, 1)))
			case 1:
				n := L.CheckInt(1)
				if n < 1 {
					L.ArgError(1, "interval is empty")
				}
				L.Push(lua.LNumber(e.rng.IntN(n) + 1))
			default:
				m, n := L.CheckInt(1), L.CheckInt(2)
				if n < m {
					L.ArgError(2, "interval is empty")
				}
				L.Push(lua.LNumber(m + e.rng.IntN(n-m+1)))
			}
			return 1
		},
		"randomseed": func(L *lua.LState) int {
			e.Seed(L.CheckInt64(1))
			return 0
		},
	})
}

// Kinds lists the scripted kinds in sorted order.
func (e *Engine) Kinds() []world.Kind {
	kinds := make([]world.Kind, 0, len(e.acts))
	for k := range e.acts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Has reports whether kind has a script.
func (e *Engine) Has(kind world.Kind) bool {
	_, ok := e.acts[kind]
	return ok
}

// Actors returns a factory per scripted kind, so levels can place them.
func (e *Engine) Actors() core.Kinds {
	kinds := core.Kinds{}
	for kind := range e.acts {
		kinds[kind] = func() world.Member { return e.NewActor(kind) }
	}
	return kinds
}

// Close releases the VM. Actors of a closed engine stop acting.
func (e *Engine) Close() {
	if !e.vm.IsClosed() {
		e.vm.Close()
	}
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool { return e.vm.IsClosed() }

// run calls the kind's act function for a. It returns false once the script
// has failed.
func (e *Engine) run(a *Actor, f world.Frame) bool {
	if e.vm.IsClosed() {
		return false
	}
	fn, ok := e.acts[a.kind]
	if !ok {
		e.log.Warn("no lua script for kind", zap.String("kind", string(a.kind)))
		return false
	}
	if a.ud == nil {
		a.ud = e.vm.NewUserData()
		a.ud.Value = a
		e.vm.SetMetatable(a.ud, e.vm.GetTypeMetatable(actorTypeName))
	}
	a.frame = f
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, a.ud, lua.LNumber(f.Seconds()))
	if err != nil {
		e.log.Warn("lua act error",
			zap.String("kind", string(a.kind)),
			zap.Error(err))
		return false
	}
	return true
}
