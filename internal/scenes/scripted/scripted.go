// Package scripted is a scene whose actors are all driven by Lua.
package scripted

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"easygame/internal/core"
	"easygame/internal/level"
	"easygame/internal/script"
	"easygame/internal/world"

	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtin embed.FS

// LevelFile is looked up in the level directory.
const LevelFile = "scripted.yaml"

// Config controls the generated layout.
type Config struct {
	Width   int
	Height  int
	PerKind int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 480, Height: 360, PerKind: 6}
}

// FromMap populates a Config from flag-style key/value pairs.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for key, dst := range map[string]*int{"w": &c.Width, "h": &c.Height, "per_kind": &c.PerKind} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	return c
}

// New builds a world of scripted actors. Scripts come from opts.ScriptDir
// when it holds any, otherwise from the built-in set. Closing the world closes
// its script VM.
func New(opts core.Options) (*world.World, error) {
	log := opts.Logger().With(zap.String("scene", "scripted"))
	engine, err := script.NewEngine(opts.ScriptDir, log)
	if err != nil {
		return nil, err
	}
	w, err := build(opts, engine, log)
	if err != nil {
		engine.Close()
		return nil, err
	}
	w.OnClose(engine.Close)
	return w, nil
}

func build(opts core.Options, engine *script.Engine, log *zap.Logger) (*world.World, error) {
	if len(engine.Kinds()) == 0 {
		sub, err := fs.Sub(builtin, "scripts")
		if err != nil {
			return nil, err
		}
		if err := engine.LoadFS(sub); err != nil {
			return nil, fmt.Errorf("built-in scripts: %w", err)
		}
	}
	engine.Seed(opts.Seed)

	if opts.LevelDir != "" {
		l, err := level.Load(filepath.Join(opts.LevelDir, LevelFile))
		switch {
		case err == nil:
			return l.Build(engine.Actors(), opts.Resolver, log)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	cfg := FromMap(opts.Params)
	rng := core.NewRNG(opts.Seed)
	w := world.New(cfg.Width, cfg.Height)
	w.SetLogger(log)
	w.SetResolver(opts.Resolver)
	for _, kind := range engine.Kinds() {
		for i := 0; i < cfg.PerKind; i++ {
			a := engine.NewActor(kind)
			a.SetRotation(rng.Range(0, 360))
			w.Add(a, string(kind), rng.Range(0, float64(cfg.Width)), rng.Range(0, float64(cfg.Height)))
		}
	}
	return w, nil
}

func init() {
	core.Register("scripted", New)
}
