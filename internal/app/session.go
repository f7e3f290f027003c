package app

import (
	"fmt"
	"maps"

	"easygame/internal/art"
	"easygame/internal/core"
	"easygame/internal/world"

	"go.uber.org/zap"
)

// Session owns the running world of one scene and rebuilds it on reset. All
// hosts drive a Session.
type Session struct {
	cfg     *Config
	factory core.Factory
	catalog *art.Catalog
	log     *zap.Logger

	world *world.World
	clock *core.Clock
	seed  int64
	last  world.Frame
}

// NewSession resolves the configured scene, loads the art and builds the
// first world.
func NewSession(cfg *Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	factory, ok := core.Scenes()[cfg.Scene]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", cfg.Scene, core.SceneNames())
	}
	catalog, err := art.Open(cfg.ArtManifest, log)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		factory: factory,
		catalog: catalog,
		log:     log,
		clock:   core.NewClock(cfg.TPS),
	}
	if err := s.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the scene with seed.
func (s *Session) Reset(seed int64) error {
	w, err := s.factory(core.Options{
		Seed:      seed,
		Resolver:  s.catalog,
		LevelDir:  s.cfg.LevelDir,
		ScriptDir: s.cfg.ScriptDir,
		Log:       s.log,
		Params:    maps.Clone(s.cfg.Params),
	})
	if err != nil {
		return fmt.Errorf("build scene %s: %w", s.cfg.Scene, err)
	}
	if s.cfg.Unbounded {
		w.SetBounded(false)
	}
	if s.world != nil {
		s.world.Close()
	}
	s.world = w
	s.seed = seed
	s.clock.Reset()
	s.last = world.Frame{}
	s.log.Info("scene ready",
		zap.String("scene", s.cfg.Scene),
		zap.Int64("seed", seed),
		zap.Int("width", w.Width()),
		zap.Int("height", w.Height()))
	return nil
}

// Close releases the current world.
func (s *Session) Close() {
	if s.world != nil {
		s.world.Close()
	}
}

// Step advances the world by one frame with the given input.
func (s *Session) Step(in world.Input) (world.Frame, error) {
	f := s.clock.Next(in)
	s.last = f
	return f, s.world.Update(f)
}

// World returns the current world.
func (s *Session) World() *world.World { return s.world }

// Frame returns the most recent frame.
func (s *Session) Frame() world.Frame { return s.last }

// Seed returns the seed of the current world.
func (s *Session) Seed() int64 { return s.seed }

// Scene returns the scene name.
func (s *Session) Scene() string { return s.cfg.Scene }

// Panel exposes the world to the HUD.
func (s *Session) Panel() core.WorldPanel {
	return core.WorldPanel{Name: s.cfg.Scene, World: s.world}
}

// Catalog returns the loaded art.
func (s *Session) Catalog() *art.Catalog { return s.catalog }

// Parameters implements ui.Panel against whichever world is current.
func (s *Session) Parameters() core.ParameterSnapshot { return s.Panel().Parameters() }

// ParameterControls lists the HUD controls.
func (s *Session) ParameterControls() []core.ParameterControl { return s.Panel().ParameterControls() }

// SetBoolParameter implements core.BoolParameterSetter.
func (s *Session) SetBoolParameter(key string, value bool) bool {
	return s.Panel().SetBoolParameter(key, value)
}
