// Package crab is a small arcade scene: a crab steered with the arrow keys
// eats worms while lobsters hunt it.
package crab

import (
	"errors"
	"io/fs"
	"path/filepath"

	"easygame/internal/core"
	"easygame/internal/level"
	"easygame/internal/world"

	"go.uber.org/zap"
)

// LevelFile is looked up in the level directory; without it the scene is
// laid out from Config.
const LevelFile = "crab.yaml"

// New builds a crab world.
func New(opts core.Options) (*world.World, error) {
	cfg := FromMap(opts.Params)
	g := &game{cfg: cfg, rng: core.NewRNG(opts.Seed)}
	log := opts.Logger().With(zap.String("scene", "crab"))

	if opts.LevelDir != "" {
		l, err := level.Load(filepath.Join(opts.LevelDir, LevelFile))
		switch {
		case err == nil:
			w, err := l.Build(g.kinds(), opts.Resolver, log)
			if err != nil {
				return nil, err
			}
			g.showScore(w)
			return w, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	return layout(g, opts.Resolver, log), nil
}

func layout(g *game, resolver world.ImageResolver, log *zap.Logger) *world.World {
	cfg := g.cfg
	w := world.New(cfg.Width, cfg.Height)
	w.SetLogger(log)
	w.SetResolver(resolver)
	w.SetBackground("sand")
	w.SetActOrder(KindCrab, KindLobster, KindWorm)
	w.SetPaintOrder(KindCrab, KindLobster, KindWorm)

	place := func(m world.Member, image string, x, y float64) {
		g.configure(m)
		w.Add(m, image, x, y)
	}
	fw, fh := float64(cfg.Width), float64(cfg.Height)
	place(&Crab{}, "crab", fw/2, fh/2)
	for i := 0; i < cfg.Worms; i++ {
		place(&Worm{}, "worm", g.rng.Range(0, fw), g.rng.Range(0, fh))
	}
	for i := 0; i < cfg.Lobsters; i++ {
		// Keep lobsters out of the crab's starting neighbourhood.
		x := g.rng.Range(0, fw/4)
		if i%2 == 1 {
			x = fw - x
		}
		place(&Lobster{}, "lobster", x, g.rng.Range(0, fh))
	}
	g.showScore(w)
	return w
}

func init() {
	core.Register("crab", New)
}
