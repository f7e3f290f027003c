// Package coins shows deferred additions and removals at work: a spawner
// drops coins while collectors race to pick them up.
package coins

import (
	"fmt"
	"math"
	"strconv"

	"easygame/internal/core"
	"easygame/internal/world"

	"go.uber.org/zap"
)

// Actor kinds of the coins scene.
const (
	KindSpawner   world.Kind = "spawner"
	KindCollector world.Kind = "collector"
	KindCoin      world.Kind = "coin"
)

// Config controls the coins scene.
type Config struct {
	Width      int
	Height     int
	Interval   int
	MaxCoins   int
	Collectors int
	Speed      float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 480, Height: 360, Interval: 30, MaxCoins: 8, Collectors: 2, Speed: 2.5}
}

// FromMap populates a Config from flag-style key/value pairs.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for key, dst := range map[string]*int{
		"w":          &c.Width,
		"h":          &c.Height,
		"interval":   &c.Interval,
		"max":        &c.MaxCoins,
		"collectors": &c.Collectors,
	} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Speed = parsed
		}
	}
	return c
}

type game struct {
	cfg       Config
	rng       *core.RNG
	collected int
}

// Spawner adds a coin every Interval ticks while fewer than MaxCoins exist.
type Spawner struct {
	world.Actor
	g     *game
	ticks int
}

func (*Spawner) Kind() world.Kind { return KindSpawner }

func (s *Spawner) Act(world.Frame) {
	s.ticks++
	if s.ticks%s.g.cfg.Interval != 0 {
		return
	}
	w := s.World()
	adds, _ := w.Pending()
	if w.Count(KindCoin)+adds >= s.g.cfg.MaxCoins {
		return
	}
	margin := 10.0
	x := s.g.rng.Range(margin, float64(w.Width())-margin)
	y := s.g.rng.Range(margin, float64(w.Height())-margin)
	w.Add(&Coin{}, "coin", x, y)
}

// Collector heads for the nearest coin and picks it up.
type Collector struct {
	world.Actor
	g *game
}

func (*Collector) Kind() world.Kind { return KindCollector }

func (c *Collector) Act(world.Frame) {
	w := c.World()
	diag := math.Hypot(float64(w.Width()), float64(w.Height()))
	var target world.Member
	best := math.Inf(1)
	for _, m := range c.GetActorsInRange(KindCoin, diag) {
		coin := m.(*Coin)
		if d := world.Distance(c.Position(), coin.Position()); d < best {
			best, target = d, m
		}
	}
	if target != nil {
		coin := target.(*Coin)
		c.TurnTowards(coin.X(), coin.Y())
		_ = c.Move(math.Min(c.g.cfg.Speed, best))
	}
	if c.RemoveTouching(KindCoin) != nil {
		c.g.collected++
		c.g.showScore(w)
	}
}

// Coin spins in place until collected.
type Coin struct {
	world.Actor
}

func (*Coin) Kind() world.Kind { return KindCoin }

func (c *Coin) Act(world.Frame) { c.Turn(6) }

func (g *game) showScore(w *world.World) {
	w.ShowText(fmt.Sprintf("Coins: %d", g.collected), 50, 12)
}

// New builds a coins world.
func New(opts core.Options) (*world.World, error) {
	cfg := FromMap(opts.Params)
	g := &game{cfg: cfg, rng: core.NewRNG(opts.Seed)}

	w := world.New(cfg.Width, cfg.Height)
	w.SetLogger(opts.Logger().With(zap.String("scene", "coins")))
	w.SetResolver(opts.Resolver)
	w.SetActOrder(KindSpawner, KindCollector, KindCoin)
	w.SetPaintOrder(KindCollector, KindCoin, KindSpawner)

	w.Add(&Spawner{g: g}, "spawner", float64(cfg.Width)/2, float64(cfg.Height)/2)
	for i := 0; i < cfg.Collectors; i++ {
		x := float64(cfg.Width) * float64(i+1) / float64(cfg.Collectors+1)
		w.Add(&Collector{g: g}, "collector", x, float64(cfg.Height)-20)
	}
	g.showScore(w)
	return w, nil
}

func init() {
	core.Register("coins", New)
}
