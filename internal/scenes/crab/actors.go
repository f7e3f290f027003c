package crab

import (
	"fmt"

	"easygame/internal/core"
	"easygame/internal/world"
)

// Actor kinds of the crab scene.
const (
	KindCrab    world.Kind = "crab"
	KindWorm    world.Kind = "worm"
	KindLobster world.Kind = "lobster"
)

// Crab is steered with the left and right keys and eats worms.
type Crab struct {
	world.Actor
	g *game
}

func (*Crab) Kind() world.Kind { return KindCrab }

func (c *Crab) Act(f world.Frame) {
	if c.g.over {
		return
	}
	if f.Pressed("left") {
		c.Turn(-c.g.cfg.TurnRate)
	}
	if f.Pressed("right") {
		c.Turn(c.g.cfg.TurnRate)
	}
	_ = c.Move(c.g.cfg.CrabSpeed)

	if !c.IsTouching(KindWorm) {
		return
	}
	c.RemoveTouching(KindWorm)
	c.g.eaten++
	w := c.World()
	c.g.showScore(w)
	if c.g.eaten >= c.g.worms {
		c.g.over = true
		w.ShowText("You win!", w.Width()/2, w.Height()/2)
	}
}

// Worm wanders randomly.
type Worm struct {
	world.Actor
	g *game
}

func (*Worm) Kind() world.Kind { return KindWorm }

func (w *Worm) Act(world.Frame) {
	if w.g.rng.Chance(0.1) {
		w.Turn(w.g.rng.Range(-45, 45))
	}
	_ = w.Move(w.g.cfg.WormSpeed)
	if w.IsAtEdge() {
		w.Turn(180)
	}
}

// Lobster roams and chases the crab once it comes into range. Lobsters freeze
// once the game is over.
type Lobster struct {
	world.Actor
	g *game
}

func (*Lobster) Kind() world.Kind { return KindLobster }

func (l *Lobster) Act(world.Frame) {
	if l.g.over {
		return
	}
	if near := l.GetActorsInRange(KindCrab, l.g.cfg.ChaseRange); len(near) > 0 {
		target := near[0].(*Crab)
		l.TurnTowards(target.X(), target.Y())
	} else if l.g.rng.Chance(0.1) {
		l.Turn(l.g.rng.Range(-45, 45))
	}
	_ = l.Move(l.g.cfg.LobsterSpeed)
	if l.IsAtEdge() {
		turn := 17 + l.g.rng.Range(0, 20)
		if l.g.rng.Bool() {
			turn = -turn
		}
		l.Turn(turn)
	}

	if l.RemoveTouching(KindCrab) != nil {
		l.g.over = true
		w := l.World()
		w.ShowText("Game over", w.Width()/2, w.Height()/2)
	}
}

// game is the state shared by the actors of one crab world.
type game struct {
	cfg   Config
	rng   *core.RNG
	worms int
	eaten int
	// over stops the crab and the lobsters after a win or a catch.
	over bool
}

// kinds lists the actors a crab level may place, each wired to g.
func (g *game) kinds() core.Kinds {
	return core.Kinds{
		KindCrab:    func() world.Member { return g.configure(&Crab{}) },
		KindWorm:    func() world.Member { return g.configure(&Worm{}) },
		KindLobster: func() world.Member { return g.configure(&Lobster{}) },
	}
}

// configure hands g to actors of this scene and returns m.
func (g *game) configure(m world.Member) world.Member {
	switch a := m.(type) {
	case *Crab:
		a.g = g
	case *Worm:
		a.g = g
		g.worms++
	case *Lobster:
		a.g = g
	}
	return m
}

func (g *game) showScore(w *world.World) {
	w.ShowText(fmt.Sprintf("Worms eaten: %d/%d", g.eaten, g.worms), w.Width()/2, 16)
}
