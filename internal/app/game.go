//go:build ebiten

package app

import (
	"time"

	"easygame/internal/render"
	"easygame/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyboard maps world key names onto ebiten keys.
type keyboard struct{}

var namedKeys = map[string]ebiten.Key{
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"space": ebiten.KeySpace,
	"enter": ebiten.KeyEnter,
}

// Pressed implements world.Input.
func (keyboard) Pressed(name string) bool {
	if k, ok := namedKeys[name]; ok {
		return ebiten.IsKeyPressed(k)
	}
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		return ebiten.IsKeyPressed(ebiten.KeyA + ebiten.Key(name[0]-'a'))
	}
	return false
}

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	sprites *render.Sprites
	hud     *ui.HUD
	overlay *ui.Overlay

	scale       int
	paused      bool
	tickOnce    bool
	showHUD     bool
	showOverlay bool
}

// New constructs a Game for the provided session.
func New(s *Session, cfg *Config) *Game {
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &Game{
		session: s,
		sprites: render.NewSprites(scale),
		hud:     ui.NewHUD(s, s.Scene(), cfg.HUDWidth),
		overlay: ui.NewOverlay(scale),
		scale:   scale,
		showHUD: cfg.ShowHUD,
	}
}

// Update handles host keys and advances the world. A world update error ends
// the run.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.session.Reset(g.session.Seed()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.session.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.showOverlay = !g.showOverlay
	}

	if g.showHUD {
		g.hud.Update(g.session.World().Width() * g.scale)
	}

	if !g.paused || g.tickOnce {
		g.tickOnce = false
		if _, err := g.session.Step(keyboard{}); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the world, then the optional overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	g.sprites.Begin(screen)
	w.Draw(g.session.Frame(), g.sprites)
	if g.showOverlay {
		g.overlay.Draw(screen, w)
	}
	if g.showHUD {
		g.hud.Draw(screen, w.Width()*g.scale, w.Height()*g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.session.World()
	width := w.Width() * g.scale
	if g.showHUD {
		width += g.hud.Width()
	}
	return width, w.Height() * g.scale
}
