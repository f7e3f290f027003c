package app

import (
	"context"
	"strings"
	"time"

	"easygame/internal/render"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// holdWindow is how long a key counts as held after its last press event.
// Terminals report no key releases, only auto-repeat.
const holdWindow = 150 * time.Millisecond

// heldKeys implements world.Input from terminal key events.
type heldKeys struct {
	seen map[string]time.Time
	now  func() time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{seen: map[string]time.Time{}, now: time.Now}
}

func (k *heldKeys) press(name string) { k.seen[name] = k.now() }

// Pressed implements world.Input.
func (k *heldKeys) Pressed(key string) bool {
	t, ok := k.seen[key]
	return ok && k.now().Sub(t) < holdWindow
}

// keyName maps a tcell key event onto the world's key names.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return strings.ToLower(string(ev.Rune()))
	}
	return ""
}

// Terminal runs a session on a tcell screen.
type Terminal struct {
	session  *Session
	screen   tcell.Screen
	renderer *render.Terminal
	step     stepper
	keys     *heldKeys
	paused   bool
	log      *zap.Logger
}

type stepper interface {
	ShouldStep() bool
	Step() time.Duration
}

// NewTerminal prepares a terminal host. The screen must already be
// initialised; the caller finalises it.
func NewTerminal(s *Session, screen tcell.Screen, step stepper, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	w := s.World()
	return &Terminal{
		session:  s,
		screen:   screen,
		renderer: render.NewTerminal(screen, w.Width(), w.Height()),
		step:     step,
		keys:     newHeldKeys(),
		log:      log,
	}
}

// Run drives the session until ctx ends or the player quits. It returns the
// first world update error.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.step.Step())
	defer ticker.Stop()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if t.paused || !t.step.ShouldStep() {
				continue
			}
			if err := t.tick(); err != nil {
				return err
			}
		}
	}
}

// handle applies one event and reports whether the loop should continue.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			t.paused = !t.paused
			t.log.Debug("pause toggled", zap.Bool("paused", t.paused))
			return true
		}
		if name := keyName(ev); name != "" {
			t.keys.press(name)
		}
	case *tcell.EventResize:
		t.screen.Sync()
		w := t.session.World()
		t.renderer.Resize(w.Width(), w.Height())
		t.draw()
	}
	return true
}

// tick advances the world one frame and redraws.
func (t *Terminal) tick() error {
	if _, err := t.session.Step(t.keys); err != nil {
		t.log.Error("world update", zap.Error(err))
		return err
	}
	t.draw()
	return nil
}

func (t *Terminal) draw() {
	t.renderer.Begin()
	t.session.World().Draw(t.session.Frame(), t.renderer)
	t.screen.Show()
}
