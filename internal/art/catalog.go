// Package art resolves symbolic image names into loaded sprites. Names are
// queued with Add, loaded in bulk by Load, and looked up by the world when
// actors are committed.
package art

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"easygame/internal/world"

	"go.uber.org/zap"
)

// ErrImageNotFound is returned for names that were never loaded.
var ErrImageNotFound = errors.New("image not found")

// Sprite is a loaded image plus the hints text backends need to show it.
type Sprite struct {
	Name   string
	Pixels image.Image
	Glyph  rune
	Color  color.RGBA
}

// Bounds implements world.Image.
func (s *Sprite) Bounds() image.Rectangle {
	if s.Pixels == nil {
		return image.Rectangle{}
	}
	return s.Pixels.Bounds()
}

// Loader produces a sprite for a name.
type Loader interface {
	Load(name string) (*Sprite, error)
}

// Catalog holds loaded sprites by name.
type Catalog struct {
	sprites map[string]*Sprite
	pending map[string]struct{}
	log     *zap.Logger
}

// NewCatalog returns an empty catalog. A nil logger disables logging.
func NewCatalog(log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		sprites: map[string]*Sprite{},
		pending: map[string]struct{}{},
		log:     log,
	}
}

// Add queues names for the next Load. Duplicates are collapsed.
func (c *Catalog) Add(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		c.pending[name] = struct{}{}
	}
}

// Load loads every queued name through l and clears the queue. Names that
// fail to load are reported together and stay unresolved.
func (c *Catalog) Load(l Loader) error {
	names := make([]string, 0, len(c.pending))
	for name := range c.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	clear(c.pending)

	var errs []error
	for _, name := range names {
		s, err := l.Load(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		c.Put(s)
	}
	c.log.Debug("art loaded", zap.Int("images", len(names)-len(errs)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// Put stores s under its name, replacing any previous sprite.
func (c *Catalog) Put(s *Sprite) {
	if s == nil || s.Name == "" {
		return
	}
	c.sprites[s.Name] = s
}

// Contains reports whether name has been loaded.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.sprites[name]
	return ok
}

// Get returns the sprite loaded for name.
func (c *Catalog) Get(name string) (*Sprite, error) {
	s, ok := c.sprites[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrImageNotFound)
	}
	return s, nil
}

// Resolve implements world.ImageResolver.
func (c *Catalog) Resolve(name string) (world.Image, error) {
	s, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Names lists the loaded names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sprites))
	for name := range c.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
