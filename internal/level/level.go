// Package level reads YAML level files and turns them into populated worlds.
//
// A level names actor kinds; Build only constructs the kinds its caller
// passes in.
package level

import (
	"fmt"
	"os"

	"easygame/internal/core"
	"easygame/internal/world"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Placement puts one actor into the world.
type Placement struct {
	Kind     string  `yaml:"kind"`
	Image    string  `yaml:"image"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// Label is a text overlay.
type Label struct {
	Text string `yaml:"text"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Level is the decoded form of a level file.
type Level struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background string      `yaml:"background"`
	Bounded    *bool       `yaml:"bounded"`
	ActOrder   []string    `yaml:"act_order"`
	PaintOrder []string    `yaml:"paint_order"`
	Actors     []Placement `yaml:"actors"`
	Texts      []Label     `yaml:"texts"`
}

// Load reads and decodes the level at path.
func Load(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	l, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes level YAML.
func Parse(raw []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Images lists the distinct image names the level refers to, background
// first.
func (l *Level) Images() []string {
	seen := map[string]bool{}
	var names []string
	add := func(n string) {
		if n == "" || seen[n] {
			return
		}
		seen[n] = true
		names = append(names, n)
	}
	add(l.Background)
	for _, p := range l.Actors {
		add(p.Image)
	}
	return names
}

// Build creates the world and queues every placement. Actors join the world in
// its first commit phase, like any other addition. Placements whose kind is not
// in kinds are an error. With a resolver, every image must resolve before
// anything is built.
func (l *Level) Build(kinds core.Kinds, resolver world.ImageResolver, log *zap.Logger) (*world.World, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("level size %dx%d: width and height must be positive", l.Width, l.Height)
	}
	if resolver != nil {
		for _, name := range l.Images() {
			if _, err := resolver.Resolve(name); err != nil {
				return nil, fmt.Errorf("level image %q: %w", name, err)
			}
		}
	}
	members := make([]world.Member, len(l.Actors))
	for i, p := range l.Actors {
		m, ok := kinds.New(world.Kind(p.Kind))
		if !ok {
			return nil, fmt.Errorf("actor %d: unknown kind %q", i, p.Kind)
		}
		members[i] = m
	}

	w := world.New(l.Width, l.Height)
	if log != nil {
		w.SetLogger(log)
	}
	w.SetResolver(resolver)
	if l.Bounded != nil {
		w.SetBounded(*l.Bounded)
	}
	if l.Background != "" {
		w.SetBackground(l.Background)
	}
	w.SetActOrder(kindList(l.ActOrder)...)
	w.SetPaintOrder(kindList(l.PaintOrder)...)

	for i, p := range l.Actors {
		w.Add(members[i], p.Image, p.X, p.Y)
		world.ActorOf(members[i]).SetRotation(p.Rotation)
	}
	for _, t := range l.Texts {
		w.ShowText(t.Text, t.X, t.Y)
	}
	return w, nil
}

func kindList(names []string) []world.Kind {
	out := make([]world.Kind, len(names))
	for i, n := range names {
		out[i] = world.Kind(n)
	}
	return out
}
