package core

import (
	"sort"

	"easygame/internal/world"

	"go.uber.org/zap"
)

// Options carries everything a scene factory may need from the host.
type Options struct {
	Seed      int64
	Resolver  world.ImageResolver
	LevelDir  string
	ScriptDir string
	Log       *zap.Logger
	Params    map[string]string
}

// Logger returns the configured logger or a no-op one.
func (o Options) Logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// Factory builds a populated world for a scene.
type Factory func(opts Options) (*world.World, error)

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists registered scenes in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActorFactory returns a fresh, unplaced actor.
type ActorFactory func() world.Member

// Kinds lists the actor kinds one scene can construct by name, e.g. from
// level files. Each scene builds its own set so actors get that scene's state.
type Kinds map[world.Kind]ActorFactory

// New constructs an actor of kind. The boolean is false for kinds not in k.
func (k Kinds) New(kind world.Kind) (world.Member, bool) {
	f, ok := k[kind]
	if !ok || f == nil {
		return nil, false
	}
	return f(), true
}
