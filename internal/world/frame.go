package world

import "time"

// Input reports which named keys are held during the current frame. Hosts map
// their native key codes onto lower-case names such as "left", "space" or "a".
type Input interface {
	Pressed(key string) bool
}

// Frame is the per-tick context handed to World.Update and World.Draw. It
// replaces any process-wide game instance: everything an actor may need from
// the host travels here.
type Frame struct {
	Tick    uint64
	Delta   time.Duration
	Elapsed time.Duration
	Input   Input
}

// Pressed reports whether key is held. A frame without input reports false.
func (f Frame) Pressed(key string) bool {
	if f.Input == nil {
		return false
	}
	return f.Input.Pressed(key)
}

// Seconds returns Delta in seconds.
func (f Frame) Seconds() float64 { return f.Delta.Seconds() }

// Keys is a fixed set of held keys, handy for tests and replays.
type Keys map[string]bool

// Pressed implements Input.
func (k Keys) Pressed(key string) bool { return k[key] }
