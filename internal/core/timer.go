package core

import (
	"time"

	"easygame/internal/world"
)

// FixedStep helps run world updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the world should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Clock numbers frames and accumulates simulated time in fixed steps.
type Clock struct {
	step    time.Duration
	tick    uint64
	elapsed time.Duration
}

// NewClock returns a clock advancing 1/tps seconds per frame.
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = 60
	}
	return &Clock{step: time.Second / time.Duration(tps)}
}

// Next returns the context for the following frame.
func (c *Clock) Next(in world.Input) world.Frame {
	c.tick++
	c.elapsed += c.step
	return world.Frame{Tick: c.tick, Delta: c.step, Elapsed: c.elapsed, Input: in}
}

// Reset rewinds the clock to before the first frame.
func (c *Clock) Reset() {
	c.tick = 0
	c.elapsed = 0
}
