package crab

import "strconv"

// Config controls the crab scene.
type Config struct {
	Width    int
	Height   int
	Worms    int
	Lobsters int

	CrabSpeed    float64
	LobsterSpeed float64
	WormSpeed    float64
	TurnRate     float64
	ChaseRange   float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        560,
		Height:       560,
		Worms:        10,
		Lobsters:     3,
		CrabSpeed:    3,
		LobsterSpeed: 2,
		WormSpeed:    1,
		TurnRate:     5,
		ChaseRange:   120,
	}
}

// FromMap populates a Config from flag-style key/value pairs.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	positiveInt(cfg, "w", &c.Width)
	positiveInt(cfg, "h", &c.Height)
	if v, ok := cfg["worms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Worms = parsed
		}
	}
	if v, ok := cfg["lobsters"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Lobsters = parsed
		}
	}
	positiveFloat(cfg, "crab_speed", &c.CrabSpeed)
	positiveFloat(cfg, "lobster_speed", &c.LobsterSpeed)
	positiveFloat(cfg, "chase_range", &c.ChaseRange)
	return c
}

func positiveInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}

func positiveFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}
