package core

import "time"

// RuntimeConfig carries process-wide settings from the CLI down to the
// battle controller.
type RuntimeConfig struct {
	Seed     int64  // RNG seed; 0 picks one from the clock
	LogLevel string // debug, info, warn, error
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed:     0,
		LogLevel: "info",
	}
}

// ResolvedSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c RuntimeConfig) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
