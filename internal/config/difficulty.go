package config

import (
	"fmt"
	"math"
)

// DifficultyConfig defines how enemy pressure ramps up over a battle.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a battle.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "turns", or "none"
	MaxAt int    `yaml:"max_at"` // Score/turn at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraTiles        int `yaml:"extra_tiles"`        // Obstacles added per interference at max difficulty
	IntervalReduction int `yaml:"interval_reduction"` // Turns removed between interferences at max difficulty
}

func (d DifficultyConfig) validate() error {
	switch d.Progression.Type {
	case "", "none", "score", "turns":
	default:
		return fmt.Errorf("%w: difficulty progression %q", ErrInvalid, d.Progression.Type)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return fmt.Errorf("%w: difficulty initial_level %.2f outside [0, 1]", ErrInvalid, d.InitialLevel)
	}
	if d.Scaling.ExtraTiles < 0 || d.Scaling.IntervalReduction < 0 {
		return fmt.Errorf("%w: difficulty scaling must not be negative", ErrInvalid)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) error {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	default:
		return fmt.Errorf("config: unknown difficulty %q", preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Interference.MaxTiles = cfg.Interference.MinTiles
	case DifficultyHard:
		cfg.Interference.MaxTiles++
	}
	return nil
}

// DifficultyManager calculates interference pressure based on score/turns.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/turn.
func (d *DifficultyManager) Level(score int, turn int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "turns":
		progress = float64(turn) / maxAt
	}
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// Interval returns the number of player turns between interferences.
func (d *DifficultyManager) Interval(base int, score int, turn int) int {
	level := d.Level(score, turn)
	result := base - int(level*float64(d.cfg.Scaling.IntervalReduction))
	if result < 1 {
		result = 1
	}
	return result
}

// ExtraTiles returns how many obstacles to add on top of the base range.
func (d *DifficultyManager) ExtraTiles(score int, turn int) int {
	return int(d.Level(score, turn) * float64(d.cfg.Scaling.ExtraTiles))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
