package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "turns", MaxAt: 10},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		turn int
		want float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{50, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(0, tt.turn); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(0, %d) = %v, want %v", tt.turn, got, tt.want)
		}
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
	})
	if got := d.Level(50, 99); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(50, 99) = %v, want 0.5", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.7,
		Progression:  ProgressionConfig{Type: "turns", MaxAt: 10},
		Scaling:      ScalingConfig{ExtraTiles: 4, IntervalReduction: 2},
	})

	if d.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
	if got := d.Interval(3, 0, 10); got != 3 {
		t.Errorf("Interval() = %d, want the base 3", got)
	}
	if got := d.ExtraTiles(0, 10); got != 0 {
		t.Errorf("ExtraTiles() = %d, want 0", got)
	}
}

func TestDifficultyFlatLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "none"},
		Scaling:      ScalingConfig{ExtraTiles: 4},
	})
	if got := d.ExtraTiles(1000, 1000); got != 2 {
		t.Errorf("ExtraTiles() = %d, want 2 at a flat level of 0.5", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "turns", MaxAt: 10},
		Scaling:     ScalingConfig{ExtraTiles: 2, IntervalReduction: 5},
	})

	if got := d.Interval(3, 0, 0); got != 3 {
		t.Errorf("Interval at start = %d, want 3", got)
	}
	if got := d.Interval(3, 0, 10); got != 1 {
		t.Errorf("Interval at max = %d, want the floor of 1", got)
	}
	if got := d.ExtraTiles(0, 10); got != 2 {
		t.Errorf("ExtraTiles at max = %d, want 2", got)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		enabled  bool
		level    float64
		maxTiles int
	}{
		{DifficultyEasy, true, 0.0, 2},
		{DifficultyNormal, true, 0.3, 4},
		{DifficultyHard, true, 0.7, 5},
		{DifficultyFixed, false, 0.3, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default()
			if err := ApplyPreset(&cfg, tt.preset); err != nil {
				t.Fatalf("ApplyPreset failed: %v", err)
			}
			if cfg.Difficulty.Enabled != tt.enabled || cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("difficulty = %+v, want enabled=%v level=%v", cfg.Difficulty, tt.enabled, tt.level)
			}
			if cfg.Interference.MaxTiles != tt.maxTiles {
				t.Errorf("max tiles = %d, want %d", cfg.Interference.MaxTiles, tt.maxTiles)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	cfg := Default()
	if err := ApplyPreset(&cfg, "nightmare"); err == nil {
		t.Error("ApplyPreset accepted an unknown preset")
	}
}
