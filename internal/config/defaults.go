package config

import (
	_ "embed"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineYAML returns the embedded default configuration file.
func DefaultEngineYAML() []byte {
	return defaultEngineYAML
}

// Default returns the hardcoded configuration. It matches the embedded
// defaults/engine.yaml and is used when that file cannot be parsed.
func Default() EngineConfig {
	p := match3.DefaultParams()
	rules := make(map[string]string, len(p.Rules))
	for el, rule := range p.Rules {
		rules[string(el)] = string(rule)
	}

	return EngineConfig{
		Board: BoardConfig{
			Width:  p.Width,
			Height: p.Height,
		},
		Generator: GeneratorConfig{
			MaxAttempts:   p.MaxGenerateAttempts,
			MaxReshuffles: p.MaxReshuffleAttempts,
		},
		Cascade: CascadeConfig{
			MaxSteps: p.MaxCascadeSteps,
		},
		Interference: InterferenceConfig{
			MinTiles:  p.InterferenceMin,
			MaxTiles:  p.InterferenceMax,
			SteelLife: p.SteelLife,
			Rules:     rules,
		},
		Roster: []KindConfig{
			{ID: "ember", Visual: "🔥", Element: string(match3.ElementFire)},
			{ID: "tide", Visual: "💧", Element: string(match3.ElementWater)},
			{ID: "sprout", Visual: "🌱", Element: string(match3.ElementGrass)},
			{ID: "pebble", Visual: "🪨", Element: string(match3.ElementEarth)},
			{ID: "volt", Visual: "⚡", Element: string(match3.ElementElectric)},
		},
		Enemies: []KindConfig{
			{ID: "golem", Visual: "🗿", Element: string(match3.ElementEarth)},
			{ID: "drake", Visual: "🐉", Element: string(match3.ElementFire)},
			{ID: "sentinel", Visual: "🤖", Element: string(match3.ElementMetal)},
			{ID: "sparkbot", Visual: "🔌", Element: string(match3.ElementElectric)},
			{ID: "kraken", Visual: "🐙", Element: string(match3.ElementWater)},
			{ID: "treant", Visual: "🌳", Element: string(match3.ElementGrass)},
			{ID: "wraith", Visual: "👻", Element: string(match3.ElementDark)},
		},
		Battle: BattleConfig{
			Turns:             30,
			InterferenceEvery: 3,
			Policy:            "greedy",
			Enemy:             "golem",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "turns",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				ExtraTiles:        2,
				IntervalReduction: 1,
			},
		},
	}
}
