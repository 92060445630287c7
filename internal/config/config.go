// Package config provides YAML-based engine and battle configuration
// loading for tile-battle.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

var (
	ErrInvalid      = errors.New("config: invalid")
	ErrUnknownEnemy = errors.New("config: unknown enemy")
)

// EngineConfig contains all configuration for the engine and the battle
// simulator.
type EngineConfig struct {
	Board        BoardConfig        `yaml:"board"`
	Generator    GeneratorConfig    `yaml:"generator"`
	Cascade      CascadeConfig      `yaml:"cascade"`
	Interference InterferenceConfig `yaml:"interference"`
	Roster       []KindConfig       `yaml:"roster"`
	Enemies      []KindConfig       `yaml:"enemies"`
	Battle       BattleConfig       `yaml:"battle"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GeneratorConfig bounds the retry loops used when building boards.
type GeneratorConfig struct {
	MaxAttempts   int `yaml:"max_attempts"`   // Resamples per cell
	MaxReshuffles int `yaml:"max_reshuffles"` // Fresh boards tried by a reshuffle
}

// CascadeConfig bounds cascade resolution.
type CascadeConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// InterferenceConfig defines enemy obstacle placement.
type InterferenceConfig struct {
	MinTiles  int               `yaml:"min_tiles"`
	MaxTiles  int               `yaml:"max_tiles"`
	SteelLife int               `yaml:"steel_life"`
	Rules     map[string]string `yaml:"rules"` // element -> rock, steel, ice or random
}

// KindConfig describes one roster or enemy kind.
type KindConfig struct {
	ID      string `yaml:"id"`
	Visual  string `yaml:"visual"`
	Element string `yaml:"element"`
}

// BattleConfig defines the simulated battle loop.
type BattleConfig struct {
	Turns             int    `yaml:"turns"`
	InterferenceEvery int    `yaml:"interference_every"` // Enemy acts every N player turns
	Policy            string `yaml:"policy"`
	Enemy             string `yaml:"enemy"`
}

// Kind converts the entry to an engine kind. An empty visual falls back to
// the id.
func (k KindConfig) Kind() match3.Kind {
	visual := k.Visual
	if visual == "" {
		visual = k.ID
	}
	return match3.Kind{ID: k.ID, Visual: visual, Element: match3.Element(k.Element)}
}

// RosterKinds returns the player roster as engine kinds.
func (c EngineConfig) RosterKinds() []match3.Kind {
	kinds := make([]match3.Kind, len(c.Roster))
	for i, k := range c.Roster {
		kinds[i] = k.Kind()
	}
	return kinds
}

// Enemy looks up an enemy by id.
func (c EngineConfig) Enemy(id string) (match3.Kind, error) {
	for _, k := range c.Enemies {
		if k.ID == id {
			return k.Kind(), nil
		}
	}
	return match3.Kind{}, fmt.Errorf("%w %q", ErrUnknownEnemy, id)
}

// EngineParams converts the config to engine parameters.
func (c EngineConfig) EngineParams() match3.Params {
	rules := make(map[match3.Element]match3.ObstacleRule, len(c.Interference.Rules))
	for el, rule := range c.Interference.Rules {
		rules[match3.Element(el)] = match3.ObstacleRule(rule)
	}
	return match3.Params{
		Width:                c.Board.Width,
		Height:               c.Board.Height,
		MaxGenerateAttempts:  c.Generator.MaxAttempts,
		MaxCascadeSteps:      c.Cascade.MaxSteps,
		MaxReshuffleAttempts: c.Generator.MaxReshuffles,
		InterferenceMin:      c.Interference.MinTiles,
		InterferenceMax:      c.Interference.MaxTiles,
		SteelLife:            c.Interference.SteelLife,
		Rules:                rules,
	}
}

// Validate reports the first problem that would make the config unusable.
func (c EngineConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Generator.MaxAttempts <= 0 || c.Generator.MaxReshuffles <= 0 {
		return fmt.Errorf("%w: generator attempts must be positive", ErrInvalid)
	}
	if c.Cascade.MaxSteps <= 0 {
		return fmt.Errorf("%w: cascade max_steps must be positive", ErrInvalid)
	}

	in := c.Interference
	if in.MinTiles <= 0 || in.MinTiles > in.MaxTiles {
		return fmt.Errorf("%w: interference tiles %d..%d", ErrInvalid, in.MinTiles, in.MaxTiles)
	}
	if in.SteelLife <= 0 {
		return fmt.Errorf("%w: steel_life must be positive", ErrInvalid)
	}
	for el, rule := range in.Rules {
		if !match3.ObstacleRule(rule).Valid() {
			return fmt.Errorf("%w: element %q has unknown obstacle %q", ErrInvalid, el, rule)
		}
	}

	if len(c.Roster) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, match3.ErrEmptyRoster)
	}
	if err := uniqueIDs("roster", c.Roster); err != nil {
		return err
	}
	if err := uniqueIDs("enemies", c.Enemies); err != nil {
		return err
	}

	if c.Battle.Turns <= 0 || c.Battle.InterferenceEvery <= 0 {
		return fmt.Errorf("%w: battle turns and interference_every must be positive", ErrInvalid)
	}
	if c.Battle.Enemy != "" {
		if _, err := c.Enemy(c.Battle.Enemy); err != nil {
			return fmt.Errorf("%w: battle: %w", ErrInvalid, err)
		}
	}
	return c.Difficulty.validate()
}

func uniqueIDs(section string, kinds []KindConfig) error {
	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		if k.ID == "" {
			return fmt.Errorf("%w: %s entry without id", ErrInvalid, section)
		}
		if seen[k.ID] {
			return fmt.Errorf("%w: %s id %q repeated", ErrInvalid, section, k.ID)
		}
		seen[k.ID] = true
	}
	return nil
}
