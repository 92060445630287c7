package match3

import "math/rand"

// Rand is the random source used for kind selection and interference.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// IDSource mints tile ids. It is a plain counter owned by the caller, so
// two engines never share hidden state.
type IDSource struct {
	last TileID
}

// NewIDSource returns a source whose first id is start+1.
func NewIDSource(start TileID) *IDSource {
	return &IDSource{last: start}
}

// Next returns a fresh id.
func (s *IDSource) Next() TileID {
	s.last++
	return s.last
}

// Reserve makes sure every later id is greater than id.
func (s *IDSource) Reserve(id TileID) {
	s.last = max(s.last, id)
}

// Last returns the most recently minted id.
func (s *IDSource) Last() TileID {
	return s.last
}

// ObstacleRule selects which obstacle an enemy element produces.
type ObstacleRule string

const (
	RuleRock   ObstacleRule = "rock"
	RuleSteel  ObstacleRule = "steel"
	RuleIce    ObstacleRule = "ice"
	RuleRandom ObstacleRule = "random"
)

// Valid reports whether r is a known rule.
func (r ObstacleRule) Valid() bool {
	switch r {
	case RuleRock, RuleSteel, RuleIce, RuleRandom:
		return true
	}
	return false
}

// DefaultRules is the element to obstacle mapping of the base game.
// Elements missing from the map behave as RuleRandom.
func DefaultRules() map[Element]ObstacleRule {
	return map[Element]ObstacleRule{
		ElementEarth:    RuleRock,
		ElementFire:     RuleRock,
		ElementMetal:    RuleSteel,
		ElementElectric: RuleSteel,
		ElementWater:    RuleIce,
		ElementGrass:    RuleRandom,
		ElementDark:     RuleRandom,
	}
}

// Params tunes an Engine. Zero fields fall back to DefaultParams.
type Params struct {
	Width                int
	Height               int
	MaxGenerateAttempts  int // resamples per cell before a pre-match is accepted
	MaxCascadeSteps      int
	MaxReshuffleAttempts int
	InterferenceMin      int
	InterferenceMax      int
	SteelLife            int
	Rules                map[Element]ObstacleRule
}

// DefaultParams returns the parameters of the 6x6 combat board.
func DefaultParams() Params {
	return Params{
		Width:                DefaultSize,
		Height:               DefaultSize,
		MaxGenerateAttempts:  50,
		MaxCascadeSteps:      20,
		MaxReshuffleAttempts: 20,
		InterferenceMin:      2,
		InterferenceMax:      4,
		SteelLife:            5,
		Rules:                DefaultRules(),
	}
}

// withDefaults fills unset fields.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.MaxGenerateAttempts <= 0 {
		p.MaxGenerateAttempts = d.MaxGenerateAttempts
	}
	if p.MaxCascadeSteps <= 0 {
		p.MaxCascadeSteps = d.MaxCascadeSteps
	}
	if p.MaxReshuffleAttempts <= 0 {
		p.MaxReshuffleAttempts = d.MaxReshuffleAttempts
	}
	if p.InterferenceMin <= 0 {
		p.InterferenceMin = d.InterferenceMin
	}
	if p.InterferenceMax < p.InterferenceMin {
		p.InterferenceMax = p.InterferenceMin
	}
	if p.SteelLife <= 0 {
		p.SteelLife = d.SteelLife
	}
	if p.Rules == nil {
		p.Rules = d.Rules
	}
	return p
}

// Engine owns the random source and id counter used by the operations that
// create or alter tiles. It is not safe for concurrent use; a battle drives
// one engine from a single turn loop.
type Engine struct {
	params Params
	rng    Rand
	ids    *IDSource
}

// New creates an engine. A nil ids starts a fresh counter at zero.
func New(p Params, rng Rand, ids *IDSource) *Engine {
	if ids == nil {
		ids = NewIDSource(0)
	}
	return &Engine{
		params: p.withDefaults(),
		rng:    rng,
		ids:    ids,
	}
}

// NewSeeded creates an engine backed by math/rand seeded with seed.
func NewSeeded(p Params, seed int64) *Engine {
	return New(p, rand.New(rand.NewSource(seed)), nil)
}

// Params returns the effective parameters.
func (e *Engine) Params() Params {
	return e.params
}

// IDs returns the engine's id source.
func (e *Engine) IDs() *IDSource {
	return e.ids
}

// pick returns a random roster entry.
func (e *Engine) pick(roster []Kind) Kind {
	return roster[e.rng.Intn(len(roster))]
}

// spawn creates a fresh normal tile at (x, y).
func (e *Engine) spawn(k Kind, x, y int) Tile {
	return Tile{
		ID:     e.ids.Next(),
		KindID: k.ID,
		Visual: k.Visual,
		Status: StatusNormal,
		X:      x,
		Y:      y,
	}
}
