// Package autoplay implements the move-choosing policies used by simulated
// battles. Each policy registers itself with the registry in init().
package autoplay

import (
	"math/rand"

	"github.com/vovakirdan/tile-battle/internal/match3"
	"github.com/vovakirdan/tile-battle/internal/registry"
)

func init() {
	registry.Register("first", func(int64) registry.Policy { return First{} })
	registry.Register("random", func(seed int64) registry.Policy { return NewRandom(seed) })
	registry.Register("greedy", func(int64) registry.Policy { return Greedy{} })
}

// First plays the first enumerated move: top-left first, right before down.
type First struct{}

func (First) ID() string { return "first" }
func (First) Title() string { return "First Move" }

func (First) Choose(_ match3.Board, moves []match3.Move) match3.Move {
	return moves[0]
}

// Random plays a uniformly chosen move from its own seeded source.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) ID() string { return "random" }
func (*Random) Title() string { return "Random Move" }

func (p *Random) Choose(_ match3.Board, moves []match3.Move) match3.Move {
	return moves[p.rng.Intn(len(moves))]
}

// Greedy plays the move whose immediate match clears the most tiles,
// counting rocks destroyed by adjacency. Ties go to the earliest move.
type Greedy struct{}

func (Greedy) ID() string { return "greedy" }
func (Greedy) Title() string { return "Greedy" }

func (Greedy) Choose(b match3.Board, moves []match3.Move) match3.Move {
	best, bestScore := moves[0], -1
	for _, m := range moves {
		if s := Yield(b, m); s > bestScore {
			best, bestScore = m, s
		}
	}
	return best
}

// Yield returns how many tiles m would clear in its first match step, or 0
// if the swap is illegal or makes no match.
func Yield(b match3.Board, m match3.Move) int {
	_, res, err := match3.TrySwap(b, m)
	if err != nil {
		return 0
	}
	return len(res.RemovalIDs())
}
