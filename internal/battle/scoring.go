package battle

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

// Score values.
const (
	TilePoints = 10
	RockBonus  = 5  // on top of TilePoints for a rock broken by adjacency
	SteelBonus = 10 // per steel tile worn down to zero life
)

// StepScore scores one cascade step at the given chain depth. Depth n
// multiplies the step by n.
func StepScore(step match3.CascadeStep, depth int) int {
	base := TilePoints*step.Cleared() + RockBonus*len(step.Matches.ExtraDestroyedIDs)
	return base * max(depth, 1)
}

// SteelHits returns the steel tiles of b orthogonally adjacent to any tile
// matched in res, each once, in board order.
func SteelHits(b match3.Board, res match3.MatchResult) []match3.TileID {
	if len(res.AllMatchedIDs) == 0 {
		return nil
	}

	matched := mapset.New[match3.Pos]()
	for _, id := range res.AllMatchedIDs {
		if t, ok := b.ByID(id); ok {
			matched.Put(t.Pos())
		}
	}

	var hits []match3.TileID
	for _, t := range b.Tiles {
		if t.Status != match3.StatusSteel {
			continue
		}
		for _, d := range []match3.Pos{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			if matched.Has(t.Pos().Add(d)) {
				hits = append(hits, t.ID)
				break
			}
		}
	}
	return hits
}

// ApplySteelDamage lowers the life of every steel tile in hits by its hit
// count and returns the new board with the ids of tiles that reached zero.
// The input board is not modified.
func ApplySteelDamage(b match3.Board, hits map[match3.TileID]int) (match3.Board, []match3.TileID) {
	if len(hits) == 0 {
		return b, nil
	}

	out := b.Clone()
	var broken []match3.TileID
	for i := range out.Tiles {
		t := &out.Tiles[i]
		n, ok := hits[t.ID]
		if !ok || t.Status != match3.StatusSteel {
			continue
		}
		t.StatusLife = max(t.StatusLife-n, 0)
		if t.StatusLife == 0 {
			broken = append(broken, t.ID)
		}
	}
	return out, broken
}
