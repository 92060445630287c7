package match3

import (
	"slices"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// MinRun is the shortest line of same-kind tiles that counts as a match.
const MinRun = 3

// Direction is the orientation of a run.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// MatchGroup is one detected run.
type MatchGroup struct {
	IDs       []TileID // in board order: left to right, or top to bottom
	KindID    string
	Direction Direction
	Center    Pos      // cell of the middle tile, where effects spawn
	Destroys  []TileID // rocks adjacent to the run
}

// MatchResult aggregates every group found in one scan.
type MatchResult struct {
	Groups            []MatchGroup
	AllMatchedIDs     []TileID // union of group ids, each once
	ExtraDestroyedIDs []TileID // union of group rock bonuses, each once
}

// Empty reports whether the scan found nothing.
func (r MatchResult) Empty() bool {
	return len(r.Groups) == 0
}

// RemovalIDs returns matched and bonus-destroyed ids together, ready for
// ApplyGravity.
func (r MatchResult) RemovalIDs() []TileID {
	ids := make([]TileID, 0, len(r.AllMatchedIDs)+len(r.ExtraDestroyedIDs))
	ids = append(ids, r.AllMatchedIDs...)
	return append(ids, r.ExtraDestroyedIDs...)
}

// FindMatches scans rows then columns for runs of MinRun or more matchable
// tiles of one kind. Crossing runs stay separate groups that share a tile;
// AllMatchedIDs lists that tile once. The board is not modified.
func FindMatches(b Board) MatchResult {
	s := scanner{
		board:   b,
		g:       b.grid(),
		seen:    mapset.New[string](),
		matched: mapset.New[TileID](),
		extra:   mapset.New[TileID](),
	}

	for y := range b.H {
		s.scanLine(b.W, func(i int) int { return s.g.index(i, y) }, Horizontal)
	}
	for x := range b.W {
		s.scanLine(b.H, func(i int) int { return s.g.index(x, i) }, Vertical)
	}

	return s.result
}

type scanner struct {
	board   Board
	g       grid
	seen    mapset.Set[string]
	matched mapset.Set[TileID]
	extra   mapset.Set[TileID]
	result  MatchResult
}

// scanLine walks n cells, where cell(i) yields the tile index at step i.
func (s *scanner) scanLine(n int, cell func(i int) int, dir Direction) {
	var run []int
	for i := 0; i <= n; i++ {
		idx := -1
		if i < n {
			idx = cell(i)
		}
		if idx >= 0 && s.board.Tiles[idx].Matchable() {
			if len(run) > 0 && s.board.Tiles[run[0]].KindID == s.board.Tiles[idx].KindID {
				run = append(run, idx)
				continue
			}
			s.flush(run, dir)
			run = []int{idx}
			continue
		}
		s.flush(run, dir)
		run = nil
	}
}

func (s *scanner) flush(run []int, dir Direction) {
	if len(run) < MinRun {
		return
	}

	tiles := s.board.Tiles
	grp := MatchGroup{
		IDs:       make([]TileID, len(run)),
		KindID:    tiles[run[0]].KindID,
		Direction: dir,
		Center:    tiles[run[len(run)/2]].Pos(),
	}
	for i, idx := range run {
		grp.IDs[i] = tiles[idx].ID
	}

	sig := signature(grp.IDs, dir)
	if s.seen.Has(sig) {
		return
	}
	s.seen.Put(sig)

	rocks := mapset.New[TileID]()
	for _, idx := range run {
		t := tiles[idx]
		for _, d := range neighbors {
			n := t.Pos().Add(d)
			ni := s.g.index(n.X, n.Y)
			if ni < 0 || tiles[ni].Status != StatusRock {
				continue
			}
			rock := tiles[ni].ID
			if !rocks.Has(rock) {
				rocks.Put(rock)
				grp.Destroys = append(grp.Destroys, rock)
			}
			if !s.extra.Has(rock) {
				s.extra.Put(rock)
				s.result.ExtraDestroyedIDs = append(s.result.ExtraDestroyedIDs, rock)
			}
		}
	}

	for _, id := range grp.IDs {
		if !s.matched.Has(id) {
			s.matched.Put(id)
			s.result.AllMatchedIDs = append(s.result.AllMatchedIDs, id)
		}
	}
	s.result.Groups = append(s.result.Groups, grp)
}

// signature identifies a group by direction and sorted ids.
func signature(ids []TileID, dir Direction) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	var sb strings.Builder
	sb.WriteString(string(dir))
	for _, id := range sorted {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}
