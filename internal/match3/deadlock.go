package match3

// Move is a swap of two orthogonally adjacent cells.
type Move struct {
	A, B Pos
}

// HasPossibleMoves reports whether any single adjacent swap would create a
// run. Rock and steel are left out entirely, even as swap partners. Each
// pair is tried once to the right and once downward and probed only around
// the two swapped cells.
func HasPossibleMoves(b Board) bool {
	found := false
	eachMove(b, func(Move) bool {
		found = true
		return false
	})
	return found
}

// PossibleMoves lists every swap HasPossibleMoves would accept, ordered by
// the first cell (row-major), right before down.
func PossibleMoves(b Board) []Move {
	var moves []Move
	eachMove(b, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// eachMove calls fn for every matching swap until fn returns false.
func eachMove(b Board, fn func(Move) bool) {
	p := newProbe(b)
	for y := range b.H {
		for x := range b.W {
			for _, d := range [2]Pos{{1, 0}, {0, 1}} {
				nx, ny := x+d.X, y+d.Y
				if nx >= b.W || ny >= b.H {
					continue
				}
				if p.trySwap(x, y, nx, ny) && !fn(Move{A: P(x, y), B: P(nx, ny)}) {
					return
				}
			}
		}
	}
}

// probe is a scratch kind grid for simulated swaps. Empty string marks a
// cell that cannot take part: empty, rock or steel.
type probe struct {
	w, h  int
	kinds []string
}

func newProbe(b Board) probe {
	p := probe{w: b.W, h: b.H, kinds: make([]string, b.W*b.H)}
	for _, t := range b.Tiles {
		if b.InBounds(t.Pos()) && t.Matchable() {
			p.kinds[t.Y*b.W+t.X] = t.KindID
		}
	}
	return p
}

// trySwap swaps two cells, probes both, and restores them.
func (p probe) trySwap(ax, ay, bx, by int) bool {
	a, c := ay*p.w+ax, by*p.w+bx
	if p.kinds[a] == "" || p.kinds[c] == "" || p.kinds[a] == p.kinds[c] {
		return false
	}
	p.kinds[a], p.kinds[c] = p.kinds[c], p.kinds[a]
	ok := p.runAt(ax, ay) || p.runAt(bx, by)
	p.kinds[a], p.kinds[c] = p.kinds[c], p.kinds[a]
	return ok
}

// runAt reports whether (x, y) sits in a horizontal or vertical run.
func (p probe) runAt(x, y int) bool {
	k := p.kinds[y*p.w+x]
	if k == "" {
		return false
	}
	return 1+p.count(x, y, -1, 0, k)+p.count(x, y, 1, 0, k) >= MinRun ||
		1+p.count(x, y, 0, -1, k)+p.count(x, y, 0, 1, k) >= MinRun
}

// count returns how many consecutive cells of kind k follow (x, y) in
// direction (dx, dy).
func (p probe) count(x, y, dx, dy int, k string) int {
	n := 0
	for {
		x, y = x+dx, y+dy
		if x < 0 || x >= p.w || y < 0 || y >= p.h || p.kinds[y*p.w+x] != k {
			return n
		}
		n++
	}
}
