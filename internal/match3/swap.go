package match3

import (
	"errors"
	"fmt"
)

var (
	ErrNotAdjacent = errors.New("match3: cells are not adjacent")
	ErrEmptyCell   = errors.New("match3: cell is empty")
	ErrImmovable   = errors.New("match3: tile cannot be moved")
	ErrNoMatch     = errors.New("match3: swap makes no match")
)

// Swap exchanges the tiles at a and c. Both cells must be on the board,
// adjacent, occupied, and hold neither rock nor steel.
func Swap(b Board, a, c Pos) (Board, error) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return b, fmt.Errorf("match3: swap %v %v: %w", a, c, ErrOutOfBounds)
	}
	if !a.Adjacent(c) {
		return b, fmt.Errorf("match3: swap %v %v: %w", a, c, ErrNotAdjacent)
	}

	g := b.grid()
	ia, ic := g.index(a.X, a.Y), g.index(c.X, c.Y)
	if ia < 0 || ic < 0 {
		return b, fmt.Errorf("match3: swap %v %v: %w", a, c, ErrEmptyCell)
	}
	if !b.Tiles[ia].Movable() || !b.Tiles[ic].Movable() {
		return b, fmt.Errorf("match3: swap %v %v: %w", a, c, ErrImmovable)
	}

	out := b.Clone()
	out.Tiles[ia].X, out.Tiles[ia].Y = c.X, c.Y
	out.Tiles[ic].X, out.Tiles[ic].Y = a.X, a.Y
	return out, nil
}

// TrySwap applies m only if the result contains a match. On failure the
// original board is returned with the error.
func TrySwap(b Board, m Move) (Board, MatchResult, error) {
	swapped, err := Swap(b, m.A, m.B)
	if err != nil {
		return b, MatchResult{}, err
	}
	res := FindMatches(swapped)
	if res.Empty() {
		return b, MatchResult{}, fmt.Errorf("match3: swap %v %v: %w", m.A, m.B, ErrNoMatch)
	}
	return swapped, res, nil
}
