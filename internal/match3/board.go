package match3

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// DefaultSize is the board dimension used by the combat mini-game.
const DefaultSize = 6

var (
	ErrEmptyRoster  = errors.New("match3: roster is empty")
	ErrOutOfBounds  = errors.New("match3: position out of bounds")
	ErrOverlap      = errors.New("match3: two tiles share a cell")
	ErrDuplicateID  = errors.New("match3: duplicate tile id")
	ErrInvalidShape = errors.New("match3: board dimensions must be positive")
)

// Board is a snapshot of the grid. Tiles are unordered; at most one tile
// occupies a cell. A settled board holds exactly W*H tiles.
type Board struct {
	W, H  int
	Tiles []Tile
}

// NewBoard returns a board that owns a copy of tiles.
func NewBoard(w, h int, tiles []Tile) Board {
	b := Board{W: w, H: h, Tiles: make([]Tile, len(tiles))}
	copy(b.Tiles, tiles)
	return b
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	return NewBoard(b.W, b.H, b.Tiles)
}

// InBounds returns true if p lies on the board.
func (b Board) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// At returns the tile occupying p. It builds a fresh Lookup on every call;
// callers probing many cells should build one Lookup and reuse it.
func (b Board) At(p Pos) (Tile, bool) {
	return b.Lookup().At(p)
}

// Lookup is a cell index over one board snapshot. It goes stale when the
// board's tiles change.
type Lookup struct {
	tiles []Tile
	g     grid
}

// Lookup indexes the board's tiles by cell.
func (b Board) Lookup() Lookup {
	return Lookup{tiles: b.Tiles, g: b.grid()}
}

// At returns the tile occupying p.
func (l Lookup) At(p Pos) (Tile, bool) {
	i := l.g.index(p.X, p.Y)
	if i < 0 {
		return Tile{}, false
	}
	return l.tiles[i], true
}

// MaxID returns the highest tile id on the board, 0 when it is empty.
func (b Board) MaxID() TileID {
	var id TileID
	for _, t := range b.Tiles {
		id = max(id, t.ID)
	}
	return id
}

// ByID returns the tile with the given id.
func (b Board) ByID(id TileID) (Tile, bool) {
	for _, t := range b.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Column returns the tiles in column x ordered top to bottom.
func (b Board) Column(x int) []Tile {
	col := make([]Tile, 0, b.H)
	for _, t := range b.Tiles {
		if t.X == x {
			col = append(col, t)
		}
	}
	sort.Slice(col, func(i, j int) bool {
		return col[i].Y < col[j].Y
	})
	return col
}

// CountStatus returns how many tiles have the given status.
func (b Board) CountStatus(s Status) int {
	n := 0
	for _, t := range b.Tiles {
		if t.Status == s {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants of the board.
func (b Board) Validate() error {
	if b.W <= 0 || b.H <= 0 {
		return ErrInvalidShape
	}
	occupied := make([]bool, b.W*b.H)
	ids := mapset.New[TileID]()
	for _, t := range b.Tiles {
		if !b.InBounds(t.Pos()) {
			return fmt.Errorf("match3: tile %d at (%d,%d): %w", t.ID, t.X, t.Y, ErrOutOfBounds)
		}
		cell := t.Y*b.W + t.X
		if occupied[cell] {
			return fmt.Errorf("match3: tile %d at (%d,%d): %w", t.ID, t.X, t.Y, ErrOverlap)
		}
		occupied[cell] = true
		if ids.Has(t.ID) {
			return fmt.Errorf("match3: tile %d: %w", t.ID, ErrDuplicateID)
		}
		ids.Put(t.ID)
	}
	return nil
}

// Settled reports whether the board is valid and every cell is filled.
func (b Board) Settled() bool {
	return len(b.Tiles) == b.W*b.H && b.Validate() == nil
}

// grid is a dense row-major lookup from cell to tile index (-1 = empty).
type grid struct {
	w, h  int
	cells []int
}

// grid builds the lookup once per call. Out-of-bounds tiles are ignored.
func (b Board) grid() grid {
	g := grid{w: b.W, h: b.H, cells: make([]int, b.W*b.H)}
	for i := range g.cells {
		g.cells[i] = -1
	}
	for i, t := range b.Tiles {
		if b.InBounds(t.Pos()) {
			g.cells[t.Y*b.W+t.X] = i
		}
	}
	return g
}

func (g grid) index(x, y int) int {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return -1
	}
	return g.cells[y*g.w+x]
}
