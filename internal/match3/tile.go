// Package match3 implements the tile-matching engine behind the combat
// mini-game: board generation, match detection, gravity with obstacles,
// enemy interference and deadlock detection.
//
// Every operation takes a board snapshot and returns a new one. Nothing in
// this package performs I/O or keeps global state; randomness and tile ids
// come from the Engine that owns them.
package match3

import "strconv"

// TileID identifies a tile for its whole lifetime. Ids are never reused.
type TileID uint64

// Status determines whether a tile can match and how it falls.
type Status string

const (
	StatusNormal Status = "normal"
	StatusRock   Status = "rock"  // not matchable, destroyed next to a match
	StatusSteel  Status = "steel" // not matchable, cleared after StatusLife hits
	StatusIce    Status = "ice"   // matchable, never moves under gravity
)

// ObstacleKindID is the shared kind of every rock and steel tile.
const ObstacleKindID = "obstacle"

// Generic glyphs given to rock and steel tiles.
const (
	VisualRock  = "🪨"
	VisualSteel = "🔩"
)

// Element is the elemental affinity of a kind.
type Element string

const (
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementGrass    Element = "grass"
	ElementEarth    Element = "earth"
	ElementMetal    Element = "metal"
	ElementElectric Element = "electric"
	ElementDark     Element = "dark"
)

// Kind is one roster entry: the species a tile represents.
type Kind struct {
	ID      string
	Visual  string
	Element Element
}

// Tile is a single board cell occupant.
type Tile struct {
	ID         TileID
	KindID     string
	Visual     string // display only, never used for matching
	Status     Status
	StatusLife int // remaining hits, steel only
	X, Y       int
	Matched    bool
}

// Pos returns the tile position.
func (t Tile) Pos() Pos {
	return Pos{X: t.X, Y: t.Y}
}

// Matchable reports whether the tile can take part in a run.
func (t Tile) Matchable() bool {
	return t.Status == StatusNormal || t.Status == StatusIce
}

// Movable reports whether the tile can be swapped by the player.
func (t Tile) Movable() bool {
	return t.Status != StatusRock && t.Status != StatusSteel
}

// Pos is a grid cell. Row 0 is the top of the board.
type Pos struct {
	X, Y int
}

// P is shorthand for Pos{X: x, Y: y}.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String formats the position as (x,y).
func (p Pos) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Add returns the position offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// Adjacent reports whether two positions share an edge.
func (p Pos) Adjacent(o Pos) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx+dy*dy == 1
}

// neighbors are the four orthogonal offsets.
var neighbors = [4]Pos{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
