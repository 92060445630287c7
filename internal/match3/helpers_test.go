package match3

import (
	"math/rand"
	"testing"
	"unicode"
)

// boardFromRows builds a board from glyph rows. Lower-case letters are
// normal tiles of that kind, upper-case letters frozen ones, '#' rock,
// '=' steel and '.' an empty cell. Tile ids are y*W+x+1.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()

	h := len(rows)
	w := len([]rune(rows[0]))
	b := Board{W: w, H: h}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			t.Fatalf("row %d has width %d, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			tile := Tile{ID: TileID(y*w + x + 1), X: x, Y: y, Status: StatusNormal}
			switch {
			case r == '.':
				continue
			case r == '#':
				tile.Status = StatusRock
				tile.KindID = ObstacleKindID
			case r == '=':
				tile.Status = StatusSteel
				tile.KindID = ObstacleKindID
				tile.StatusLife = 5
			case unicode.IsUpper(r):
				tile.Status = StatusIce
				tile.KindID = string(unicode.ToLower(r))
			default:
				tile.KindID = string(r)
			}
			tile.Visual = tile.KindID
			b.Tiles = append(b.Tiles, tile)
		}
	}
	return b
}

// testRoster returns n kinds named a, b, c, ...
func testRoster(n int) []Kind {
	roster := make([]Kind, n)
	for i := range roster {
		id := string(rune('a' + i))
		roster[i] = Kind{ID: id, Visual: id, Element: ElementFire}
	}
	return roster
}

// newTestEngine returns a seeded engine whose ids never collide with the
// ids handed out by boardFromRows.
func newTestEngine(seed int64) *Engine {
	return New(DefaultParams(), rand.New(rand.NewSource(seed)), NewIDSource(1000))
}

// noMatchRows is a 6x6 board without runs, built from four kinds.
var noMatchRows = []string{
	"abcdab",
	"cdabcd",
	"abcdab",
	"cdabcd",
	"abcdab",
	"cdabcd",
}

func copyRows(rows []string) []string {
	out := make([]string, len(rows))
	copy(out, rows)
	return out
}

func mustTile(t *testing.T, b Board, p Pos) Tile {
	t.Helper()
	tile, ok := b.At(p)
	if !ok {
		t.Fatalf("no tile at %v", p)
	}
	return tile
}
