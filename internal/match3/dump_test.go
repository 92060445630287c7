package match3

import (
	"slices"
	"strings"
	"testing"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		tile Tile
		want rune
	}{
		{Tile{KindID: "fire"}, 'f'},
		{Tile{KindID: "Water"}, 'w'},
		{Tile{KindID: "water", Status: StatusIce}, 'W'},
		{Tile{KindID: ObstacleKindID, Status: StatusRock}, '#'},
		{Tile{KindID: ObstacleKindID, Status: StatusSteel}, '='},
		{Tile{}, '?'},
	}

	for _, tt := range tests {
		if got := Glyph(tt.tile); got != tt.want {
			t.Errorf("Glyph(%+v) = %q, want %q", tt.tile, got, tt.want)
		}
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{
		"ab#",
		"C.=",
	}
	if got := Rows(boardFromRows(t, rows...)); !slices.Equal(got, rows) {
		t.Errorf("Rows() = %q, want %q", got, rows)
	}
}

func TestDump(t *testing.T) {
	b := boardFromRows(t,
		"ab",
		"C#",
	)

	want := strings.Join([]string{
		" 01  ",
		"┌──┐ ",
		"│ab│0",
		"│C#│1",
		"└──┘ ",
	}, "\n")

	if got := Dump(b); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}
