package match3

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/tile-battle/internal/core"
)

// Glyph returns the single-rune code of a tile in text dumps: the first
// letter of its kind, upper-cased when frozen, '#' for rock, '=' for steel.
func Glyph(t Tile) rune {
	switch t.Status {
	case StatusRock:
		return '#'
	case StatusSteel:
		return '='
	}
	r, _ := utf8.DecodeRuneInString(t.KindID)
	if r == utf8.RuneError {
		return '?'
	}
	if t.Status == StatusIce {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// Dump draws the board as framed text with column and row indices. Empty
// cells show as '.'.
//
//	 012
//	┌───┐
//	│abc│0
//	└───┘
func Dump(b Board) string {
	s := core.NewScreen(b.W+3, b.H+3)
	for x := range b.W {
		s.Set(x+1, 0, indexRune(x))
	}
	s.DrawBox(core.NewRect(0, 1, b.W+2, b.H+2))
	for y := range b.H {
		for x := range b.W {
			s.Set(x+1, y+2, '.')
		}
		s.Set(b.W+2, y+2, indexRune(y))
	}
	for _, t := range b.Tiles {
		if b.InBounds(t.Pos()) {
			s.Set(t.X+1, t.Y+2, Glyph(t))
		}
	}
	return s.String()
}

// Rows returns the tile glyphs row by row without frame or indices.
func Rows(b Board) []string {
	s := core.NewScreen(b.W, b.H)
	s.Fill('.')
	for _, t := range b.Tiles {
		s.Set(t.X, t.Y, Glyph(t))
	}
	rows := make([]string, b.H)
	for y := range b.H {
		rows[y] = s.Row(y)
	}
	return rows
}

func indexRune(i int) rune {
	return rune(strconv.FormatInt(int64(i%36), 36)[0])
}
