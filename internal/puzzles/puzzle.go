// Package puzzles loads hand-made boards from YAML files. A puzzle lists
// its board as glyph rows, the same notation the text dump prints.
package puzzles

import (
	"errors"
	"fmt"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

var (
	ErrEmpty     = errors.New("puzzles: no rows")
	ErrRagged    = errors.New("puzzles: rows differ in width")
	ErrBadGlyph  = errors.New("puzzles: unknown glyph")
	ErrNotFound  = errors.New("puzzles: not found")
)

const defaultSteelLife = 5

// YAMLPuzzle represents the YAML structure for a puzzle file.
type YAMLPuzzle struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Rows      []string          `yaml:"rows"`
	Kinds     map[string]string `yaml:"kinds,omitempty"` // glyph -> kind id
	SteelLife int               `yaml:"steel_life,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// Puzzle is a parsed puzzle ready to be built into a board.
//
// Glyphs: a lower-case letter is a normal tile, the same letter upper-case
// a frozen one, '#' rock, '=' steel and '.' an empty cell.
type Puzzle struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Rows      []string
	Kinds     map[rune]string
	SteelLife int
	Metadata  map[string]string
	FilePath  string
}

// ParseYAML parses a YAML puzzle file and checks its rows.
func ParseYAML(data []byte) (Puzzle, error) {
	var yp YAMLPuzzle
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Puzzle{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	steelLife := yp.SteelLife
	if steelLife <= 0 {
		steelLife = defaultSteelLife
	}

	p := Puzzle{
		ID:        yp.ID,
		Name:      yp.Name,
		Rows:      yp.Rows,
		Kinds:     make(map[rune]string, len(yp.Kinds)),
		SteelLife: steelLife,
		Metadata:  yp.Metadata,
	}
	for glyph, kind := range yp.Kinds {
		r := []rune(glyph)
		if len(r) != 1 || !unicode.IsLetter(r[0]) {
			return Puzzle{}, fmt.Errorf("%w %q in kinds", ErrBadGlyph, glyph)
		}
		p.Kinds[unicode.ToLower(r[0])] = kind
	}

	if err := p.measure(); err != nil {
		return Puzzle{}, err
	}
	return p, nil
}

func (p *Puzzle) measure() error {
	if len(p.Rows) == 0 {
		return ErrEmpty
	}
	p.Height = len(p.Rows)
	p.Width = len([]rune(p.Rows[0]))
	for y, row := range p.Rows {
		runes := []rune(row)
		if len(runes) != p.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(runes), p.Width)
		}
		for x, r := range runes {
			if r != '.' && r != '#' && r != '=' && !unicode.IsLetter(r) {
				return fmt.Errorf("%w %q at (%d,%d)", ErrBadGlyph, r, x, y)
			}
		}
	}
	if p.Width == 0 {
		return ErrEmpty
	}
	return nil
}

// KindFor returns the kind id a letter glyph stands for.
func (p Puzzle) KindFor(glyph rune) string {
	lower := unicode.ToLower(glyph)
	if kind, ok := p.Kinds[lower]; ok {
		return kind
	}
	return string(lower)
}

// Board builds the puzzle's board. Ids come from ids so that later spawns
// never collide with them; visuals come from the roster entry of the same
// kind, or the kind id when the roster has none.
func (p Puzzle) Board(ids *match3.IDSource, roster []match3.Kind) match3.Board {
	visuals := make(map[string]string, len(roster))
	for _, k := range roster {
		visuals[k.ID] = k.Visual
	}

	tiles := make([]match3.Tile, 0, p.Width*p.Height)
	for y, row := range p.Rows {
		for x, r := range []rune(row) {
			t := match3.Tile{X: x, Y: y, Status: match3.StatusNormal}
			switch {
			case r == '.':
				continue
			case r == '#':
				t.Status = match3.StatusRock
				t.KindID = match3.ObstacleKindID
				t.Visual = match3.VisualRock
			case r == '=':
				t.Status = match3.StatusSteel
				t.KindID = match3.ObstacleKindID
				t.Visual = match3.VisualSteel
				t.StatusLife = p.SteelLife
			default:
				if unicode.IsUpper(r) {
					t.Status = match3.StatusIce
				}
				t.KindID = p.KindFor(r)
				t.Visual = t.KindID
				if v, ok := visuals[t.KindID]; ok {
					t.Visual = v
				}
			}
			t.ID = ids.Next()
			tiles = append(tiles, t)
		}
	}
	return match3.NewBoard(p.Width, p.Height, tiles)
}
