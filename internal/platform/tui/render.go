package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

// kindColors are cycled over the roster in order.
var kindColors = []lipgloss.Color{"203", "39", "42", "179", "220", "171", "45", "208"}

// Theme holds the styles of the battle screen. Styles are created from a
// renderer so that SSH sessions detect their own terminal.
type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Good     lipgloss.Style
	Bad      lipgloss.Style
	Dim      lipgloss.Style
	Frame    lipgloss.Style
	Rock     lipgloss.Style
	Steel    lipgloss.Style
	Ice      lipgloss.Style
	Cursor   lipgloss.Style
	Picked   lipgloss.Style
	HintCell lipgloss.Style
	kinds    []lipgloss.Style
	colorOf  map[string]int
}

// NewTheme creates the theme for r and colours kinds by roster order. A nil
// renderer uses the default one.
func NewTheme(r *lipgloss.Renderer, roster []match3.Kind) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Label:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Good:     r.NewStyle().Foreground(lipgloss.Color("42")),
		Bad:      r.NewStyle().Foreground(lipgloss.Color("203")),
		Dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
		Frame:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Rock:     r.NewStyle().Foreground(lipgloss.Color("246")).Background(lipgloss.Color("236")),
		Steel:    r.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240")),
		Ice:      r.NewStyle().Background(lipgloss.Color("24")),
		Cursor:   r.NewStyle().Reverse(true),
		Picked:   r.NewStyle().Bold(true).Background(lipgloss.Color("57")),
		HintCell: r.NewStyle().Underline(true),
		colorOf:  make(map[string]int, len(roster)),
	}
	for i, k := range roster {
		t.colorOf[k.ID] = i % len(kindColors)
	}
	for _, c := range kindColors {
		t.kinds = append(t.kinds, r.NewStyle().Bold(true).Foreground(c))
	}
	return t
}

// cellText is the three-column label of a tile. Steel shows its remaining
// life.
func cellText(tile match3.Tile, ok bool) string {
	if !ok {
		return " . "
	}
	if tile.Status == match3.StatusSteel {
		return fmt.Sprintf(" =%d", min(tile.StatusLife, 9))
	}
	return fmt.Sprintf(" %c ", match3.Glyph(tile))
}

func (t Theme) cellStyle(tile match3.Tile, ok bool) lipgloss.Style {
	if !ok {
		return t.Dim
	}
	switch tile.Status {
	case match3.StatusRock:
		return t.Rock
	case match3.StatusSteel:
		return t.Steel
	}
	style := t.Dim
	if i, known := t.colorOf[tile.KindID]; known {
		style = t.kinds[i]
	}
	if tile.Status == match3.StatusIce {
		style = style.Inherit(t.Ice)
	}
	return style
}

// boardView describes what is highlighted on the rendered board.
type boardView struct {
	cursor match3.Pos
	picked *match3.Pos
	hint   *match3.Move
}

// RenderBoard draws b inside a frame with the view's highlights.
func (t Theme) RenderBoard(b match3.Board, v boardView) string {
	var sb strings.Builder
	cells := b.Lookup()
	for y := range b.H {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.W {
			p := match3.P(x, y)
			tile, ok := cells.At(p)
			style := t.cellStyle(tile, ok)
			switch {
			case p == v.cursor:
				style = t.Cursor.Inherit(style)
			case v.picked != nil && p == *v.picked:
				style = t.Picked.Inherit(style)
			case v.hint != nil && (p == v.hint.A || p == v.hint.B):
				style = t.HintCell.Inherit(style)
			}
			sb.WriteString(style.Render(cellText(tile, ok)))
		}
	}
	return t.Frame.Render(sb.String())
}
