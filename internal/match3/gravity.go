package match3

import "github.com/zyedidia/generic/mapset"

// ApplyGravity removes the tiles in remove and settles every column.
//
// Columns are independent and processed bottom-up with a write pointer.
// Surviving tiles, rock and steel included, drop to the pointer. An ice tile
// that survives keeps its cell: the gap between the pointer and the ice is
// refilled with spawns and the pointer restarts above the ice, so nothing
// ever falls past it. Slots left at the top are spawned from roster.
//
// An empty removal set returns an unchanged copy.
func (e *Engine) ApplyGravity(b Board, remove []TileID, roster []Kind) (Board, error) {
	if len(remove) == 0 {
		return b.Clone(), nil
	}

	removed := mapset.New[TileID]()
	for _, id := range remove {
		removed.Put(id)
	}

	g := b.grid()
	out := Board{W: b.W, H: b.H, Tiles: make([]Tile, 0, b.W*b.H)}

	fill := func(x, from, to int) error {
		for y := from; y > to; y-- {
			if len(roster) == 0 {
				return ErrEmptyRoster
			}
			out.Tiles = append(out.Tiles, e.spawn(e.pick(roster), x, y))
		}
		return nil
	}

	for x := range b.W {
		write := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			idx := g.index(x, y)
			if idx < 0 {
				continue
			}
			t := b.Tiles[idx]
			if removed.Has(t.ID) {
				continue
			}
			t.Matched = false

			if t.Status == StatusIce {
				if err := fill(x, write, y); err != nil {
					return Board{}, err
				}
				out.Tiles = append(out.Tiles, t)
				write = y - 1
				continue
			}

			t.Y = write
			write--
			out.Tiles = append(out.Tiles, t)
		}
		if err := fill(x, write, -1); err != nil {
			return Board{}, err
		}
	}

	return out, nil
}
