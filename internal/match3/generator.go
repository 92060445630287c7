package match3

// CreateBoard fills a new board row by row from roster.
//
// Each pick is resampled while it would complete a 3-run with the two
// tiles already placed to its left or above. After MaxGenerateAttempts the
// conflicting pick is kept, so a tiny roster still terminates; the result is
// match-free with high probability only.
func (e *Engine) CreateBoard(roster []Kind) (Board, error) {
	return e.CreateBoardSize(roster, e.params.Width, e.params.Height)
}

// CreateBoardSize is CreateBoard for a w x h board.
func (e *Engine) CreateBoardSize(roster []Kind, w, h int) (Board, error) {
	if len(roster) == 0 {
		return Board{}, ErrEmptyRoster
	}
	if w <= 0 || h <= 0 {
		return Board{}, ErrInvalidShape
	}

	kinds := make([]string, w*h) // placed kind ids, row-major
	b := Board{W: w, H: h, Tiles: make([]Tile, 0, w*h)}

	for y := range h {
		for x := range w {
			k := e.pick(roster)
			for attempt := 1; attempt < e.params.MaxGenerateAttempts && completesRun(kinds, w, x, y, k.ID); attempt++ {
				k = e.pick(roster)
			}
			kinds[y*w+x] = k.ID
			b.Tiles = append(b.Tiles, e.spawn(k, x, y))
		}
	}

	return b, nil
}

// completesRun reports whether placing kind at (x, y) lines up with the two
// cells to the left or the two cells above.
func completesRun(kinds []string, w, x, y int, kind string) bool {
	if x >= 2 && kinds[y*w+x-1] == kind && kinds[y*w+x-2] == kind {
		return true
	}
	if y >= 2 && kinds[(y-1)*w+x] == kind && kinds[(y-2)*w+x] == kind {
		return true
	}
	return false
}

// Reshuffle generates boards until one has a legal move, giving up after
// MaxReshuffleAttempts and returning the last board.
func (e *Engine) Reshuffle(roster []Kind) (Board, error) {
	return e.ReshuffleSize(roster, e.params.Width, e.params.Height)
}

// ReshuffleSize is Reshuffle for a w x h board.
func (e *Engine) ReshuffleSize(roster []Kind, w, h int) (Board, error) {
	var b Board
	for range e.params.MaxReshuffleAttempts {
		var err error
		b, err = e.CreateBoardSize(roster, w, h)
		if err != nil {
			return Board{}, err
		}
		if HasPossibleMoves(b) {
			return b, nil
		}
	}
	return b, nil
}
