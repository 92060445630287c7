package match3

// CascadeStep records one match-and-fall round.
type CascadeStep struct {
	Step    int // 1-based
	Matches MatchResult
	Board   Board // after gravity
}

// Cleared returns how many tiles the step removed.
func (s CascadeStep) Cleared() int {
	return len(s.Matches.AllMatchedIDs) + len(s.Matches.ExtraDestroyedIDs)
}

// Resolve repeats FindMatches and ApplyGravity until the board holds no
// match or MaxCascadeSteps rounds have run.
func (e *Engine) Resolve(b Board, roster []Kind) (Board, []CascadeStep, error) {
	var steps []CascadeStep
	for i := 1; i <= e.params.MaxCascadeSteps; i++ {
		res := FindMatches(b)
		if res.Empty() {
			break
		}
		next, err := e.ApplyGravity(b, res.RemovalIDs(), roster)
		if err != nil {
			return b, steps, err
		}
		b = next
		steps = append(steps, CascadeStep{Step: i, Matches: res, Board: b})
	}
	return b, steps, nil
}
