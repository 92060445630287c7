package match3

import (
	"slices"
	"testing"
)

func TestResolveSettlesBoard(t *testing.T) {
	rows := copyRows(noMatchRows)
	rows[0] = "aaadab"
	roster := testRoster(4)

	for seed := int64(1); seed <= 30; seed++ {
		e := newTestEngine(seed)
		b := boardFromRows(t, rows...)

		final, steps, err := e.Resolve(b, roster)
		if err != nil {
			t.Fatalf("seed %d: Resolve failed: %v", seed, err)
		}
		if len(steps) == 0 {
			t.Fatalf("seed %d: Resolve ran no steps on a board with a run", seed)
		}
		if got := len(steps[0].Matches.AllMatchedIDs); got != 3 {
			t.Errorf("seed %d: first step matched %d tiles, want 3", seed, got)
		}
		for i, step := range steps {
			if step.Step != i+1 {
				t.Errorf("seed %d: step %d numbered %d", seed, i+1, step.Step)
			}
			if !step.Board.Settled() {
				t.Errorf("seed %d: board after step %d is not settled", seed, step.Step)
			}
		}
		if !slices.Equal(final.Tiles, steps[len(steps)-1].Board.Tiles) {
			t.Errorf("seed %d: returned board differs from the last step", seed)
		}
		if !FindMatches(final).Empty() && len(steps) < e.Params().MaxCascadeSteps {
			t.Errorf("seed %d: Resolve stopped with matches left after %d steps", seed, len(steps))
		}
	}
}

func TestResolveQuietBoard(t *testing.T) {
	b := boardFromRows(t, noMatchRows...)

	final, steps, err := newTestEngine(1).Resolve(b, testRoster(4))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("Resolve ran %d steps, want 0", len(steps))
	}
	if !slices.Equal(final.Tiles, b.Tiles) {
		t.Error("quiet board should come back unchanged")
	}
}

func TestResolveStepCap(t *testing.T) {
	p := DefaultParams()
	p.MaxCascadeSteps = 3
	e := New(p, newTestEngine(1).rng, NewIDSource(1000))

	// One kind only: every refill matches again
	b := boardFromRows(t, "aaa", "aaa", "aaa")
	_, steps, err := e.Resolve(b, testRoster(1))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(steps) != 3 {
		t.Errorf("Resolve ran %d steps, want the cap of 3", len(steps))
	}
}

func TestResolveCountsRocks(t *testing.T) {
	b := boardFromRows(t,
		"aaa",
		"#bc",
		"bcd",
	)

	_, steps, err := newTestEngine(2).Resolve(b, testRoster(4))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(steps) == 0 {
		t.Fatal("Resolve ran no steps")
	}
	if got := steps[0].Cleared(); got != 4 {
		t.Errorf("first step cleared %d tiles, want 3 matched plus the rock", got)
	}
}
