package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-battle/internal/battle"
	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/match3"
	"github.com/vovakirdan/tile-battle/internal/puzzles"
	"github.com/vovakirdan/tile-battle/internal/storage"
)

// openingPuzzle has exactly one family of moves at the top left: swapping
// (2,0) with (2,1) lines up three z.
const openingPuzzle = `
id: opening
rows:
  - "zzcdef"
  - "dezghi"
  - "ghiabc"
  - "abcdef"
  - "defghi"
  - "ghiabc"
`

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, turns int, store *storage.Store) Model {
	t.Helper()
	p, err := puzzles.ParseYAML([]byte(openingPuzzle))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	cfg := config.Default()
	cfg.Difficulty.Enabled = false
	cfg.Battle.Turns = turns

	m, err := NewModel(Options{Config: cfg, Seed: 1, Puzzle: &p, Store: store})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	m := newTestModel(t, 10, nil)

	m = press(t, m, keyUp, keyLeft)
	if m.cursor != match3.P(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", m.cursor)
	}

	for range 10 {
		m = press(t, m, keyRight, keyDown)
	}
	if m.cursor != match3.P(5, 5) {
		t.Errorf("cursor = %v, want (5,5)", m.cursor)
	}

	m = press(t, m, runes("h"), runes("k"))
	if m.cursor != match3.P(4, 4) {
		t.Errorf("cursor = %v after vim keys, want (4,4)", m.cursor)
	}
}

func TestModelSwapPlaysTurn(t *testing.T) {
	m := newTestModel(t, 10, nil)

	m = press(t, m, keyRight, keyRight, keyEnter)
	if m.picked == nil || *m.picked != match3.P(2, 0) {
		t.Fatalf("picked = %v, want (2,0)", m.picked)
	}

	m = press(t, m, keyDown, keyEnter)
	if m.picked != nil {
		t.Error("pick should be dropped after a swap")
	}
	if m.turn != 2 {
		t.Errorf("turn = %d, want 2", m.turn)
	}
	s := m.Summary()
	if s.Turns != 1 || s.Score < 3*battle.TilePoints || s.Policy != battle.ManualPolicyID {
		t.Errorf("summary = %+v, want one scored manual turn", s)
	}
	if m.last == nil || m.last.Cleared < 3 {
		t.Errorf("last turn = %+v", m.last)
	}
}

func TestModelRejectsSwapWithoutMatch(t *testing.T) {
	m := newTestModel(t, 10, nil)

	// (4,0) with (5,0): e and f make no run
	m = press(t, m, keyRight, keyRight, keyRight, keyRight, keyEnter, keyRight, keyEnter)
	if m.turn != 1 {
		t.Errorf("turn = %d, want 1 after a rejected swap", m.turn)
	}
	if !strings.Contains(m.status, "no match") {
		t.Errorf("status = %q, want it to explain the rejection", m.status)
	}
	if m.picked != nil {
		t.Error("rejected swap should drop the pick")
	}
}

func TestModelPickAndCancel(t *testing.T) {
	m := newTestModel(t, 10, nil)

	m = press(t, m, keyEnter, keyEnter)
	if m.picked != nil {
		t.Error("selecting the picked cell again should drop it")
	}

	// A far cell moves the pick instead of swapping
	m = press(t, m, keyEnter, keyDown, keyDown, keyEnter)
	if m.picked == nil || *m.picked != match3.P(0, 2) {
		t.Errorf("picked = %v, want (0,2)", m.picked)
	}

	m = press(t, m, keyEsc)
	if m.picked != nil {
		t.Error("esc should drop the pick")
	}
}

func TestModelHint(t *testing.T) {
	m := newTestModel(t, 10, nil)

	m = press(t, m, runes("t"))
	if m.hint == nil {
		t.Fatal("hint not set")
	}
	if _, _, err := match3.TrySwap(m.battle.Board(), *m.hint); err != nil {
		t.Errorf("hint %v is not a legal move: %v", *m.hint, err)
	}
}

func TestModelBattleOverSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := newTestModel(t, 1, store)
	m = press(t, m, keyRight, keyRight, keyEnter, keyDown, keyEnter)

	if !m.Over() {
		t.Fatal("battle should be over after its only turn")
	}
	if !strings.Contains(m.View(), "Battle over") {
		t.Error("view should announce the end of the battle")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Policy != battle.ManualPolicyID || runs[0].Score != m.Summary().Score {
		t.Errorf("stored runs = %+v", runs)
	}

	// Keys other than restart and quit are ignored once over
	before := m.cursor
	m = press(t, m, keyRight)
	if m.cursor != before {
		t.Error("cursor moved after the battle ended")
	}

	m = press(t, m, runes("r"))
	if m.Over() || m.turn != 1 || m.seed != 2 {
		t.Errorf("restart: over %v, turn %d, seed %d", m.Over(), m.turn, m.seed)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 10, nil)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelUnknownEnemy(t *testing.T) {
	_, err := NewModel(Options{Config: config.Default(), Enemy: "nobody"})
	if !errors.Is(err, config.ErrUnknownEnemy) {
		t.Errorf("NewModel error = %v, want ErrUnknownEnemy", err)
	}
}

func TestMoveError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{match3.ErrNoMatch, "no match"},
		{match3.ErrImmovable, "cannot be swapped"},
		{match3.ErrEmptyCell, "empty"},
		{match3.ErrNotAdjacent, "neighbours"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := moveError(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("moveError(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}
