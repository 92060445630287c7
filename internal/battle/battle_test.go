package battle

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tile-battle/internal/autoplay"
	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/match3"
)

// board builds a board from glyph rows: letters are normal tiles, '='
// steel with the given life, '#' rock. Tile ids are y*W+x+1.
func board(t *testing.T, steelLife int, rows ...string) match3.Board {
	t.Helper()
	w := len(rows[0])
	b := match3.Board{W: w, H: len(rows)}
	for y, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has width %d, want %d", y, len(row), w)
		}
		for x, r := range row {
			tile := match3.Tile{ID: match3.TileID(y*w + x + 1), X: x, Y: y, KindID: string(r), Visual: string(r), Status: match3.StatusNormal}
			switch r {
			case '=':
				tile.Status = match3.StatusSteel
				tile.KindID = match3.ObstacleKindID
				tile.StatusLife = steelLife
			case '#':
				tile.Status = match3.StatusRock
				tile.KindID = match3.ObstacleKindID
			}
			b.Tiles = append(b.Tiles, tile)
		}
	}
	return b
}

type fixedPolicy struct{ m match3.Move }

func (fixedPolicy) ID() string { return "fixed" }
func (fixedPolicy) Title() string { return "Fixed" }
func (p fixedPolicy) Choose(match3.Board, []match3.Move) match3.Move { return p.m }

func testConfig(t *testing.T) (config.EngineConfig, Config) {
	t.Helper()
	ec := config.Default()
	ec.Difficulty.Enabled = false
	cfg, err := ConfigFrom(ec, "")
	if err != nil {
		t.Fatalf("ConfigFrom failed: %v", err)
	}
	return ec, cfg
}

func TestConfigFrom(t *testing.T) {
	ec := config.Default()

	cfg, err := ConfigFrom(ec, "kraken")
	if err != nil {
		t.Fatalf("ConfigFrom failed: %v", err)
	}
	if cfg.Enemy.ID != "kraken" || cfg.Enemy.Element != match3.ElementWater {
		t.Errorf("enemy = %+v, want the kraken", cfg.Enemy)
	}
	if cfg.Turns != ec.Battle.Turns || len(cfg.Roster) != len(ec.Roster) {
		t.Errorf("config = %+v does not follow the file", cfg)
	}

	if _, err := ConfigFrom(ec, "nobody"); !errors.Is(err, config.ErrUnknownEnemy) {
		t.Errorf("ConfigFrom(nobody) error = %v, want ErrUnknownEnemy", err)
	}
}

func TestRunDeterministic(t *testing.T) {
	ec, cfg := testConfig(t)

	run := func() Summary {
		e := match3.NewSeeded(ec.EngineParams(), 42)
		s, err := New(e, cfg, autoplay.Greedy{}, nil).Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return s
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different battles:\n%+v\n%+v", a, b)
	}
}

func TestRunSummary(t *testing.T) {
	ec, cfg := testConfig(t)
	e := match3.NewSeeded(ec.EngineParams(), 7)

	s, err := New(e, cfg, autoplay.NewRandom(7), nil).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if s.Turns != cfg.Turns {
		t.Errorf("played %d turns, want %d", s.Turns, cfg.Turns)
	}
	if s.Policy != "random" || s.Enemy != "golem" {
		t.Errorf("summary = %s vs %s, want random vs golem", s.Policy, s.Enemy)
	}
	if s.Interferences != cfg.Turns/cfg.InterferenceEvery {
		t.Errorf("%d interferences, want %d", s.Interferences, cfg.Turns/cfg.InterferenceEvery)
	}
	if s.Cleared < 3*s.Turns || s.Score < TilePoints*s.Cleared {
		t.Errorf("summary = %+v, want at least one run per turn scored", s)
	}
	if s.MaxCascade < 1 {
		t.Errorf("MaxCascade = %d, want at least 1", s.MaxCascade)
	}
	if !s.Final.Settled() {
		t.Error("final board is not settled")
	}
	if !match3.FindMatches(s.Final).Empty() {
		t.Error("final board still holds a match")
	}
}

func TestStepBreaksSteel(t *testing.T) {
	ec, cfg := testConfig(t)
	rows := []string{
		"zzc=ef",
		"dezghi",
		"ghiabc",
		"abcdef",
		"defghi",
		"ghiabc",
	}
	start := board(t, 1, rows...)
	move := match3.Move{A: match3.P(2, 0), B: match3.P(2, 1)}

	engine := match3.New(ec.EngineParams(), rand.New(rand.NewSource(3)), match3.NewIDSource(1000))
	bt := New(engine, cfg, fixedPolicy{move}, nil)
	if err := bt.SetBoard(start); err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}

	r, err := bt.Step(1)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if r.SteelHits < 1 || r.SteelDestroyed != 1 {
		t.Errorf("report = %+v, want the steel hit and broken", r)
	}
	if _, ok := bt.Board().ByID(4); ok {
		t.Error("broken steel tile 4 is still on the board")
	}
	if r.Score < 3*TilePoints+SteelBonus {
		t.Errorf("score = %d, want at least %d", r.Score, 3*TilePoints+SteelBonus)
	}
	if !bt.Board().Settled() {
		t.Error("board is not settled after the turn")
	}
}

func TestStepWearsSteel(t *testing.T) {
	ec, cfg := testConfig(t)
	rows := []string{
		"zzc=ef",
		"dezghi",
		"ghiabc",
		"abcdef",
		"defghi",
		"ghiabc",
	}
	bt := New(match3.NewSeeded(ec.EngineParams(), 3), cfg, fixedPolicy{match3.Move{A: match3.P(2, 0), B: match3.P(2, 1)}}, nil)
	if err := bt.SetBoard(board(t, 5, rows...)); err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}

	if _, err := bt.Step(1); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	steel, ok := bt.Board().ByID(4)
	if !ok {
		t.Fatal("steel tile 4 vanished")
	}
	if steel.StatusLife >= 5 {
		t.Errorf("steel life = %d, want it worn below 5", steel.StatusLife)
	}
}

func TestStepReshufflesDeadlock(t *testing.T) {
	ec, cfg := testConfig(t)
	dead := board(t, 5,
		"abcdef",
		"defghi",
		"ghiabc",
		"abcdef",
		"defghi",
		"ghiabc",
	)

	bt := New(match3.NewSeeded(ec.EngineParams(), 5), cfg, autoplay.First{}, nil)
	if err := bt.SetBoard(dead); err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}

	r, err := bt.Step(1)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !r.Reshuffled {
		t.Error("deadlocked board was not reshuffled")
	}
	if r.Cleared < 3 {
		t.Errorf("cleared %d tiles after the reshuffle, want a move played", r.Cleared)
	}
}

func TestStepRejectsIllegalPolicyMove(t *testing.T) {
	ec, cfg := testConfig(t)
	bt := New(match3.NewSeeded(ec.EngineParams(), 1), cfg, fixedPolicy{match3.Move{A: match3.P(0, 0), B: match3.P(5, 5)}}, nil)

	if _, err := bt.Step(1); !errors.Is(err, match3.ErrNotAdjacent) {
		t.Errorf("Step error = %v, want ErrNotAdjacent", err)
	}
}

func TestStepScore(t *testing.T) {
	step := match3.CascadeStep{
		Step: 1,
		Matches: match3.MatchResult{
			AllMatchedIDs:     []match3.TileID{1, 2, 3},
			ExtraDestroyedIDs: []match3.TileID{9},
		},
	}

	tests := []struct {
		depth int
		want  int
	}{
		{1, 45},
		{2, 90},
		{0, 45},
	}
	for _, tt := range tests {
		if got := StepScore(step, tt.depth); got != tt.want {
			t.Errorf("StepScore(depth %d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestSteelHits(t *testing.T) {
	b := board(t, 5,
		"aaab",
		"=cd=",
		"ef=g",
	)
	res := match3.FindMatches(b)

	if got := SteelHits(b, res); !slices.Equal(got, []match3.TileID{5}) {
		t.Errorf("SteelHits() = %v, want [5]", got)
	}
	if got := SteelHits(b, match3.MatchResult{}); got != nil {
		t.Errorf("SteelHits(empty) = %v, want nil", got)
	}
}

func TestApplySteelDamage(t *testing.T) {
	b := board(t, 2, "=a=")
	b.Tiles[2].StatusLife = 1

	out, broken := ApplySteelDamage(b, map[match3.TileID]int{1: 1, 2: 4, 3: 1})
	if !slices.Equal(broken, []match3.TileID{3}) {
		t.Errorf("broken = %v, want [3]", broken)
	}
	if out.Tiles[0].StatusLife != 1 {
		t.Errorf("tile 1 life = %d, want 1", out.Tiles[0].StatusLife)
	}
	if out.Tiles[1].StatusLife != 0 || out.Tiles[1].Status != match3.StatusNormal {
		t.Error("normal tile should ignore hits")
	}
	if b.Tiles[0].StatusLife != 2 {
		t.Error("ApplySteelDamage modified its input")
	}
}

func TestManualPlay(t *testing.T) {
	ec, cfg := testConfig(t)
	engine := match3.New(ec.EngineParams(), rand.New(rand.NewSource(3)), match3.NewIDSource(1000))
	bt := New(engine, cfg, nil, nil)
	err := bt.SetBoard(board(t, 5,
		"zzcdef",
		"dezghi",
		"ghiabc",
		"abcdef",
		"defghi",
		"ghiabc",
	))
	if err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}

	if _, err := bt.Step(1); !errors.Is(err, ErrNoPolicy) {
		t.Errorf("Step error = %v, want ErrNoPolicy", err)
	}

	reshuffled, err := bt.Prepare(1)
	if err != nil || reshuffled {
		t.Fatalf("Prepare() = %v, %v; want no reshuffle", reshuffled, err)
	}

	if _, err := bt.Play(1, match3.Move{A: match3.P(0, 0), B: match3.P(1, 1)}); !errors.Is(err, match3.ErrNotAdjacent) {
		t.Errorf("Play error = %v, want ErrNotAdjacent", err)
	}
	if _, err := bt.Play(1, match3.Move{A: match3.P(4, 0), B: match3.P(5, 0)}); !errors.Is(err, match3.ErrNoMatch) {
		t.Errorf("Play error = %v, want ErrNoMatch", err)
	}
	if s := bt.Summary(); s.Turns != 0 || s.Score != 0 {
		t.Fatalf("rejected moves changed the summary: %+v", s)
	}

	r, err := bt.Play(1, match3.Move{A: match3.P(2, 0), B: match3.P(2, 1)})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if r.Cleared < 3 || r.Score < 3*TilePoints {
		t.Errorf("report = %+v, want a run of three scored", r)
	}

	s := bt.Summary()
	if s.Policy != ManualPolicyID || s.Turns != 1 || s.Score != r.Score {
		t.Errorf("summary = %+v", s)
	}
	if !s.Final.Settled() {
		t.Errorf("final board not settled: %v", s.Final.Validate())
	}
}

func TestSetBoardReservesIDs(t *testing.T) {
	ec, cfg := testConfig(t)
	engine := match3.NewSeeded(ec.EngineParams(), 3)
	bt := New(engine, cfg, fixedPolicy{match3.Move{A: match3.P(2, 0), B: match3.P(2, 1)}}, nil)
	start := board(t, 1,
		"zzc=ef",
		"dezghi",
		"ghiabc",
		"abcdef",
		"defghi",
		"ghiabc",
	)
	if err := bt.SetBoard(start); err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}
	if got := engine.IDs().Last(); got != 36 {
		t.Errorf("id counter = %d after SetBoard, want 36", got)
	}

	if _, err := bt.Step(1); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if err := bt.Board().Validate(); err != nil {
		t.Errorf("board after the turn: %v", err)
	}
	spawned := 0
	for _, tile := range bt.Board().Tiles {
		if tile.ID > 36 {
			spawned++
		}
	}
	if spawned < 4 {
		t.Errorf("%d tiles carry fresh ids, want the cleared run and the steel replaced", spawned)
	}
	if _, ok := bt.Board().ByID(4); ok {
		t.Error("broken steel tile 4 is still on the board")
	}
}

func TestSetBoardRejectsInvalid(t *testing.T) {
	ec, cfg := testConfig(t)
	bt := New(match3.NewSeeded(ec.EngineParams(), 1), cfg, nil, nil)
	bad := board(t, 5, "abc", "def")
	bad.Tiles[4].ID = 1

	if err := bt.SetBoard(bad); !errors.Is(err, match3.ErrDuplicateID) {
		t.Errorf("SetBoard error = %v, want ErrDuplicateID", err)
	}
	if len(bt.Board().Tiles) != 0 {
		t.Error("rejected board was installed")
	}
}

func TestPrepareKeepsBoardSize(t *testing.T) {
	ec, cfg := testConfig(t)
	bt := New(match3.NewSeeded(ec.EngineParams(), 2), cfg, nil, nil)
	err := bt.SetBoard(board(t, 5,
		"abcd",
		"defg",
		"ghia",
		"abcd",
	))
	if err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}

	reshuffled, err := bt.Prepare(1)
	if err != nil && !errors.Is(err, ErrNoMoves) {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !reshuffled {
		t.Fatal("deadlocked board was not reshuffled")
	}
	if b := bt.Board(); b.W != 4 || b.H != 4 || !b.Settled() {
		t.Errorf("reshuffled board = %dx%d settled=%v, want a settled 4x4 board", b.W, b.H, b.Settled())
	}
}
