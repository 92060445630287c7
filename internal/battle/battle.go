// Package battle drives the match-3 engine through a simulated battle: the
// player side plays moves chosen by an autoplay policy, the enemy side
// interferes with the board every few turns.
package battle

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/match3"
	"github.com/vovakirdan/tile-battle/internal/registry"
)

var (
	// ErrNoMoves is returned when even a reshuffle left the board without a
	// legal move.
	ErrNoMoves = errors.New("battle: no legal move")
	// ErrNoPolicy is returned by Step on a battle created without a policy.
	ErrNoPolicy = errors.New("battle: no policy")
)

// ManualPolicyID names the player side of battles whose moves come from
// Play rather than a policy.
const ManualPolicyID = "manual"

// Config holds the battle rules resolved from the engine configuration.
type Config struct {
	Turns             int
	InterferenceEvery int
	Roster            []match3.Kind
	Enemy             match3.Kind
	Difficulty        config.DifficultyConfig
}

// ConfigFrom builds a battle config. A non-empty enemy overrides the one
// named in the file.
func ConfigFrom(cfg config.EngineConfig, enemy string) (Config, error) {
	if enemy == "" {
		enemy = cfg.Battle.Enemy
	}
	kind, err := cfg.Enemy(enemy)
	if err != nil {
		return Config{}, fmt.Errorf("battle: %w", err)
	}
	return Config{
		Turns:             cfg.Battle.Turns,
		InterferenceEvery: cfg.Battle.InterferenceEvery,
		Roster:            cfg.RosterKinds(),
		Enemy:             kind,
		Difficulty:        cfg.Difficulty,
	}, nil
}

// TurnReport describes one played turn.
type TurnReport struct {
	Turn           int
	Move           match3.Move
	Reshuffled     bool
	Cascade        int // match steps, including those after steel breaks
	Groups         int
	Cleared        int // tiles removed by matches, rocks included
	Rocks          int
	SteelHits      int
	SteelDestroyed int
	Score          int
	Interference   bool
}

// Summary aggregates a finished battle.
type Summary struct {
	Policy         string
	Enemy          string
	Turns          int
	Score          int
	Cleared        int
	Groups         int
	Rocks          int
	SteelDestroyed int
	MaxCascade     int
	Reshuffles     int
	Interferences  int
	Final          match3.Board
}

// Battle is a single simulated battle. It is not safe for concurrent use.
type Battle struct {
	engine     *match3.Engine
	cfg        Config
	policy     registry.Policy
	logger     *log.Logger
	difficulty *config.DifficultyManager

	board   match3.Board
	started bool
	summary Summary
}

// New creates a battle. A nil logger discards output. A nil policy makes a
// manual battle: moves must be fed through Play.
func New(e *match3.Engine, cfg Config, p registry.Policy, logger *log.Logger) *Battle {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	policyID := ManualPolicyID
	if p != nil {
		policyID = p.ID()
	}
	if cfg.InterferenceEvery <= 0 {
		cfg.InterferenceEvery = 1
	}
	return &Battle{
		engine:     e,
		cfg:        cfg,
		policy:     p,
		logger:     logger,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		summary: Summary{
			Policy: policyID,
			Enemy:  cfg.Enemy.ID,
		},
	}
}

// SetBoard replaces the board the battle starts from. It must be called
// before the first turn. The board must be valid; the engine's ids are
// moved past the board's so spawned tiles never reuse one.
func (b *Battle) SetBoard(board match3.Board) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("battle: start board: %w", err)
	}
	b.engine.IDs().Reserve(board.MaxID())
	b.board = board
	b.started = true
	return nil
}

// Board returns the current board.
func (b *Battle) Board() match3.Board {
	return b.board
}

// Config returns the rules the battle plays by.
func (b *Battle) Config() Config {
	return b.cfg
}

// Summary returns the totals so far, with the current board as Final.
func (b *Battle) Summary() Summary {
	s := b.summary
	s.Final = b.board
	return s
}

// Run plays all configured turns and returns the summary.
func (b *Battle) Run() (Summary, error) {
	for turn := 1; turn <= b.cfg.Turns; turn++ {
		r, err := b.Step(turn)
		if errors.Is(err, ErrNoMoves) {
			b.logger.Warn("battle ended early", "turn", turn, "error", err)
			break
		}
		if err != nil {
			return b.summary, err
		}
		b.logger.Info("turn",
			"n", r.Turn,
			"move", fmt.Sprintf("%v-%v", r.Move.A, r.Move.B),
			"cleared", r.Cleared,
			"cascade", r.Cascade,
			"score", r.Score,
		)
	}

	b.summary.Final = b.board
	b.logger.Info("battle finished",
		"policy", b.summary.Policy,
		"enemy", b.summary.Enemy,
		"turns", b.summary.Turns,
		"score", b.summary.Score,
	)
	return b.summary, nil
}

// Step plays one turn: reshuffle if deadlocked, play the policy's move,
// resolve the cascade with steel damage, then let the enemy interfere when
// the turn is due.
func (b *Battle) Step(turn int) (TurnReport, error) {
	if b.policy == nil {
		return TurnReport{Turn: turn}, ErrNoPolicy
	}

	reshuffled, err := b.Prepare(turn)
	if err != nil {
		return TurnReport{Turn: turn, Reshuffled: reshuffled}, err
	}

	r, err := b.Play(turn, b.policy.Choose(b.board, match3.PossibleMoves(b.board)))
	r.Reshuffled = reshuffled
	if err != nil {
		return r, fmt.Errorf("policy %s: %w", b.policy.ID(), err)
	}
	return r, nil
}

// Prepare readies the board for turn. The opening board is created on first
// use and a board without legal moves is reshuffled; the result reports
// whether a reshuffle happened. Calling Prepare again before Play is a no-op.
func (b *Battle) Prepare(turn int) (bool, error) {
	if err := b.ensureBoard(); err != nil {
		return false, err
	}
	if match3.HasPossibleMoves(b.board) {
		return false, nil
	}

	next, err := b.engine.ReshuffleSize(b.cfg.Roster, b.board.W, b.board.H)
	if err != nil {
		return false, fmt.Errorf("battle: turn %d: reshuffle: %w", turn, err)
	}
	b.board = next
	b.summary.Reshuffles++
	b.logger.Info("reshuffle", "turn", turn)

	if !match3.HasPossibleMoves(b.board) {
		return true, fmt.Errorf("battle: turn %d: %w", turn, ErrNoMoves)
	}
	return true, nil
}

// Play applies m as the move of turn. An illegal move leaves the battle
// untouched and returns the swap error.
func (b *Battle) Play(turn int, m match3.Move) (TurnReport, error) {
	r := TurnReport{Turn: turn, Move: m}

	if err := b.ensureBoard(); err != nil {
		return r, err
	}

	swapped, _, err := match3.TrySwap(b.board, m)
	if err != nil {
		return r, fmt.Errorf("battle: turn %d: %w", turn, err)
	}

	board, err := b.resolve(swapped, &r)
	if err != nil {
		return r, fmt.Errorf("battle: turn %d: %w", turn, err)
	}
	b.board = board
	b.summary.Score += r.Score

	if turn%b.difficulty.Interval(b.cfg.InterferenceEvery, b.summary.Score, turn) == 0 {
		extra := b.difficulty.ExtraTiles(b.summary.Score, turn)
		b.board = b.engine.ApplyInterferenceExtra(b.board, b.cfg.Enemy, extra)
		r.Interference = true
		b.summary.Interferences++
		b.logger.Info("interference",
			"turn", turn,
			"enemy", b.cfg.Enemy.ID,
			"obstacle", b.engine.ObstacleFor(b.cfg.Enemy),
			"extra", extra,
		)
	}

	b.summary.Turns = turn
	b.summary.Cleared += r.Cleared
	b.summary.Groups += r.Groups
	b.summary.Rocks += r.Rocks
	b.summary.SteelDestroyed += r.SteelDestroyed
	b.summary.MaxCascade = max(b.summary.MaxCascade, r.Cascade)
	return r, nil
}

// ensureBoard creates the opening board on the first turn and clears any
// pre-formed matches without scoring them.
func (b *Battle) ensureBoard() error {
	if b.started {
		return nil
	}
	board, err := b.engine.CreateBoard(b.cfg.Roster)
	if err != nil {
		return fmt.Errorf("battle: create board: %w", err)
	}
	board, steps, err := b.engine.Resolve(board, b.cfg.Roster)
	if err != nil {
		return fmt.Errorf("battle: settle board: %w", err)
	}
	if len(steps) > 0 {
		b.logger.Debug("opening board settled", "steps", len(steps))
	}
	b.board = board
	b.started = true
	return nil
}

// resolve runs the cascade after a swap. Steel next to matched tiles takes
// a hit per step; broken steel is removed and the cascade continues, with
// depth counted across the whole chain.
func (b *Battle) resolve(board match3.Board, r *TurnReport) (match3.Board, error) {
	for {
		final, steps, err := b.engine.Resolve(board, b.cfg.Roster)
		if err != nil {
			return board, err
		}

		hits := make(map[match3.TileID]int)
		before := board
		for _, step := range steps {
			depth := r.Cascade + step.Step
			r.Groups += len(step.Matches.Groups)
			r.Cleared += step.Cleared()
			r.Rocks += len(step.Matches.ExtraDestroyedIDs)
			r.Score += StepScore(step, depth)
			for _, id := range SteelHits(before, step.Matches) {
				hits[id]++
				r.SteelHits++
			}
			b.logger.Debug("cascade",
				"depth", depth,
				"groups", len(step.Matches.Groups),
				"cleared", step.Cleared(),
			)
			before = step.Board
		}
		r.Cascade += len(steps)

		damaged, broken := ApplySteelDamage(final, hits)
		if len(broken) == 0 {
			return damaged, nil
		}
		r.SteelDestroyed += len(broken)
		r.Score += SteelBonus * len(broken)
		b.logger.Debug("steel broken", "tiles", len(broken))

		board, err = b.engine.ApplyGravity(damaged, broken, b.cfg.Roster)
		if err != nil {
			return damaged, err
		}
	}
}
