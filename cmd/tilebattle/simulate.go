package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/battle"
	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/match3"
	"github.com/vovakirdan/tile-battle/internal/registry"
	"github.com/vovakirdan/tile-battle/internal/storage"
)

var (
	flagTurns      int
	flagPolicy     string
	flagEnemy      string
	flagDifficulty string
	flagSave       bool
	flagShowBoard  bool
	flagSimPuzzle  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Autoplay a battle",
	Long: `Autoplay a battle: a policy picks every move, the enemy interferes with
the board every few turns. Each turn is logged; a summary is printed at the
end and can be stored with --save.

Difficulty options:
  easy   - Smallest interference, ramps up from 0%
  normal - Ramps up from 30%
  hard   - One extra obstacle, ramps up from 70%
  fixed  - No ramp, enemy pressure stays constant

Examples:
  tilebattle simulate
  tilebattle simulate --policy random --seed 7 --turns 50
  tilebattle simulate --enemy sentinel --difficulty hard --save
  tilebattle simulate --log-level debug --board
  tilebattle simulate --puzzle steel-wall --enemy sentinel`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTurns, "turns", 0, "Number of turns (0 = config value)")
	simulateCmd.Flags().StringVar(&flagPolicy, "policy", "", "Autoplay policy (default from config)")
	simulateCmd.Flags().StringVar(&flagEnemy, "enemy", "", "Enemy id (default from config)")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run in the database")
	simulateCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
	simulateCmd.Flags().StringVar(&flagSimPuzzle, "puzzle", "", "Start from a puzzle (id or file path)")
	simulateCmd.Flags().StringVar(&flagPuzzleDir, "puzzles", defaultPuzzleDir, "Directory to search for puzzles")
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	rc := runtimeConfig()
	logger := newLogger(rc)
	st := newStyles()

	// Apply CLI overrides
	if flagTurns > 0 {
		cfg.Battle.Turns = flagTurns
	}
	if flagPolicy != "" {
		cfg.Battle.Policy = flagPolicy
	}
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !registry.Exists(cfg.Battle.Policy) {
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q\n", cfg.Battle.Policy)
		fmt.Fprintln(os.Stderr, "Run 'tilebattle policies' to see available policies.")
		os.Exit(1)
	}

	bcfg, err := battle.ConfigFrom(cfg, flagEnemy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tilebattle rules' to see available enemies.")
		os.Exit(1)
	}

	engine, seed := newEngine(cfg, rc)
	policy, err := registry.Create(cfg.Battle.Policy, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating policy: %v\n", err)
		os.Exit(1)
	}

	b := battle.New(engine, bcfg, policy, logger)
	if flagSimPuzzle != "" {
		p, err := loadPuzzle(flagSimPuzzle, flagPuzzleDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading puzzle: %v\n", err)
			os.Exit(1)
		}
		if err := b.SetBoard(p.Board(engine.IDs(), bcfg.Roster)); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading puzzle: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("puzzle loaded", "id", p.ID, "path", p.FilePath)
	}

	logger.Info("battle started", "seed", seed, "policy", policy.ID(), "enemy", bcfg.Enemy.ID, "turns", bcfg.Turns)
	summary, err := b.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running battle: %v\n", err)
		os.Exit(1)
	}

	printSummary(st, summary, seed)
	if flagShowBoard {
		fmt.Println()
		fmt.Println(st.board.Render(match3.Dump(summary.Final)))
	}

	if !flagSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	best, err := store.BestScore(summary.Policy)
	if err != nil {
		logger.Warn("could not read best score", "error", err)
	}

	id, err := store.SaveRun(storage.Run{
		Seed:           seed,
		Policy:         summary.Policy,
		Enemy:          summary.Enemy,
		Difficulty:     difficultyLabel(flagDifficulty),
		Turns:          summary.Turns,
		Score:          summary.Score,
		Cleared:        summary.Cleared,
		MaxCascade:     summary.MaxCascade,
		Reshuffles:     summary.Reshuffles,
		SteelDestroyed: summary.SteelDestroyed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Saved as run #%d", id)
	if summary.Score > best {
		fmt.Printf(" - %s", st.good.Render(fmt.Sprintf("new best for %s!", summary.Policy)))
	}
	fmt.Println()
}

func printSummary(st styles, s battle.Summary, seed int64) {
	fmt.Println(st.title.Render(fmt.Sprintf("Battle: %s vs %s", s.Policy, s.Enemy)))
	fmt.Println()

	rows := []struct {
		label string
		value int64
	}{
		{"Seed", seed},
		{"Turns", int64(s.Turns)},
		{"Score", int64(s.Score)},
		{"Cleared", int64(s.Cleared)},
		{"Groups", int64(s.Groups)},
		{"Rocks", int64(s.Rocks)},
		{"Steel", int64(s.SteelDestroyed)},
		{"Max cascade", int64(s.MaxCascade)},
		{"Reshuffles", int64(s.Reshuffles)},
		{"Interference", int64(s.Interferences)},
	}
	for _, r := range rows {
		fmt.Printf("  %s %d\n", st.label.Render(fmt.Sprintf("%-12s", r.label)), r.value)
	}
}

// difficultyLabel names the difficulty stored with a run.
func difficultyLabel(preset string) string {
	if preset == "" {
		return "config"
	}
	return preset
}
