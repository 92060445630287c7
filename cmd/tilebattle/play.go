package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/platform/tui"
	"github.com/vovakirdan/tile-battle/internal/storage"
)

var (
	flagPlayEnemy      string
	flagPlayDifficulty string
	flagPlayPuzzle     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a battle yourself",
	Long: `Play a battle in the terminal: pick a tile, then a neighbour to swap
it with. The enemy interferes every few turns; the run is stored when the
battle ends.

Controls:
  Arrows/WASD/hjkl - Move the cursor
  Enter/Space      - Pick a tile, or swap with the picked one
  Esc              - Drop the pick
  T                - Show a hint
  R                - New battle
  ?                - All keys
  Q/Ctrl+C         - Quit

Examples:
  tilebattle play
  tilebattle play --enemy kraken --difficulty hard
  tilebattle play --puzzle steel-wall`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayEnemy, "enemy", "", "Enemy id (default from config)")
	playCmd.Flags().StringVar(&flagPlayDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayPuzzle, "puzzle", "", "Start from a puzzle (id or file path)")
	playCmd.Flags().StringVar(&flagPuzzleDir, "puzzles", defaultPuzzleDir, "Directory to search for puzzles")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	rc := runtimeConfig()

	if flagPlayDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagPlayDifficulty)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := tui.Options{
		Config:     cfg,
		Enemy:      flagPlayEnemy,
		Seed:       rc.ResolvedSeed(),
		Difficulty: difficultyLabel(flagPlayDifficulty),
		// The screen belongs to the TUI while it runs
		Logger: log.New(io.Discard),
	}

	if flagPlayPuzzle != "" {
		p, err := loadPuzzle(flagPlayPuzzle, flagPuzzleDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading puzzle: %v\n", err)
			os.Exit(1)
		}
		opts.Puzzle = &p
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		newLogger(rc).Warn("could not open runs database, the run will not be saved", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	summary, err := tui.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if summary.Turns > 0 {
		printSummary(newStyles(), summary, opts.Seed)
	}
}
