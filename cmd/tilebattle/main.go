// tilebattle runs the match-3 combat engine from the terminal.
//
// Usage:
//
//	tilebattle board         - Generate a board and inspect it
//	tilebattle simulate      - Autoplay a battle against an enemy
//	tilebattle play          - Play a battle yourself
//	tilebattle serve         - Serve battles over SSH
//	tilebattle runs          - Show stored simulation runs
//	tilebattle rules         - Show which obstacle each element produces
//	tilebattle policies      - List autoplay policies
//	tilebattle puzzles       - List puzzle boards
//	tilebattle config        - Print the effective configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible boards
//	--config <path>      - Use a custom engine YAML
//	--db <path>          - Set database path (default: ~/.tilebattle/runs.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import policies to register them
	_ "github.com/vovakirdan/tile-battle/internal/autoplay"

	"github.com/vovakirdan/tile-battle/internal/config"
	"github.com/vovakirdan/tile-battle/internal/core"
	"github.com/vovakirdan/tile-battle/internal/match3"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilebattle",
	Short: "Tile Battle - match-3 combat engine in your terminal",
	Long: `Tile Battle drives the match-3 combat engine: board generation, match
detection, gravity with obstacles, enemy interference and deadlock checks.

Available commands:
  board     - Generate a board and show matches and moves
  simulate  - Autoplay a battle and print the summary
  play      - Play a battle yourself in the terminal
  serve     - Serve battles over SSH
  runs      - View stored simulation runs
  rules     - Element to obstacle mapping
  policies  - Available autoplay policies
  puzzles   - Puzzle boards on disk
  config    - Effective configuration as YAML

Examples:
  tilebattle board --seed 7
  tilebattle simulate --policy greedy --enemy kraken --save
  tilebattle runs --top --policy greedy
  tilebattle config --config ./my-engine.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilebattle/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", core.DefaultConfig().LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(puzzlesCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig collects the global flags.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	if flagLogLevel != "" {
		rc.LogLevel = flagLogLevel
	}
	return rc
}

func newLogger(rc core.RuntimeConfig) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilebattle",
	})
	level, err := log.ParseLevel(rc.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", rc.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// mustLoadConfig loads the engine config or exits.
func mustLoadConfig() config.EngineConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newEngine creates an engine for cfg seeded from the runtime config and
// returns the seed used.
func newEngine(cfg config.EngineConfig, rc core.RuntimeConfig) (*match3.Engine, int64) {
	seed := rc.ResolvedSeed()
	return match3.NewSeeded(cfg.EngineParams(), seed), seed
}
