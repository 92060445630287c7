package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

var (
	flagInterfere string
	flagMoves     bool
	flagPuzzle    string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Generate a board and inspect it",
	Long: `Generate a board from the configured roster and print it with its
matches and legal moves.

Glyphs: lower-case letters are tiles (first letter of the kind), upper-case
letters are frozen tiles, '#' is rock, '=' is steel.

Examples:
  tilebattle board --seed 7
  tilebattle board --interfere sentinel
  tilebattle board --moves
  tilebattle board --puzzle corner --moves`,
	Run: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagInterfere, "interfere", "", "Apply one interference from this enemy")
	boardCmd.Flags().BoolVar(&flagMoves, "moves", false, "List every legal move")
	boardCmd.Flags().StringVar(&flagPuzzle, "puzzle", "", "Load a puzzle by id or file path instead of generating")
	boardCmd.Flags().StringVar(&flagPuzzleDir, "puzzles", defaultPuzzleDir, "Directory to search for puzzles")
}

func runBoard(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	rc := runtimeConfig()
	logger := newLogger(rc)
	st := newStyles()

	engine, seed := newEngine(cfg, rc)
	roster := cfg.RosterKinds()

	var b match3.Board
	title := "Board"
	if flagPuzzle != "" {
		p, err := loadPuzzle(flagPuzzle, flagPuzzleDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading puzzle: %v\n", err)
			os.Exit(1)
		}
		b = p.Board(engine.IDs(), roster)
		title = p.Name
		if title == "" {
			title = p.ID
		}
		logger.Debug("puzzle loaded", "id", p.ID, "path", p.FilePath, "tiles", len(b.Tiles))
	} else {
		created, err := engine.CreateBoard(roster)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating board: %v\n", err)
			os.Exit(1)
		}
		b = created
		logger.Debug("board created", "seed", seed, "tiles", len(b.Tiles))
	}

	if flagInterfere != "" {
		enemy, err := cfg.Enemy(flagInterfere)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		b = engine.ApplyInterference(b, enemy)
		logger.Debug("interference applied", "enemy", enemy.ID, "obstacle", engine.ObstacleFor(enemy))
	}

	fmt.Println(st.title.Render(fmt.Sprintf("%s %dx%d", title, b.W, b.H)) + st.dim.Render(fmt.Sprintf("  seed %d", seed)))
	fmt.Println()
	fmt.Println(st.board.Render(match3.Dump(b)))
	fmt.Println()

	res := match3.FindMatches(b)
	fmt.Printf("%s %d groups, %d tiles", st.label.Render("Matches:"), len(res.Groups), len(res.AllMatchedIDs))
	if n := len(res.ExtraDestroyedIDs); n > 0 {
		fmt.Printf(", %d rocks", n)
	}
	fmt.Println()

	moves := match3.PossibleMoves(b)
	if len(moves) == 0 {
		fmt.Printf("%s %s\n", st.label.Render("Moves:  "), st.bad.Render("none (deadlocked)"))
	} else {
		fmt.Printf("%s %s\n", st.label.Render("Moves:  "), st.good.Render(fmt.Sprintf("%d", len(moves))))
	}

	fmt.Printf("%s rock %d, steel %d, ice %d\n",
		st.label.Render("Status: "),
		b.CountStatus(match3.StatusRock),
		b.CountStatus(match3.StatusSteel),
		b.CountStatus(match3.StatusIce),
	)

	if flagMoves && len(moves) > 0 {
		fmt.Println()
		printMoves(moves, terminalWidth(80))
	}
}

// printMoves lists moves as "(x,y)-(x,y)" wrapped to width.
func printMoves(moves []match3.Move, width int) {
	var line strings.Builder
	for _, m := range moves {
		item := m.A.String() + "-" + m.B.String()
		if line.Len() > 0 && line.Len()+1+len(item) > width {
			fmt.Println(line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(item)
	}
	if line.Len() > 0 {
		fmt.Println(line.String())
	}
}
