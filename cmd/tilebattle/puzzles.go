package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/puzzles"
)

const defaultPuzzleDir = "puzzles"

var flagPuzzleDir string

var puzzlesCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "List available puzzles",
	Long: `List the puzzle boards found under the puzzle directory.

Examples:
  tilebattle puzzles
  tilebattle puzzles --puzzles ./my-puzzles`,
	Run: runPuzzles,
}

func init() {
	puzzlesCmd.Flags().StringVar(&flagPuzzleDir, "puzzles", defaultPuzzleDir, "Directory to search for puzzles")
}

func runPuzzles(cmd *cobra.Command, args []string) {
	st := newStyles()

	list, err := puzzles.NewLoader(flagPuzzleDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading puzzles: %v\n", err)
		os.Exit(1)
	}
	if len(list) == 0 {
		fmt.Println("No puzzles found in", flagPuzzleDir)
		return
	}

	fmt.Println(st.title.Render("Puzzles"))
	fmt.Println()
	for _, p := range list {
		fmt.Printf("  %-16s %dx%-4d %s\n", p.ID, p.Width, p.Height, p.Name)
	}
}

// loadPuzzle treats arg as a file when it carries a puzzle extension and
// exists, and as an id under dir otherwise.
func loadPuzzle(arg, dir string) (puzzles.Puzzle, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if slices.Contains(puzzles.FormatExtensions(), ext) {
		if _, err := os.Stat(arg); err == nil {
			return puzzles.LoadFile(arg)
		}
	}
	return puzzles.NewLoader(dir).LoadByID(arg)
}
