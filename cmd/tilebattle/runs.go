package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-battle/internal/core"
	"github.com/vovakirdan/tile-battle/internal/platform/tui"
	"github.com/vovakirdan/tile-battle/internal/storage"
)

var (
	flagLimit      int
	flagRunsPolicy string
	flagTop        bool
	flagRunsTUI    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show stored simulation runs",
	Long: `Display simulation runs stored with 'tilebattle simulate --save'.

By default the most recent runs are listed; --top orders by score.

Examples:
  tilebattle runs
  tilebattle runs --top --policy greedy
  tilebattle runs --limit 50
  tilebattle runs --tui`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show (1-100)")
	runsCmd.Flags().StringVar(&flagRunsPolicy, "policy", "", "Only runs of this policy (implies --top)")
	runsCmd.Flags().BoolVar(&flagTop, "top", false, "Order by score instead of date")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse the best runs per policy interactively")
}

func runRuns(cmd *cobra.Command, args []string) {
	st := newStyles()
	limit := core.Clamp(flagLimit, 1, 100)

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsTUI {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		if err := tui.RunScoreboard(store, w, h); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.Run
	title := "Recent Runs"
	if flagTop || flagRunsPolicy != "" {
		runs, err = store.TopRuns(flagRunsPolicy, limit)
		title = "Top Runs"
		if flagRunsPolicy != "" {
			title += " - " + flagRunsPolicy
		}
	} else {
		runs, err = store.RecentRuns(limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(st.title.Render(title))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tilebattle simulate --save' to record the first one!")
		return
	}

	// Print header
	header := fmt.Sprintf("  %-5s  %-8s  %-10s  %-8s  %-6s  %-8s  %-7s  %s",
		"ID", "Score", "Policy", "Enemy", "Turns", "Cascade", "Seed", "Date")
	fmt.Println(st.label.Render(header))

	// Print runs
	for _, r := range runs {
		fmt.Printf("  %-5d  %-8d  %-10s  %-8s  %-6d  %-8d  %-7d  %s\n",
			r.ID, r.Score, r.Policy, r.Enemy, r.Turns, r.MaxCascade, r.Seed,
			st.dim.Render(r.CreatedAt.Format("2006-01-02 15:04")))
	}

	// Show best score
	if flagRunsPolicy != "" {
		fmt.Println()
		if best, err := store.BestScore(flagRunsPolicy); err == nil {
			fmt.Printf("Best: %d\n", best)
		}
	}
}
