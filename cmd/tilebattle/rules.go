package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/match3"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the element to obstacle mapping",
	Long: `Shows which obstacle each enemy element drops on the board, and the
configured enemies with the obstacle they produce.

  rock   - not matchable, broken by a match next to it
  steel  - not matchable, worn down by matches next to it
  ice    - still matchable, but does not fall
  random - one of the three, drawn per interference`,
	Run: runRules,
}

func runRules(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	st := newStyles()
	engine := match3.NewSeeded(cfg.EngineParams(), 1)

	fmt.Println(st.title.Render("Element Rules"))
	fmt.Println()

	elements := make([]string, 0, len(cfg.Interference.Rules))
	for el := range cfg.Interference.Rules {
		elements = append(elements, el)
	}
	slices.Sort(elements)

	fmt.Println(st.label.Render(fmt.Sprintf("  %-10s  %s", "Element", "Obstacle")))
	for _, el := range elements {
		fmt.Printf("  %-10s  %s\n", el, cfg.Interference.Rules[el])
	}
	fmt.Println(st.dim.Render("  other elements use random"))

	fmt.Println()
	fmt.Println(st.title.Render("Enemies"))
	fmt.Println()
	fmt.Println(st.label.Render(fmt.Sprintf("  %-10s  %-10s  %s", "ID", "Element", "Obstacle")))
	for _, k := range cfg.Enemies {
		enemy := k.Kind()
		fmt.Printf("  %-10s  %-10s  %s\n", enemy.ID, enemy.Element, engine.ObstacleFor(enemy))
	}

	in := cfg.Interference
	fmt.Println()
	fmt.Printf("Each interference converts %d-%d tiles; steel starts with %d life.\n",
		in.MinTiles, in.MaxTiles, in.SteelLife)
}
