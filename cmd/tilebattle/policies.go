package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-battle/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List all autoplay policies",
	Long:  `Shows a list of all policies registered for 'tilebattle simulate'.`,
	Run:   runPolicies,
}

func runPolicies(cmd *cobra.Command, args []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print policies
	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tilebattle simulate --policy <id>' to use one.")
}
