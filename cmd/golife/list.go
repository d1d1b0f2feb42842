package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probello/golife/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available automata",
	Long:  `Shows a list of all registered cellular automata.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	automata := registry.List()

	if len(automata) == 0 {
		fmt.Println("No automata available.")
		return
	}

	fmt.Println("Available automata:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, a := range automata {
		if len(a.ID) > maxIDLen {
			maxIDLen = len(a.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print automata
	for _, a := range automata {
		fmt.Printf("  %-*s  %s\n", maxIDLen, a.ID, a.Title)
	}

	fmt.Println()
	fmt.Println("Run 'golife run <id>' to start a simulation.")
}
