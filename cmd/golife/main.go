// golife simulates cellular automata in the terminal.
//
// Usage:
//
//	golife list               - List available automata
//	golife run <automaton>    - Run a simulation
//	golife history [automaton]- Browse past runs
//	golife serve              - Start SSH server for remote sessions
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible Life seeding
//	--db <path>     - Run-history database path (default: ~/.golife/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/sim"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "golife",
	Short: "Cellular automata in your terminal",
	Long: `golife runs Conway's Game of Life and Langton's Ant as live
terminal simulations.

Available commands:
  list     - Show all available automata
  run      - Run a simulation
  history  - Browse recorded runs
  serve    - Start SSH server for remote sessions

Examples:
  golife list
  golife run life --rules vonneumann
  golife run ants -W 60 -H 30 -g 5000
  golife history life
  golife serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.golife/runs.db", "Path to run-history database")

	// Built-in automata
	registry.Register(registry.Info{ID: "life", Title: "Conway's Game of Life", Mode: sim.ModeLife})
	registry.Register(registry.Info{ID: "ants", Title: "Langton's Ant", Mode: sim.ModeAnts})

	// Subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
