package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probello/golife/internal/platform/tui"
	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/storage"
)

var (
	flagHistoryPlain bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [automaton]",
	Short: "Browse recorded simulation runs",
	Long: `Open the interactive run-history browser, optionally pre-filtered
to a single automaton. Use --plain for a non-interactive listing.

Examples:
  golife history
  golife history life
  golife history ants --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print runs as plain text instead of the interactive browser")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Max runs to show with --plain")
}

func runHistory(cmd *cobra.Command, args []string) {
	automaton := ""
	if len(args) == 1 {
		automaton = args[0]
		if !registry.Exists(automaton) {
			fmt.Fprintf(os.Stderr, "Error: unknown automaton %q\n", automaton)
			fmt.Fprintln(os.Stderr, "Run 'golife list' to see available automata.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run-history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagHistoryPlain {
		if err := tui.RunHistory(store, automaton); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHistory(store, automaton)
}

// printHistory writes a plain-text run listing, with aggregate stats when
// filtered to a single automaton.
func printHistory(store *storage.Store, automaton string) {
	runs, err := store.RecentRuns(automaton, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if automaton != "" {
		fmt.Printf("Run History - %s\n", registry.Title(automaton))
	} else {
		fmt.Println("Run History - all automata")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'golife run life' to record the first one.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-7s  %-7s  %-9s  %-8s  %s\n",
		"When", "Automaton", "Gens", "Pop", "Grid", "Bounds", "Rules")
	fmt.Printf("  %-16s  %-10s  %-7s  %-7s  %-9s  %-8s  %s\n",
		"----", "---------", "----", "---", "----", "------", "-----")

	// Print runs
	for _, rec := range runs {
		bounds := "finite"
		if rec.Infinite {
			bounds = "infinite"
		}
		rules := rec.Rules
		if rules == "" {
			rules = "-"
		}
		fmt.Printf("  %-16s  %-10s  %-7d  %-7d  %-9s  %-8s  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Automaton,
			rec.Generations,
			rec.Population,
			fmt.Sprintf("%dx%d", rec.Width, rec.Height),
			bounds,
			rules,
		)
	}

	if automaton != "" {
		stats, err := store.Stats(automaton)
		if err == nil && stats.RunCount > 0 {
			fmt.Println()
			fmt.Printf("Runs: %d  Longest: %d generations  Avg population: %.1f\n",
				stats.RunCount, stats.MaxGenerations, stats.AvgPopulation)
		}
	}
}
