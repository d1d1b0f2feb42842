package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/probello/golife/internal/config"
	"github.com/probello/golife/internal/core"
	"github.com/probello/golife/internal/platform/tui"
	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/sim"
	"github.com/probello/golife/internal/storage"
)

var (
	flagConfig      string
	flagWidth       int
	flagHeight      int
	flagInfinite    bool
	flagGenerations int
	flagRules       string
	flagOffsetX     int
	flagOffsetY     int
	flagRPS         int
)

var runCmd = &cobra.Command{
	Use:   "run [automaton]",
	Short: "Run a simulation",
	Long: `Start the specified automaton (default: life).

Controls:
  WASD/Arrows - Pan the viewport by one cell
  P/Space     - Pause/resume
  N           - Toggle the neighbor-count overlay
  R           - Restart with a fresh seed
  Q/Ctrl+C    - Quit

Examples:
  golife run
  golife run life --rules vonneumann --infinite
  golife run ants -W 60 -H 30 -g 11000
  golife run life -x -10 -y 5 --rps 20
  golife run life --config ./my-sim.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	runCmd.Flags().IntVarP(&flagWidth, "width", "W", 0, "Grid width in cells (0 = terminal width)")
	runCmd.Flags().IntVarP(&flagHeight, "height", "H", 0, "Grid height in cells (0 = terminal height)")
	runCmd.Flags().BoolVarP(&flagInfinite, "infinite", "i", false, "Unbounded grid instead of toroidal wrap")
	runCmd.Flags().IntVarP(&flagGenerations, "generations", "g", 0, "Generations to simulate (0 = config default)")
	runCmd.Flags().StringVarP(&flagRules, "rules", "r", "", "Neighborhood rules: moore or vonneumann")
	runCmd.Flags().IntVarP(&flagOffsetX, "offset-x", "x", 0, "Initial X viewport offset")
	runCmd.Flags().IntVarP(&flagOffsetY, "offset-y", "y", 0, "Initial Y viewport offset")
	runCmd.Flags().IntVar(&flagRPS, "rps", 0, "Refresh (and generation) rate per second (0 = config default)")
}

func runRun(cmd *cobra.Command, args []string) {
	automaton := "life"
	if len(args) == 1 {
		automaton = args[0]
	}

	if !registry.Exists(automaton) {
		fmt.Fprintf(os.Stderr, "Error: unknown automaton %q\n", automaton)
		fmt.Fprintln(os.Stderr, "Run 'golife list' to see available automata.")
		os.Exit(1)
	}

	simCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override the config file
	if cmd.Flags().Changed("width") {
		simCfg.Grid.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		simCfg.Grid.Height = flagHeight
	}
	if cmd.Flags().Changed("infinite") {
		simCfg.Grid.Infinite = flagInfinite
	}
	if cmd.Flags().Changed("rules") {
		simCfg.Rules = flagRules
	}
	if cmd.Flags().Changed("offset-x") {
		simCfg.Offset.X = flagOffsetX
	}
	if cmd.Flags().Changed("offset-y") {
		simCfg.Offset.Y = flagOffsetY
	}
	if cmd.Flags().Changed("generations") {
		simCfg.Run.Generations = flagGenerations
	}
	if cmd.Flags().Changed("rps") {
		simCfg.Run.RefreshPerSecond = flagRPS
	}

	if simCfg.Run.RefreshPerSecond <= 0 {
		fmt.Fprintln(os.Stderr, "Error: refresh rate must be positive")
		os.Exit(1)
	}

	rules, err := sim.ParseRuleset(simCfg.Rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Derive unset grid dimensions from the terminal
	termW, termH := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		termW, termH = w, h
	}
	if simCfg.Grid.Width <= 0 {
		simCfg.Grid.Width = termW
	}
	if simCfg.Grid.Height <= 0 {
		simCfg.Grid.Height = termH - 2 // leave room for the HUD
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := registry.Create(automaton, sim.Config{
		Width:    simCfg.Grid.Width,
		Height:   simCfg.Grid.Height,
		Infinite: simCfg.Grid.Infinite,
		Rules:    rules,
		Offset:   sim.Point{X: simCfg.Offset.X, Y: simCfg.Offset.Y},
		Seed:     seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulation: %v\n", err)
		os.Exit(1)
	}

	// Open run-history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run-history database: %v\n", err)
		// Continue without storage - the simulation still works
		store = nil
	}

	runtimeCfg := core.RuntimeConfig{
		ScreenW:     termW,
		ScreenH:     termH,
		RefreshRate: simCfg.Run.RefreshPerSecond,
	}

	runErr := tui.Run(automaton, engine, store, runtimeCfg, simCfg.Run.Generations)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", runErr)
		os.Exit(1)
	}
}
