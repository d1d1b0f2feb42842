package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/probello/golife/internal/config"
	"github.com/probello/golife/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServeSim    string
	flagServeGens   int
	flagServeRules  string
	flagServeInf    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the golife SSH server",
	Long: `Start an SSH server that serves live simulations to remote users.

Each SSH connection gets its own freshly seeded simulation sized to the
session's terminal. Completed runs are recorded in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.golife/host_key

Examples:
  golife serve                           # Serve Life on :23234
  golife serve --ssh :2222               # Listen on port 2222
  golife serve --automaton ants          # Serve Langton's Ant
  golife serve --rules vonneumann -g 500 # Von Neumann rules, 500-gen runs

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to simulation config YAML")
	serveCmd.Flags().StringVar(&flagServeSim, "automaton", "life", "Automaton to serve")
	serveCmd.Flags().IntVarP(&flagServeGens, "generations", "g", 0, "Generations per session run (0 = config default)")
	serveCmd.Flags().StringVarP(&flagServeRules, "rules", "r", "", "Neighborhood rules: moore or vonneumann")
	serveCmd.Flags().BoolVarP(&flagServeInf, "infinite", "i", false, "Unbounded grid instead of toroidal wrap")
}

func runServe(cmd *cobra.Command, _ []string) {
	simCfg, err := config.Load(flagServeConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("generations") {
		simCfg.Run.Generations = flagServeGens
	}
	if cmd.Flags().Changed("rules") {
		simCfg.Rules = flagServeRules
	}
	if cmd.Flags().Changed("infinite") {
		simCfg.Grid.Infinite = flagServeInf
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Automaton:   flagServeSim,
		Sim:         simCfg,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting golife SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
