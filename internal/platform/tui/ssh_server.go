package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/probello/golife/internal/config"
	"github.com/probello/golife/internal/core"
	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/sim"
	"github.com/probello/golife/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.golife/host_key.
	HostKeyPath string

	// DBPath is the path to the run-history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Automaton is the registry ID served to every session.
	Automaton string

	// Sim holds the simulation parameters shared by all sessions; zero
	// grid dimensions are replaced per session by the PTY size.
	Sim config.SimConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.golife/runs.db",
		IdleTimeout: 30 * time.Minute,
		Automaton:   "life",
		Sim:         config.DefaultSimConfig(),
	}
}

// SSHServer wraps a Wish SSH server for remote simulation sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "golife-ssh",
	})

	if !registry.Exists(cfg.Automaton) {
		return nil, fmt.Errorf("unknown automaton %q", cfg.Automaton)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run-history database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".golife", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// Every session gets its own freshly seeded engine sized to its PTY.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	simCfg := s.config.Sim
	rules, err := sim.ParseRuleset(simCfg.Rules)
	if err != nil {
		rules = sim.RulesMoore
	}

	width := simCfg.Grid.Width
	height := simCfg.Grid.Height
	if width <= 0 {
		width = core.Max(1, pty.Window.Width)
	}
	if height <= 0 {
		height = core.Max(1, pty.Window.Height-2) // leave room for the HUD
	}

	engine, err := registry.Create(s.config.Automaton, sim.Config{
		Width:    width,
		Height:   height,
		Infinite: simCfg.Grid.Infinite,
		Rules:    rules,
		Offset:   sim.Point{X: simCfg.Offset.X, Y: simCfg.Offset.Y},
		Seed:     time.Now().UnixNano(),
	})
	if err != nil {
		s.logger.Error("cannot create engine for session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	runtimeCfg := core.DefaultConfig()
	if pty.Window.Width > 0 {
		runtimeCfg.ScreenW = pty.Window.Width
	}
	if pty.Window.Height > 0 {
		runtimeCfg.ScreenH = pty.Window.Height
	}
	if simCfg.Run.RefreshPerSecond > 0 {
		runtimeCfg.RefreshRate = simCfg.Run.RefreshPerSecond
	}

	model := NewModel(s.config.Automaton, engine, s.store, runtimeCfg, simCfg.Run.Generations)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"automaton", s.config.Automaton,
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
