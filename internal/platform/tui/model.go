package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/probello/golife/internal/core"
	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/sim"
	"github.com/probello/golife/internal/storage"
)

// Model is the Bubble Tea model driving a simulation run: one engine
// generation per tick, panning and pause from keyboard input, and a
// best-effort run record on completion or quit.
type Model struct {
	automaton   string // registry ID, used for run records
	engine      *sim.Engine
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	generations int // generation budget; 0 means run until quit
	keyMapper   *KeyMapper

	paused   bool
	overlay  bool // neighbor-count overlay active
	done     bool // generation budget exhausted
	quitting bool
	runSaved bool
}

// NewModel creates a Bubble Tea model for the given engine.
func NewModel(automaton string, engine *sim.Engine, store *storage.Store, cfg core.RuntimeConfig, generations int) Model {
	return Model{
		automaton:   automaton,
		engine:      engine,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:       store,
		config:      cfg,
		generations: generations,
		keyMapper:   NewKeyMapper(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.RefreshRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The viewport dimensions are a simulation parameter; a terminal
		// resize only changes how much of the frame fits on screen.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Pan, pause, and overlay toggles
// apply immediately; the Bubble Tea update loop serializes them against
// generation advances.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPanUp:
		m.engine.Pan(sim.North)
	case core.ActionPanDown:
		m.engine.Pan(sim.South)
	case core.ActionPanLeft:
		m.engine.Pan(sim.West)
	case core.ActionPanRight:
		m.engine.Pan(sim.East)
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionOverlay:
		m.overlay = !m.overlay
	case core.ActionRestart:
		return m.restart()
	case core.ActionBack:
		// No enclosing menu; leaving the run ends the program or session.
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// restart replaces the engine with a freshly seeded one.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.saveRun()

	cfg := m.engine.Config()
	cfg.Seed = time.Now().UnixNano()
	engine, err := registry.Create(m.automaton, cfg)
	if err != nil {
		// Construction parameters were already validated once; keep the
		// current engine if this somehow fails.
		return m, nil
	}

	m.engine = engine
	m.done = false
	m.paused = false
	m.runSaved = false
	return m, nil
}

// handleTick advances the simulation by one generation unless paused or
// the generation budget is exhausted. Ticking continues regardless so the
// frame stays live for panning.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.done {
		m.engine.Advance()

		if m.generations > 0 && m.engine.Generation() >= m.generations {
			m.done = true
			m.saveRun()
		}
	}

	return m, tickCmd(m.config.RefreshRate)
}

// saveRun records the run once, best-effort.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || m.engine.Generation() == 0 {
		return
	}

	cfg := m.engine.Config()
	rules := ""
	if m.engine.Mode() == sim.ModeLife {
		rules = m.engine.Rules().String()
	}

	//nolint:errcheck // Best-effort save, the simulation never blocks on storage
	m.store.SaveRun(storage.RunRecord{
		Automaton:   m.automaton,
		Generations: m.engine.Generation(),
		Population:  m.engine.Population(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Infinite:    m.engine.Infinite(),
		Rules:       rules,
		Seed:        cfg.Seed,
	})
	m.runSaved = true
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.overlay {
		m.engine.RenderNeighbors(m.screen)
	} else {
		m.engine.Render(m.screen)
	}

	switch {
	case m.done:
		m.drawCompletionBox(
			fmt.Sprintf("%d generations complete", m.engine.Generation()),
			"R restart · Q quit",
		)
	case m.paused:
		m.drawStatus(" paused — P to resume ")
	}

	return RenderScreen(m.screen)
}

// drawStatus draws a highlighted status line under the HUD separator.
func (m Model) drawStatus(text string) {
	m.screen.DrawTextColored(0, 1, text, core.ColorBrightYellow)
}

// drawCompletionBox draws a centered box over the final frame.
func (m Model) drawCompletionBox(lines ...string) {
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	box := core.NewRect(
		(m.screen.Width()-(width+4))/2,
		(m.screen.Height()-(len(lines)+2))/2,
		width+4,
		len(lines)+2,
	)
	m.screen.DrawRect(box, ' ')
	m.screen.DrawBox(box)
	for i, line := range lines {
		m.screen.DrawTextColored(box.X+2, box.Y+1+i, line, core.ColorBrightYellow)
	}
}

// Run starts the Bubble Tea program for a single simulation run.
func Run(automaton string, engine *sim.Engine, store *storage.Store, cfg core.RuntimeConfig, generations int) error {
	model := NewModel(automaton, engine, store, cfg, generations)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
