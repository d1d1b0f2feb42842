package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/probello/golife/internal/core"
	"github.com/probello/golife/internal/registry"
	"github.com/probello/golife/internal/storage"
)

// maxHistoryRows caps how many runs load per filter.
const maxHistoryRows = 100

// HistoryKeyMap defines the key bindings for the run-history browser.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextFilter, k.PrevFilter, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next automaton"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev automaton"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run-history browser.
type HistoryModel struct {
	store     *storage.Store
	filters   []string // "" (all runs) followed by registered automata IDs
	filterIdx int
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	loadErr   error
}

// NewHistoryModel creates the browser, starting on the given automaton
// filter (empty string shows all runs).
func NewHistoryModel(store *storage.Store, initialFilter string) HistoryModel {
	filters := []string{""}
	idx := 0
	for _, info := range registry.List() {
		filters = append(filters, info.ID)
		if info.ID == initialFilter {
			idx = len(filters) - 1
		}
	}

	m := HistoryModel{
		store:     store,
		filters:   filters,
		filterIdx: idx,
		help:      help.New(),
		keys:      DefaultHistoryKeyMap(),
	}
	m.table = m.buildTable()
	return m
}

// buildTable loads rows for the active filter.
func (m *HistoryModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Automaton", Width: 10},
		{Title: "Gens", Width: 7},
		{Title: "Pop", Width: 7},
		{Title: "Grid", Width: 9},
		{Title: "Bounds", Width: 8},
		{Title: "Rules", Width: 10},
	}

	var rows []table.Row
	runs, err := m.store.RecentRuns(m.filters[m.filterIdx], maxHistoryRows)
	m.loadErr = err
	for _, rec := range runs {
		bounds := "finite"
		if rec.Infinite {
			bounds = "infinite"
		}
		rules := rec.Rules
		if rules == "" {
			rules = "-"
		}
		rows = append(rows, table.Row{
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Automaton,
			fmt.Sprintf("%d", rec.Generations),
			fmt.Sprintf("%d", rec.Population),
			fmt.Sprintf("%dx%d", rec.Width, rec.Height),
			bounds,
			rules,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return t
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles input and refreshes the table on filter changes.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(core.Clamp(msg.Height-6, 5, 30))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextFilter):
			m.filterIdx = (m.filterIdx + 1) % len(m.filters)
			m.table = m.buildTable()
			return m, nil
		case key.Matches(msg, m.keys.PrevFilter):
			m.filterIdx = (m.filterIdx + len(m.filters) - 1) % len(m.filters)
			m.table = m.buildTable()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	filter := m.filters[m.filterIdx]
	title := "Run History — all automata"
	if filter != "" {
		title = fmt.Sprintf("Run History — %s", registry.Title(filter))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	sb.WriteString("\n\n")

	if m.loadErr != nil {
		sb.WriteString(fmt.Sprintf("error loading runs: %v\n", m.loadErr))
	} else if len(m.table.Rows()) == 0 {
		sb.WriteString("No runs recorded yet.\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// RunHistory starts the interactive run-history browser.
func RunHistory(store *storage.Store, initialFilter string) error {
	model := NewHistoryModel(store, initialFilter)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
