// Package registry provides a global catalog of available automata.
// Automata register themselves at startup, allowing the CLI and the SSH
// server to discover and construct engines without hardcoded switches.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/probello/golife/internal/sim"
)

// Info describes a registered automaton.
type Info struct {
	ID    string   // CLI identifier, e.g. "life"
	Title string   // Human-readable name for display
	Mode  sim.Mode // Engine mode the automaton runs in
}

var (
	automata = make(map[string]Info)
	mu       sync.RWMutex
)

// Register adds an automaton to the catalog.
// Panics if an automaton with the same ID is already registered.
func Register(info Info) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := automata[info.ID]; exists {
		panic(fmt.Sprintf("registry: automaton %q already registered", info.ID))
	}

	automata[info.ID] = info
}

// List returns all registered automata, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(automata))
	for _, info := range automata {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create constructs an engine for the automaton with the given ID,
// overriding cfg.Mode with the automaton's mode.
// Returns an error if the ID is not registered.
func Create(id string, cfg sim.Config) (*sim.Engine, error) {
	mu.RLock()
	info, ok := automata[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown automaton %q", id)
	}

	cfg.Mode = info.Mode
	return sim.New(cfg)
}

// Exists checks if an automaton with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := automata[id]
	return ok
}

// Title returns the display name for the given ID, or the ID itself if
// it is not registered.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if info, ok := automata[id]; ok {
		return info.Title
	}
	return id
}
