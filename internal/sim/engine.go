// Package sim implements the simulation engine for two cellular automata:
// Conway's Game of Life and Langton's Ant. The engine owns a sparse grid
// keyed by coordinate, a generation counter, and the viewport offset used
// for display and for toroidal wrapping in finite mode.
package sim

import (
	"fmt"
	"math/rand"
)

// Point is a cell coordinate. Coordinates are unbounded and may be
// negative; in infinite mode cells can live and evolve far outside
// the viewport.
type Point struct {
	X, Y int
}

// Ruleset selects the neighbor-counting strategy for Life mode.
type Ruleset int

const (
	RulesMoore      Ruleset = iota // 8 surrounding cells
	RulesVonNeumann                // 4 orthogonal cells
)

// String returns the ruleset's CLI name.
func (r Ruleset) String() string {
	switch r {
	case RulesMoore:
		return "moore"
	case RulesVonNeumann:
		return "vonneumann"
	default:
		return "unknown"
	}
}

// ParseRuleset converts a CLI/config string to a Ruleset.
func ParseRuleset(s string) (Ruleset, error) {
	switch s {
	case "moore", "":
		return RulesMoore, nil
	case "vonneumann", "von_neumann", "von-neumann":
		return RulesVonNeumann, nil
	default:
		return RulesMoore, fmt.Errorf("sim: unknown ruleset %q (want moore or vonneumann)", s)
	}
}

// Mode selects which automaton the engine runs.
type Mode int

const (
	ModeLife Mode = iota
	ModeAnts
)

// String returns the mode's CLI name.
func (m Mode) String() string {
	switch m {
	case ModeLife:
		return "life"
	case ModeAnts:
		return "ants"
	default:
		return "unknown"
	}
}

// Heading is one of the four cardinal directions, indexed 0..3 in the
// order North, East, South, West. The same values drive ant movement
// and viewport panning.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// headingVectors maps a heading to its unit movement vector.
// Screen coordinates: y grows downward, so North is (0, -1).
var headingVectors = [4]Point{
	{0, -1}, // North
	{1, 0},  // East
	{0, 1},  // South
	{-1, 0}, // West
}

// Vector returns the unit movement vector for the heading.
func (h Heading) Vector() Point {
	return headingVectors[h&3]
}

// String returns a human-readable name for the heading.
func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// mooreOffsets are the 8 surrounding cells.
var mooreOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// vonNeumannOffsets are the 4 orthogonally adjacent cells.
var vonNeumannOffsets = [4]Point{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

// Config holds the engine's one-time construction parameters.
type Config struct {
	Width    int     // Viewport width in cells, must be positive
	Height   int     // Viewport height in cells, must be positive
	Infinite bool    // Unbounded grid; false means toroidal wrap at the viewport
	Rules    Ruleset // Neighbor-counting rules, Life mode only
	Offset   Point   // Initial viewport offset
	Mode     Mode    // Which automaton to run
	Seed     int64   // RNG seed for Life's initial population
}

// Engine is the simulation engine. It owns the grid, the current mode,
// the ruleset, and the generation counter. All mutation happens through
// Advance and Pan; callers must serialize mutating calls.
type Engine struct {
	cfg        Config
	width      int
	height     int
	infinite   bool
	rules      Ruleset
	offset     Point
	mode       Mode
	generation int

	// grid holds alive cells only. A present key is always alive; dead
	// cells are implicitly absent, keeping memory proportional to
	// population rather than grid area.
	grid map[Point]struct{}

	// Ant mode state.
	ant     Point
	heading Heading
}

// New constructs an engine. Non-positive viewport dimensions are rejected.
// In Life mode every cell of the width×height window rooted at the offset
// is independently alive with probability 1/2, drawn from a source seeded
// by cfg.Seed. In Ants mode the grid starts empty and the ant is placed at
// the viewport center heading North.
func New(cfg Config) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sim: viewport must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	e := &Engine{
		cfg:      cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		infinite: cfg.Infinite,
		rules:    cfg.Rules,
		offset:   cfg.Offset,
		mode:     cfg.Mode,
		grid:     make(map[Point]struct{}),
	}

	switch cfg.Mode {
	case ModeLife:
		rng := rand.New(rand.NewSource(cfg.Seed))
		for x := 0; x < cfg.Width; x++ {
			for y := 0; y < cfg.Height; y++ {
				if rng.Intn(2) == 1 {
					e.grid[Point{x + cfg.Offset.X, y + cfg.Offset.Y}] = struct{}{}
				}
			}
		}
	case ModeAnts:
		e.ant = Point{
			X: cfg.Width/2 + cfg.Offset.X,
			Y: cfg.Height/2 + cfg.Offset.Y,
		}
		e.heading = North
	}

	return e, nil
}

// floorMod returns a mod m with a non-negative result for any sign of a.
func floorMod(a, m int) int {
	return ((a % m) + m) % m
}

// wrap maps a coordinate into the viewport's toroidal space.
// Used for neighbor lookups in finite mode only.
func (e *Engine) wrap(p Point) Point {
	return Point{
		X: floorMod(p.X-e.offset.X, e.width) + e.offset.X,
		Y: floorMod(p.Y-e.offset.Y, e.height) + e.offset.Y,
	}
}

// Alive reports whether the cell at (x, y) is alive.
func (e *Engine) Alive(x, y int) bool {
	_, ok := e.grid[Point{x, y}]
	return ok
}

// CountNeighbors returns the number of alive neighbors of (x, y) under
// the configured ruleset. In finite mode each neighbor coordinate is
// wrapped into the viewport's torus before lookup.
func (e *Engine) CountNeighbors(x, y int) int {
	if e.rules == RulesVonNeumann {
		return e.countNeighbors(x, y, vonNeumannOffsets[:])
	}
	return e.countNeighbors(x, y, mooreOffsets[:])
}

func (e *Engine) countNeighbors(x, y int, offsets []Point) int {
	count := 0
	for _, d := range offsets {
		p := Point{X: x + d.X, Y: y + d.Y}
		if !e.infinite {
			p = e.wrap(p)
		}
		if _, ok := e.grid[p]; ok {
			count++
		}
	}
	return count
}

// Advance computes the next generation. Exactly one generation is added
// per call regardless of mode.
func (e *Engine) Advance() {
	switch e.mode {
	case ModeLife:
		e.stepLife()
	case ModeAnts:
		e.stepAnt()
	}
}

// stepLife applies the standard Conway update over the sparse grid.
func (e *Engine) stepLife() {
	// Candidates are every alive cell plus its full Moore neighborhood.
	// The expansion stays 8-cell even under the Von Neumann ruleset; only
	// the rule evaluation switches neighborhoods.
	candidates := make(map[Point]struct{}, len(e.grid)*4)
	for p := range e.grid {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				candidates[Point{X: p.X + dx, Y: p.Y + dy}] = struct{}{}
			}
		}
	}

	next := make(map[Point]struct{}, len(e.grid))
	for p := range candidates {
		neighbors := e.CountNeighbors(p.X, p.Y)
		if _, alive := e.grid[p]; alive {
			if neighbors == 2 || neighbors == 3 {
				next[p] = struct{}{}
			}
		} else if neighbors == 3 {
			next[p] = struct{}{}
		}
	}

	e.grid = next
	e.generation++
}

// stepAnt performs one step of Langton's Ant: flip the cell under the
// ant, turn right if it was dead and left if it was alive, then move one
// cell forward along the new heading.
func (e *Engine) stepAnt() {
	pos := e.ant
	_, wasAlive := e.grid[pos]

	if wasAlive {
		delete(e.grid, pos)
		e.heading = (e.heading + 3) % 4 // left turn, non-negative
	} else {
		e.grid[pos] = struct{}{}
		e.heading = (e.heading + 1) % 4 // right turn
	}

	v := e.heading.Vector()
	e.ant = Point{X: pos.X + v.X, Y: pos.Y + v.Y}

	e.generation++
}

// Pan shifts the viewport offset by one cell in the given direction.
// It never touches grid contents, ant state, or the generation counter.
func (e *Engine) Pan(dir Heading) {
	v := dir.Vector()
	e.offset.X += v.X
	e.offset.Y += v.Y
}

// Generation returns the number of Advance calls made so far.
func (e *Engine) Generation() int {
	return e.generation
}

// Population returns the number of alive cells.
func (e *Engine) Population() int {
	return len(e.grid)
}

// Viewport returns the display dimensions and current offset.
func (e *Engine) Viewport() (width, height int, offset Point) {
	return e.width, e.height, e.offset
}

// Offset returns the current viewport offset.
func (e *Engine) Offset() Point {
	return e.offset
}

// Mode returns the automaton the engine runs.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Rules returns the configured neighbor-counting ruleset.
func (e *Engine) Rules() Ruleset {
	return e.rules
}

// Infinite reports whether the grid is unbounded.
func (e *Engine) Infinite() bool {
	return e.infinite
}

// Ant returns the ant's position and heading. Meaningful in Ants mode only.
func (e *Engine) Ant() (Point, Heading) {
	return e.ant, e.heading
}

// Config returns the construction parameters. The offset is the initial
// one, not the panned one. Used by the platform to restart with a fresh seed.
func (e *Engine) Config() Config {
	return e.cfg
}
