package sim

import (
	"testing"

	"github.com/probello/golife/internal/core"
)

// newLifeEngine builds a Life engine and clears the random seeding so
// tests can install exact patterns.
func newLifeEngine(t *testing.T, width, height int, infinite bool, rules Ruleset) *Engine {
	t.Helper()
	e, err := New(Config{
		Width:    width,
		Height:   height,
		Infinite: infinite,
		Rules:    rules,
		Mode:     ModeLife,
		Seed:     1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.grid = make(map[Point]struct{})
	return e
}

func setAlive(e *Engine, pts ...Point) {
	for _, p := range pts {
		e.grid[p] = struct{}{}
	}
}

func TestConstructionRejectsNonPositiveViewport(t *testing.T) {
	cases := []struct{ w, h int }{
		{0, 10},
		{10, 0},
		{-3, 5},
		{5, -1},
	}
	for _, c := range cases {
		if _, err := New(Config{Width: c.w, Height: c.h}); err == nil {
			t.Errorf("New(%dx%d) should fail", c.w, c.h)
		}
	}
}

func TestBirthOnExactlyThreeNeighbors(t *testing.T) {
	e := newLifeEngine(t, 10, 10, true, RulesMoore)

	// Three cells around a dead center (1,1).
	setAlive(e, Point{0, 0}, Point{2, 0}, Point{0, 2})

	e.Advance()

	if !e.Alive(1, 1) {
		t.Error("dead cell with exactly 3 neighbors should be born")
	}
	if e.Generation() != 1 {
		t.Errorf("generation = %d, expected 1", e.Generation())
	}
}

func TestDeathByIsolationAndOvercrowding(t *testing.T) {
	// 0 neighbors.
	e := newLifeEngine(t, 10, 10, true, RulesMoore)
	setAlive(e, Point{5, 5})
	e.Advance()
	if e.Alive(5, 5) {
		t.Error("live cell with 0 neighbors should die")
	}

	// 1 neighbor.
	e = newLifeEngine(t, 10, 10, true, RulesMoore)
	setAlive(e, Point{5, 5}, Point{6, 5})
	e.Advance()
	if e.Alive(5, 5) || e.Alive(6, 5) {
		t.Error("live cells with 1 neighbor should die")
	}

	// 4 neighbors.
	e = newLifeEngine(t, 10, 10, true, RulesMoore)
	setAlive(e, Point{5, 5}, Point{4, 5}, Point{6, 5}, Point{5, 4}, Point{5, 6})
	e.Advance()
	if e.Alive(5, 5) {
		t.Error("live cell with 4 neighbors should die")
	}
}

func TestSurvivalOnTwoOrThreeNeighbors(t *testing.T) {
	// Block (2x2): every cell has exactly 3 neighbors, still life.
	e := newLifeEngine(t, 10, 10, true, RulesMoore)
	block := []Point{{3, 3}, {4, 3}, {3, 4}, {4, 4}}
	setAlive(e, block...)

	e.Advance()

	for _, p := range block {
		if !e.Alive(p.X, p.Y) {
			t.Errorf("block cell (%d,%d) should survive", p.X, p.Y)
		}
	}
	if e.Population() != 4 {
		t.Errorf("block population = %d, expected 4", e.Population())
	}
}

func TestFiniteWrapCountsToroidally(t *testing.T) {
	// 3x3 finite grid, all 9 cells alive: every cell has exactly 8
	// neighbors because lookups wrap at the edges.
	e := newLifeEngine(t, 3, 3, false, RulesMoore)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			setAlive(e, Point{x, y})
		}
	}

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if n := e.CountNeighbors(x, y); n != 8 {
				t.Errorf("finite (%d,%d): neighbors = %d, expected 8", x, y, n)
			}
		}
	}
}

func TestInfiniteCornerHasThreeNeighbors(t *testing.T) {
	// Same 3x3 all-alive pattern, but infinite mode: the corner only
	// sees the 3 cells actually adjacent to it.
	e := newLifeEngine(t, 3, 3, true, RulesMoore)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			setAlive(e, Point{x, y})
		}
	}

	if n := e.CountNeighbors(0, 0); n != 3 {
		t.Errorf("infinite corner neighbors = %d, expected 3", n)
	}
	if n := e.CountNeighbors(1, 1); n != 8 {
		t.Errorf("infinite center neighbors = %d, expected 8", n)
	}
}

func TestFiniteWrapWithNegativeOffset(t *testing.T) {
	// Wrapping is relative to the viewport offset and must use floor-mod,
	// staying correct when coordinates minus offset go negative.
	e, err := New(Config{
		Width:  4,
		Height: 4,
		Offset: Point{X: -5, Y: -7},
		Mode:   ModeLife,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.grid = make(map[Point]struct{})

	// Alive at the viewport's right edge; the left-edge cell must see it.
	setAlive(e, Point{X: -5 + 3, Y: -7})
	if n := e.CountNeighbors(-5, -7); n != 1 {
		t.Errorf("wrapped edge neighbors = %d, expected 1", n)
	}
}

func TestBlinkerOscillatesOnFiniteGrid(t *testing.T) {
	// Vertical blinker at column 2, rows 1-3 on a 5x5 finite grid must
	// become a horizontal blinker at row 2, columns 1-3 in one step.
	e := newLifeEngine(t, 5, 5, false, RulesMoore)
	setAlive(e, Point{2, 1}, Point{2, 2}, Point{2, 3})

	if e.Generation() != 0 {
		t.Fatalf("generation = %d before advance, expected 0", e.Generation())
	}

	e.Advance()

	want := []Point{{1, 2}, {2, 2}, {3, 2}}
	for _, p := range want {
		if !e.Alive(p.X, p.Y) {
			t.Errorf("cell (%d,%d) should be alive after one step", p.X, p.Y)
		}
	}
	if e.Population() != 3 {
		t.Errorf("population = %d, expected 3", e.Population())
	}
	if e.Generation() != 1 {
		t.Errorf("generation = %d, expected 1", e.Generation())
	}
}

func TestVonNeumannIgnoresDiagonals(t *testing.T) {
	e := newLifeEngine(t, 10, 10, true, RulesVonNeumann)
	// Four diagonal neighbors of (5,5).
	setAlive(e, Point{4, 4}, Point{6, 4}, Point{4, 6}, Point{6, 6})

	if n := e.CountNeighbors(5, 5); n != 0 {
		t.Errorf("Von Neumann diagonal count = %d, expected 0", n)
	}

	eMoore := newLifeEngine(t, 10, 10, true, RulesMoore)
	setAlive(eMoore, Point{4, 4}, Point{6, 4}, Point{4, 6}, Point{6, 6})
	if n := eMoore.CountNeighbors(5, 5); n != 4 {
		t.Errorf("Moore diagonal count = %d, expected 4", n)
	}
}

func TestAntFirstStep(t *testing.T) {
	// Empty 5x5 grid, ant at the center heading North. One step must
	// mark the start cell alive, turn the ant right (East), and move it
	// one cell east.
	e, err := New(Config{Width: 5, Height: 5, Infinite: true, Mode: ModeAnts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start, heading := e.Ant()
	if start != (Point{2, 2}) {
		t.Fatalf("ant starts at (%d,%d), expected (2,2)", start.X, start.Y)
	}
	if heading != North {
		t.Fatalf("ant starts heading %s, expected north", heading)
	}
	if e.Population() != 0 {
		t.Fatalf("ant grid should start empty, population = %d", e.Population())
	}

	e.Advance()

	if !e.Alive(start.X, start.Y) {
		t.Error("starting cell should be alive after one step")
	}
	pos, heading := e.Ant()
	if heading != East {
		t.Errorf("heading = %s, expected east", heading)
	}
	if pos != (Point{3, 2}) {
		t.Errorf("ant at (%d,%d), expected (3,2)", pos.X, pos.Y)
	}
	if pos == start {
		t.Error("ant should have left the starting cell")
	}
	if e.Generation() != 1 {
		t.Errorf("generation = %d, expected 1", e.Generation())
	}
}

func TestAntTurnsLeftOnAliveCell(t *testing.T) {
	e, err := New(Config{Width: 5, Height: 5, Infinite: true, Mode: ModeAnts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	setAlive(e, Point{2, 2})

	e.Advance()

	if e.Alive(2, 2) {
		t.Error("alive cell under the ant should flip to dead")
	}
	pos, heading := e.Ant()
	if heading != West {
		t.Errorf("heading = %s, expected west (left turn from north)", heading)
	}
	if pos != (Point{1, 2}) {
		t.Errorf("ant at (%d,%d), expected (1,2)", pos.X, pos.Y)
	}
}

func TestAntCellFlipIsUnconditional(t *testing.T) {
	e, err := New(Config{Width: 9, Height: 9, Infinite: true, Mode: ModeAnts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Step the ant several times: each visited cell flips regardless of
	// its neighborhood.
	for i := 0; i < 4; i++ {
		e.Advance()
	}

	// The classic first cycle: the ant loops right around its start.
	if e.Generation() != 4 {
		t.Errorf("generation = %d, expected 4", e.Generation())
	}
	if e.Population() != 4 {
		t.Errorf("population = %d, expected 4 after first loop", e.Population())
	}
}

func TestZeroAdvancesLeavesStateUntouched(t *testing.T) {
	e, err := New(Config{Width: 8, Height: 6, Mode: ModeLife, Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := e.Snapshot()
	gridBefore := make(map[Point]struct{}, len(e.grid))
	for p := range e.grid {
		gridBefore[p] = struct{}{}
	}

	// No Advance calls at all.
	after := e.Snapshot()
	if before != after {
		t.Errorf("snapshot changed without Advance: %+v vs %+v", before, after)
	}
	if len(e.grid) != len(gridBefore) {
		t.Fatalf("grid size changed without Advance")
	}
	for p := range gridBefore {
		if !e.Alive(p.X, p.Y) {
			t.Errorf("cell (%d,%d) changed without Advance", p.X, p.Y)
		}
	}
}

func TestPanRoundTrip(t *testing.T) {
	e, err := New(Config{Width: 8, Height: 6, Mode: ModeLife, Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := e.Snapshot()

	for i := 0; i < 3; i++ {
		e.Pan(East)
	}
	if e.Offset() != (Point{3, 0}) {
		t.Errorf("offset after 3 east pans = %+v, expected (3,0)", e.Offset())
	}
	for i := 0; i < 3; i++ {
		e.Pan(West)
	}

	after := e.Snapshot()
	if before != after {
		t.Errorf("pan round trip should restore state: %+v vs %+v", before, after)
	}
	if after.Generation != 0 {
		t.Errorf("pan should not advance generations, got %d", after.Generation)
	}
}

func TestPanDirections(t *testing.T) {
	e, err := New(Config{Width: 4, Height: 4, Mode: ModeAnts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.Pan(North)
	if e.Offset() != (Point{0, -1}) {
		t.Errorf("pan north: offset = %+v, expected (0,-1)", e.Offset())
	}
	e.Pan(South)
	e.Pan(South)
	if e.Offset() != (Point{0, 1}) {
		t.Errorf("pan south twice: offset = %+v, expected (0,1)", e.Offset())
	}

	w, h, off := e.Viewport()
	if w != 4 || h != 4 {
		t.Errorf("viewport = %dx%d, expected 4x4", w, h)
	}
	if off != e.Offset() {
		t.Errorf("viewport offset = %+v, expected %+v", off, e.Offset())
	}
}

func TestSeededConstructionIsDeterministic(t *testing.T) {
	cfg := Config{Width: 20, Height: 15, Mode: ModeLife, Seed: 12345}

	e1, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e2, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if e1.Population() != e2.Population() {
		t.Fatalf("population mismatch: %d vs %d", e1.Population(), e2.Population())
	}
	for p := range e1.grid {
		if !e2.Alive(p.X, p.Y) {
			t.Errorf("grids diverge at (%d,%d) for identical seeds", p.X, p.Y)
		}
	}

	// Same seed, several generations: still identical.
	for i := 0; i < 10; i++ {
		e1.Advance()
		e2.Advance()
	}
	if e1.Snapshot() != e2.Snapshot() {
		t.Errorf("snapshots diverge after 10 generations: %+v vs %+v", e1.Snapshot(), e2.Snapshot())
	}
}

func TestLifeSeedingStaysInsideViewport(t *testing.T) {
	cfg := Config{Width: 6, Height: 4, Offset: Point{X: 10, Y: -3}, Mode: ModeLife, Seed: 99}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for p := range e.grid {
		if p.X < 10 || p.X >= 16 || p.Y < -3 || p.Y >= 1 {
			t.Errorf("seeded cell (%d,%d) outside the offset window", p.X, p.Y)
		}
	}
}

func TestRenderLifeFrame(t *testing.T) {
	e := newLifeEngine(t, 5, 5, true, RulesMoore)
	setAlive(e, Point{1, 1})

	screen := core.NewScreen(40, 10)
	e.Render(screen)

	// Grid starts below the two HUD rows.
	if got := screen.Get(1, 1+hudHeight); got != glyphLife {
		t.Errorf("alive cell glyph = %q, expected %q", got, glyphLife)
	}
	if got := screen.Get(0, 0+hudHeight); got != ' ' {
		t.Errorf("dead cell glyph = %q, expected space", got)
	}
	if row := screen.Row(0); len(row) == 0 || row[1] != 'G' {
		t.Errorf("HUD row = %q, expected Game of Life title", row)
	}
}

func TestRenderAntOverridesTrailGlyph(t *testing.T) {
	e, err := New(Config{Width: 5, Height: 5, Infinite: true, Mode: ModeAnts})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Ant standing on an alive cell still renders as the heading glyph.
	setAlive(e, Point{2, 2})

	screen := core.NewScreen(40, 10)
	e.Render(screen)

	if got := screen.Get(2, 2+hudHeight); got != antGlyphs[North] {
		t.Errorf("ant glyph = %q, expected %q", got, antGlyphs[North])
	}
}

func TestRenderNeighborOverlay(t *testing.T) {
	e := newLifeEngine(t, 5, 5, true, RulesMoore)
	// Lonely cell: will die, its count is 0.
	setAlive(e, Point{2, 2})

	screen := core.NewScreen(40, 10)
	e.RenderNeighbors(screen)

	if got := screen.GetCell(2, 2+hudHeight); got.Rune != '0' || got.Color != core.ColorRed {
		t.Errorf("dying cell overlay = %q/%v, expected '0' in red", got.Rune, got.Color)
	}
	if got := screen.Get(1, 2+hudHeight); got != '1' {
		t.Errorf("neighbor count glyph = %q, expected '1'", got)
	}
}
