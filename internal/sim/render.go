package sim

import (
	"fmt"

	"github.com/probello/golife/internal/core"
)

// Glyphs used for the frame. The ant glyph indexes by heading.
const (
	glyphLife  = '●'
	glyphTrail = '■'
)

var antGlyphs = [4]rune{'▲', '▶', '▼', '◀'} // North, East, South, West

// hudHeight is the number of screen rows reserved above the grid.
const hudHeight = 2

// Render draws the current viewport window into the screen buffer:
// a HUD line, a separator, then one screen cell per grid cell.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()
	e.renderHUD(dst)

	var antPos Point
	if e.mode == ModeAnts {
		antPos, _ = e.Ant()
	}

	for y := 0; y < e.height && y+hudHeight < dst.Height(); y++ {
		for x := 0; x < e.width && x < dst.Width(); x++ {
			cell := Point{X: x + e.offset.X, Y: y + e.offset.Y}

			if e.mode == ModeAnts && cell == antPos {
				// The ant's own cell shows its heading, overriding the
				// alive/dead glyph.
				dst.SetCell(x, y+hudHeight, antGlyphs[e.heading&3], core.ColorBrightRed)
				continue
			}

			if e.Alive(cell.X, cell.Y) {
				switch e.mode {
				case ModeAnts:
					dst.SetCell(x, y+hudHeight, glyphTrail, core.ColorWhite)
				default:
					dst.SetCell(x, y+hudHeight, glyphLife, core.ColorGreen)
				}
			}
		}
	}
}

// RenderNeighbors draws the neighbor-count overlay instead of the grid:
// each cell shows its live-neighbor count, red for an alive cell that
// will die, green for a dead cell that will be born, white otherwise.
func (e *Engine) RenderNeighbors(dst *core.Screen) {
	dst.Clear()
	e.renderHUD(dst)

	for y := 0; y < e.height && y+hudHeight < dst.Height(); y++ {
		for x := 0; x < e.width && x < dst.Width(); x++ {
			cx, cy := x+e.offset.X, y+e.offset.Y
			neighbors := e.CountNeighbors(cx, cy)
			alive := e.Alive(cx, cy)

			color := core.ColorWhite
			switch {
			case alive && (neighbors < 2 || neighbors > 3):
				color = core.ColorRed
			case !alive && neighbors == 3:
				color = core.ColorGreen
			}

			dst.SetCell(x, y+hudHeight, rune('0'+neighbors), color)
		}
	}
}

// renderHUD draws the status line and separator.
func (e *Engine) renderHUD(dst *core.Screen) {
	var hud string
	switch e.mode {
	case ModeAnts:
		hud = fmt.Sprintf(" Langton's Ant — %dx%d  Offset: (%d,%d)  Infinite: %v  Gen: %d  Pop: %d",
			e.width, e.height, e.offset.X, e.offset.Y, e.infinite, e.generation, len(e.grid))
	default:
		hud = fmt.Sprintf(" Game of Life — %dx%d  Rules: %s  Offset: (%d,%d)  Infinite: %v  Gen: %d  Pop: %d",
			e.width, e.height, e.rules, e.offset.X, e.offset.Y, e.infinite, e.generation, len(e.grid))
	}

	dst.DrawTextColored(0, 0, hud, core.ColorBrightMagenta)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}
