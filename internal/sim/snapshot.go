package sim

// Snapshot is a flat view of the engine state for tests and debugging.
type Snapshot struct {
	Mode       string
	Generation int
	Population int
	OffsetX    int
	OffsetY    int
	AntX       int
	AntY       int
	Heading    string
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Mode:       e.mode.String(),
		Generation: e.generation,
		Population: len(e.grid),
		OffsetX:    e.offset.X,
		OffsetY:    e.offset.Y,
		AntX:       e.ant.X,
		AntY:       e.ant.Y,
		Heading:    e.heading.String(),
	}
}
