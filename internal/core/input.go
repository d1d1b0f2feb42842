package core

// Action represents a semantic simulator action, abstracted from physical
// key presses. The platform maps keys to actions; the model consumes them.
type Action int

const (
	ActionNone     Action = iota
	ActionPanUp           // W, Up arrow - shift viewport up by one cell
	ActionPanDown         // S, Down arrow - shift viewport down by one cell
	ActionPanLeft         // A, Left arrow - shift viewport left by one cell
	ActionPanRight        // D, Right arrow - shift viewport right by one cell
	ActionPause           // P - pause/resume the simulation
	ActionOverlay         // N - toggle the neighbor-count overlay
	ActionRestart         // R - restart with a fresh seed
	ActionBack            // B, Escape - leave the simulation view
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPanUp:
		return "PanUp"
	case ActionPanDown:
		return "PanDown"
	case ActionPanLeft:
		return "PanLeft"
	case ActionPanRight:
		return "PanRight"
	case ActionPause:
		return "Pause"
	case ActionOverlay:
		return "Overlay"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
