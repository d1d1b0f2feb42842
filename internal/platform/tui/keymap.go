package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/probello/golife/internal/core"
)

// KeyMapper translates Bubble Tea key messages to simulator actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionPanUp, false
	case "s", "down":
		return core.ActionPanDown, false
	case "a", "left":
		return core.ActionPanLeft, false
	case "d", "right":
		return core.ActionPanRight, false
	case "p", " ":
		return core.ActionPause, false
	case "n":
		return core.ActionOverlay, false
	case "r":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}
