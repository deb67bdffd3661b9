package core

import "github.com/vovakirdan/tilequest/internal/grid"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game state to work with intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionMoveLeft          // A, Left arrow
	ActionMoveUp            // W, Up arrow
	ActionMoveRight         // D, Right arrow
	ActionMoveDown          // S, Down arrow
	ActionActivate          // E, Enter - use the tile in front of the player
	ActionAttack            // Space - strike the tile in front of the player
	ActionFire              // F - launch a projectile
	ActionCycleElement      // Tab - switch the projectile element
	ActionBomb              // B - launch an explosive projectile
	ActionSave              // Ctrl+S - write a save slot
	ActionLoad              // Ctrl+L - restore the latest save slot
	ActionPause             // P, Escape
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveRight:
		return "MoveRight"
	case ActionMoveDown:
		return "MoveDown"
	case ActionActivate:
		return "Activate"
	case ActionAttack:
		return "Attack"
	case ActionFire:
		return "Fire"
	case ActionCycleElement:
		return "CycleElement"
	case ActionBomb:
		return "Bomb"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MoveDirection returns the direction a movement action points in, or
// grid.DirNone for actions that are not movement.
func (a Action) MoveDirection() grid.Direction {
	switch a {
	case ActionMoveLeft:
		return grid.DirLeft
	case ActionMoveUp:
		return grid.DirUp
	case ActionMoveRight:
		return grid.DirRight
	case ActionMoveDown:
		return grid.DirDown
	default:
		return grid.DirNone
	}
}

// InputFrame represents the player's input during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Move returns the movement direction requested this frame. When several
// movement keys are held, the first in left, up, right, down order wins.
func (f InputFrame) Move() grid.Direction {
	for _, a := range []Action{ActionMoveLeft, ActionMoveUp, ActionMoveRight, ActionMoveDown} {
		if f.Has(a) {
			return a.MoveDirection()
		}
	}
	return grid.DirNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
