package core

// Action represents a semantic player action, abstracted from physical key presses.
// The platform layer maps keys to actions; the rest of the program never sees keys.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - steer up
	ActionDown             // S, Down arrow - steer down
	ActionLeft             // A, Left arrow - steer left
	ActionRight            // D, Right arrow - steer right
	ActionPause            // P, Space - pause/unpause
	ActionRestart          // R key - start a new session
	ActionConfirm          // Enter - confirm dialog
	ActionBack             // Escape - close dialog
	ActionQuit             // Q, Ctrl+C - exit
	ActionSpeedUp          // + - faster preset for the next session
	ActionSpeedDown        // - - slower preset for the next session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionSpeedUp:
		return "SpeedUp"
	case ActionSpeedDown:
		return "SpeedDown"
	default:
		return "Unknown"
	}
}

// Direction returns the steering direction for a movement action.
// ok is false for actions that do not steer.
func (a Action) Direction() (d Direction, ok bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}
