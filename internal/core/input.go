package core

// Action represents a semantic input, abstracted from physical key presses
// and pointer events.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W, left click - jump, or restart after game over
	ActionRestart        // R - restart at any time
	ActionHelp           // ? - toggle full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
