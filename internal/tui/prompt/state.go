package prompt

// EscAction represents the action to take on double ESC press.
type EscAction int

const (
	// EscActionClear clears the input.
	EscActionClear EscAction = iota
	// EscActionExit exits the prompt without submitting.
	EscActionExit
)

// String returns a human-readable description of the action.
func (a EscAction) String() string {
	switch a {
	case EscActionClear:
		return "clear input"
	case EscActionExit:
		return "exit"
	default:
		return "unknown"
	}
}
