package controller

// State is a device lifecycle state.
type State uint8

const (
	// StateCreated is the state after construction.
	StateCreated State = iota

	// StateActionsResolved is entered once vendor handles were looked up.
	StateActionsResolved

	// StateLive devices receive per-tick updates.
	StateLive

	// StateRemoved is terminal.
	StateRemoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateActionsResolved:
		return "ACTIONS_RESOLVED"
	case StateLive:
		return "LIVE"
	case StateRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}
