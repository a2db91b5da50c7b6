// Package app runs the interactive route viewer.
package app

// State describes what the viewer is currently showing.
type State int

const (
	// StateIdle means no destination has been picked yet.
	StateIdle State = iota
	// StateRouted means a route to the destination is drawn.
	StateRouted
	// StateUnreachable means the destination cannot be reached from the agent.
	StateUnreachable
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRouted:
		return "routed"
	case StateUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}
