package app

import (
	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/nav"
)

// Agent is the walker whose route the viewer plans.
type Agent struct {
	Pos    grid.Vec2
	Symbol rune

	route []grid.Vec2
	next  int
}

// NewAgent creates an agent at the given world position.
func NewAgent(pos grid.Vec2) *Agent {
	return &Agent{Pos: pos, Symbol: '@'}
}

// Follow replaces the agent's route. The first waypoint is the tile the
// agent stands on, so walking starts at the second one.
func (a *Agent) Follow(res nav.Result) {
	a.route = res.Waypoints
	a.next = 1
}

// Step moves the agent to its next waypoint and reports whether it moved.
func (a *Agent) Step() bool {
	if a.next >= len(a.route) {
		return false
	}
	a.Pos = a.route[a.next]
	a.next++
	return true
}

// Blink moves the agent straight to the end of its route.
func (a *Agent) Blink() bool {
	if a.next >= len(a.route) {
		return false
	}
	a.Pos = a.route[len(a.route)-1]
	a.next = len(a.route)
	return true
}

// Remaining returns the waypoints still ahead of the agent.
func (a *Agent) Remaining() []grid.Vec2 {
	if a.next >= len(a.route) {
		return nil
	}
	return a.route[a.next:]
}
