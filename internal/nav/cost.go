// Package nav implements A* pathfinding over a tile grid.
package nav

import "github.com/samdwyer/tilenav/internal/grid"

// Integer movement costs, an approximation of 1 : sqrt(2).
const (
	OrthogonalCost = 10
	DiagonalCost   = 14
)

// StepCost returns the diagonal-distance cost between two tiles.
// For adjacent tiles it is the true step cost: 10 straight, 14 diagonal.
func StepCost(a, b *grid.Tile) int {
	return distance(a.X, a.Y, b.X, b.Y)
}

// Heuristic estimates the remaining cost from t to goal. It never
// overestimates under either adjacency mode.
func Heuristic(t, goal *grid.Tile) int {
	return distance(t.X, t.Y, goal.X, goal.Y)
}

func distance(ax, ay, bx, by int) int {
	dx := abs(ax - bx)
	dy := abs(ay - by)
	lo, hi := min(dx, dy), max(dx, dy)
	return DiagonalCost*lo + OrthogonalCost*(hi-lo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
