package nav

import (
	"context"
	"log/slog"

	"github.com/samdwyer/tilenav/internal/grid"
)

// Result is a computed route handed to movement and rendering code.
type Result struct {
	Found     bool
	Waypoints []grid.Vec2  // Tile centers from the start tile to the goal tile
	Tiles     []*grid.Tile // Tiles after the start tile, in walking order
	Cost      int
	Expanded  int
}

// Len returns the number of waypoints.
func (r Result) Len() int {
	return len(r.Waypoints)
}

// Last returns the final waypoint and false if the result is empty.
func (r Result) Last() (grid.Vec2, bool) {
	if len(r.Waypoints) == 0 {
		return grid.Vec2{}, false
	}
	return r.Waypoints[len(r.Waypoints)-1], true
}

// FindPath maps two world positions onto g and searches between them.
// An unreachable destination is a normal result with Found false and no
// waypoints; errors are reserved for cancellation and corrupt state.
func FindPath(ctx context.Context, g *grid.Grid, from, to grid.Vec2, mode Mode) (Result, error) {
	return findPath(ctx, g, g.TileAt(from), g.TileAt(to), StrategyFor(mode))
}

func findPath(ctx context.Context, g *grid.Grid, start, goal *grid.Tile, strategy NeighborStrategy) (Result, error) {
	out, err := Search(ctx, g, start, goal, strategy)
	if err != nil {
		return Result{}, err
	}

	tiles, err := Extract(g, out)
	if err != nil {
		return Result{}, err
	}

	res := Result{Found: out.Found(), Expanded: out.Expanded}
	if res.Found {
		res.Tiles = tiles
		res.Cost = out.Cost
		res.Waypoints = make([]grid.Vec2, 0, len(tiles)+1)
		res.Waypoints = append(res.Waypoints, start.Center())
		for _, t := range tiles {
			res.Waypoints = append(res.Waypoints, t.Center())
		}
	}

	slog.Debug("path search finished",
		"mode", strategy.Mode(),
		"from_x", start.X, "from_y", start.Y,
		"to_x", goal.X, "to_y", goal.Y,
		"state", out.State,
		"cost", res.Cost,
		"waypoints", len(res.Waypoints),
		"expanded", out.Expanded,
	)
	return res, nil
}
