package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samdwyer/tilenav/internal/grid"
)

// ErrParentCycle means a search produced a corrupt parent chain.
var ErrParentCycle = errors.New("parent chain does not reach start")

// Extract returns the tiles from start to goal, excluding the start tile.
// It returns an empty slice when the search did not find the goal.
func Extract(g *grid.Grid, out *Outcome) ([]*grid.Tile, error) {
	if out == nil || !out.Found() {
		return nil, nil
	}

	var path []*grid.Tile
	for i := out.Goal; i != out.Start; i = out.Parent(i) {
		// A chain longer than the grid must revisit a tile.
		if i == noParent || len(path) >= g.Len() {
			err := fmt.Errorf("%w: stopped at tile %d after %d hops", ErrParentCycle, i, len(path))
			slog.Error("path extraction aborted", "err", err, "start", out.Start, "goal", out.Goal)
			return nil, err
		}
		path = append(path, g.TileByIndex(i))
	}
	slices.Reverse(path)
	return path, nil
}
