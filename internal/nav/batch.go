package nav

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/tilenav/internal/grid"
)

// Request is one start/destination pair for FindPaths.
type Request struct {
	From grid.Vec2
	To   grid.Vec2
}

// FindPaths runs independent searches over the same grid concurrently.
// Each search keeps its own transient state, so the grid is only read.
// limit caps the number of searches in flight; zero or less means no cap.
// Results are returned in request order. The first error cancels the rest.
func FindPaths(ctx context.Context, g *grid.Grid, reqs []Request, mode Mode, limit int) ([]Result, error) {
	results := make([]Result, len(reqs))
	strategy := StrategyFor(mode)

	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, req := range reqs {
		eg.Go(func() error {
			res, err := findPath(ctx, g, g.TileAt(req.From), g.TileAt(req.To), strategy)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
