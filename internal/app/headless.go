package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/level"
	"github.com/samdwyer/tilenav/internal/nav"
)

// Query describes a single route printed by PrintRoute.
type Query struct {
	From, To grid.Vec2
	Mode     nav.Mode
}

// DefaultQuery routes from the level's spawn point to the far corner of its bounds.
func DefaultQuery(def *level.Def, mode nav.Mode) Query {
	b := def.Bounds()
	return Query{
		From: def.SpawnPos(),
		To:   grid.Vec2{X: b.Max.X + 0.5, Y: b.Max.Y + 0.5},
		Mode: mode,
	}
}

// PrintRoute searches for one route and writes its waypoints to w.
func PrintRoute(ctx context.Context, w io.Writer, g *grid.Grid, q Query) (nav.Result, error) {
	res, err := nav.FindPath(ctx, g, q.From, q.To, q.Mode)
	if err != nil {
		return res, err
	}
	if !res.Found {
		fmt.Fprintf(w, "no route from %v to %v (%s, %d tiles expanded)\n", q.From, q.To, q.Mode, res.Expanded)
		return res, nil
	}

	fmt.Fprintf(w, "route from %v to %v (%s): cost %d, %d waypoints, %d tiles expanded\n",
		q.From, q.To, q.Mode, res.Cost, res.Len(), res.Expanded)
	for i, p := range res.Waypoints {
		fmt.Fprintf(w, "%3d  %6.1f %6.1f\n", i, p.X, p.Y)
	}
	return res, nil
}

// BatchSummary aggregates a batch of random route searches.
type BatchSummary struct {
	Requests  int
	Found     int
	TotalCost int
	Expanded  int
}

// RunBatch searches count routes between random walkable tiles using
// up to workers concurrent searches.
func RunBatch(ctx context.Context, g *grid.Grid, mode nav.Mode, count, workers int, seed int64) (BatchSummary, error) {
	var open []*grid.Tile
	for i := 0; i < g.Len(); i++ {
		if t := g.TileByIndex(i); !t.Wall {
			open = append(open, t)
		}
	}
	if len(open) == 0 || count <= 0 {
		return BatchSummary{}, nil
	}

	rng := rand.New(rand.NewSource(seed))
	reqs := make([]nav.Request, count)
	for i := range reqs {
		reqs[i] = nav.Request{
			From: open[rng.Intn(len(open))].Center(),
			To:   open[rng.Intn(len(open))].Center(),
		}
	}

	results, err := nav.FindPaths(ctx, g, reqs, mode, workers)
	if err != nil {
		return BatchSummary{}, err
	}

	sum := BatchSummary{Requests: count}
	for _, res := range results {
		sum.Expanded += res.Expanded
		if res.Found {
			sum.Found++
			sum.TotalCost += res.Cost
		}
	}
	return sum, nil
}

// String formats the summary for the terminal.
func (s BatchSummary) String() string {
	avg := 0.0
	if s.Found > 0 {
		avg = float64(s.TotalCost) / float64(s.Found)
	}
	return fmt.Sprintf("%d/%d routes found, average cost %.1f, %d tiles expanded",
		s.Found, s.Requests, avg, s.Expanded)
}

// ListLevels writes one line per embedded level with its size.
func ListLevels(w io.Writer, reg *level.Registry) {
	for _, def := range reg.All() {
		width, height := def.Bounds().Size()
		fmt.Fprintf(w, "%-10s %-18s %dx%d\n", def.ID, def.Name, width, height)
	}
}
