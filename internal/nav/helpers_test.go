package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tilenav/internal/grid"
)

// gridFromRows builds a grid whose origin is (0,0); rows[y][x] == '#' is a wall.
func gridFromRows(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	require.NotEmpty(t, rows)

	bounds := grid.Bounds{Max: grid.Vec2{X: float64(len(rows[0]) - 1), Y: float64(len(rows) - 1)}}
	g, err := grid.Build(bounds, func(p grid.Vec2) bool {
		return rows[int(p.Y)][int(p.X)] != '#'
	})
	require.NoError(t, err)
	return g
}

func openGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	rows := make([]string, h)
	for y := range rows {
		row := make([]byte, w)
		for x := range row {
			row[x] = '.'
		}
		rows[y] = string(row)
	}
	return gridFromRows(t, rows...)
}

func center(x, y int) grid.Vec2 {
	return grid.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func coords(tiles []*grid.Tile) [][2]int {
	out := make([][2]int, len(tiles))
	for i, t := range tiles {
		out[i] = [2]int{t.X, t.Y}
	}
	return out
}

// dijkstraCosts returns the optimal cost from src to every tile, -1 if unreachable.
// It is a deliberately naive O(V^2) reference for checking A*.
func dijkstraCosts(g *grid.Grid, src *grid.Tile, mode Mode) []int {
	const unreached = -1
	strategy := StrategyFor(mode)
	dist := make([]int, g.Len())
	done := make([]bool, g.Len())
	for i := range dist {
		dist[i] = unreached
	}
	dist[g.IndexOf(src)] = 0

	for {
		best := unreached
		for i := range dist {
			if !done[i] && dist[i] != unreached && (best == unreached || dist[i] < dist[best]) {
				best = i
			}
		}
		if best == unreached {
			return dist
		}
		done[best] = true
		cur := g.TileByIndex(best)
		for _, nb := range strategy.Neighbors(g, cur, nil) {
			if nb.Wall {
				continue
			}
			j := g.IndexOf(nb)
			if c := dist[best] + StepCost(cur, nb); dist[j] == unreached || c < dist[j] {
				dist[j] = c
			}
		}
	}
}

// linearScanPath is a straightforward A* with an insertion-ordered open list,
// used to check that the heap-based search picks the same tiles.
func linearScanPath(g *grid.Grid, start, goal *grid.Tile, mode Mode) ([][2]int, int, bool) {
	strategy := StrategyFor(mode)
	type rec struct {
		g, h   int
		parent *grid.Tile
	}
	recs := map[*grid.Tile]*rec{start: {h: Heuristic(start, goal)}}
	open := []*grid.Tile{start}
	closed := map[*grid.Tile]bool{}
	inOpen := func(t *grid.Tile) int {
		for i, o := range open {
			if o == t {
				return i
			}
		}
		return -1
	}

	for len(open) > 0 {
		ci := 0
		for i, t := range open {
			a, b := recs[t], recs[open[ci]]
			if a.g+a.h < b.g+b.h || (a.g+a.h == b.g+b.h && a.h < b.h) {
				ci = i
			}
		}
		cur := open[ci]
		open = append(open[:ci], open[ci+1:]...)
		closed[cur] = true

		if cur == goal {
			var path [][2]int
			for t := goal; t != start; t = recs[t].parent {
				path = append([][2]int{{t.X, t.Y}}, path...)
			}
			return path, recs[goal].g, true
		}

		for _, nb := range strategy.Neighbors(g, cur, nil) {
			if nb.Wall || closed[nb] {
				continue
			}
			r, ok := recs[nb]
			if !ok {
				r = &rec{}
				recs[nb] = r
			}
			cost := recs[cur].g + StepCost(cur, nb)
			if cost < r.g || inOpen(nb) < 0 {
				r.g = cost
				r.h = Heuristic(nb, goal)
				r.parent = cur
				if inOpen(nb) < 0 {
					open = append(open, nb)
				}
			}
		}
	}
	return nil, 0, false
}
