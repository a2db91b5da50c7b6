package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tilenav/internal/grid"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "idle"},
		{StateSearching, "searching"},
		{StateFound, "found"},
		{StateNotFound, "not_found"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.String())
	}
}

func TestFindPathOpenGridOrthogonal(t *testing.T) {
	g := openGrid(t, 5, 5)

	res, err := FindPath(context.Background(), g, center(0, 0), center(4, 4), Orthogonal)
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, 9, res.Len())
	assert.Equal(t, 80, res.Cost)
	assert.Equal(t, center(0, 0), res.Waypoints[0])
	last, ok := res.Last()
	require.True(t, ok)
	assert.Equal(t, center(4, 4), last)

	// Ties on total cost go to the lower heuristic, then to insertion order.
	assert.Equal(t, [][2]int{
		{1, 0}, {1, 1}, {2, 1}, {2, 2}, {3, 2}, {3, 3}, {4, 3}, {4, 4},
	}, coords(res.Tiles))
	assert.Equal(t, 18, res.Expanded)
}

func TestFindPathOpenGridDiagonal(t *testing.T) {
	g := openGrid(t, 5, 5)

	res, err := FindPath(context.Background(), g, center(0, 0), center(4, 4), Diagonal)
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, 5, res.Len())
	assert.Equal(t, 56, res.Cost)
	assert.Equal(t, []grid.Vec2{center(0, 0), center(1, 1), center(2, 2), center(3, 3), center(4, 4)}, res.Waypoints)
	assert.Equal(t, 5, res.Expanded)
}

func TestFindPathDetoursAroundWall(t *testing.T) {
	g := gridFromRows(t,
		"...",
		".#.",
		"...",
	)

	res, err := FindPath(context.Background(), g, center(0, 1), center(2, 1), Orthogonal)
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Greater(t, res.Len(), 3, "straight line would be 3 waypoints")
	assert.Equal(t, 40, res.Cost)
	assert.Equal(t, [][2]int{{0, 2}, {1, 2}, {2, 2}, {2, 1}}, coords(res.Tiles))
	for _, tile := range res.Tiles {
		assert.False(t, tile.Wall)
	}
}

func TestFindPathDiagonalCutsPastWall(t *testing.T) {
	g := gridFromRows(t,
		"...",
		".#.",
		"...",
	)

	res, err := FindPath(context.Background(), g, center(0, 1), center(2, 1), Diagonal)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 28, res.Cost)
	assert.Equal(t, [][2]int{{1, 0}, {2, 1}}, coords(res.Tiles))
}

func TestFindPathGoalIsWall(t *testing.T) {
	g := gridFromRows(t,
		"...",
		"...",
		"..#",
	)

	for _, mode := range []Mode{Orthogonal, Diagonal} {
		res, err := FindPath(context.Background(), g, center(0, 0), center(2, 2), mode)
		require.NoError(t, err)
		assert.False(t, res.Found, mode.String())
		assert.Empty(t, res.Waypoints, mode.String())
		assert.Empty(t, res.Tiles, mode.String())
		assert.Zero(t, res.Cost, mode.String())
	}
}

func TestSearchEnclosedGoal(t *testing.T) {
	g := gridFromRows(t,
		".......",
		".......",
		".......",
		"...###.",
		"...#.#.",
		"...###.",
		".......",
	)
	goal := g.At(4, 4)

	for _, mode := range []Mode{Orthogonal, Diagonal} {
		out, err := Search(context.Background(), g, g.At(0, 0), goal, StrategyFor(mode))
		require.NoError(t, err)
		assert.Equal(t, StateNotFound, out.State)
		assert.False(t, out.Found())
		assert.Equal(t, -1, out.Goal)

		path, err := Extract(g, out)
		require.NoError(t, err)
		assert.Empty(t, path)

		// Every walkable tile outside the ring is reachable and must be closed.
		closed := map[int]bool{}
		for _, i := range out.Closed() {
			assert.False(t, closed[i], "tile %d closed twice", i)
			closed[i] = true
		}
		for i := 0; i < g.Len(); i++ {
			tile := g.TileByIndex(i)
			reachable := !tile.Wall && tile != goal
			assert.Equal(t, reachable, closed[i], "%s tile (%d,%d)", mode, tile.X, tile.Y)
		}
		assert.Equal(t, 40, out.Expanded)
	}
}

func TestFindPathStartIsGoal(t *testing.T) {
	g := openGrid(t, 3, 3)

	res, err := FindPath(context.Background(), g, grid.Vec2{X: 1.2, Y: 1.7}, grid.Vec2{X: 1.9, Y: 1.1}, Diagonal)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, res.Tiles)
	assert.Equal(t, []grid.Vec2{center(1, 1)}, res.Waypoints)
	assert.Zero(t, res.Cost)
}

func TestFindPathClampsOutsidePositions(t *testing.T) {
	g := openGrid(t, 4, 4)

	res, err := FindPath(context.Background(), g, grid.Vec2{X: -50, Y: -50}, grid.Vec2{X: 900, Y: 900}, Diagonal)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, center(0, 0), res.Waypoints[0])
	last, _ := res.Last()
	assert.Equal(t, center(3, 3), last)
}

func TestFindPathIdempotent(t *testing.T) {
	g := gridFromRows(t,
		"........",
		".####...",
		"....#.#.",
		".##.#.#.",
		"..#...#.",
		"..#####.",
		"........",
	)

	for _, mode := range []Mode{Orthogonal, Diagonal} {
		first, err := FindPath(context.Background(), g, center(0, 0), center(5, 3), mode)
		require.NoError(t, err)
		require.True(t, first.Found)

		for i := 0; i < 3; i++ {
			again, err := FindPath(context.Background(), g, center(0, 0), center(5, 3), mode)
			require.NoError(t, err)
			assert.Equal(t, first.Waypoints, again.Waypoints)
			assert.Equal(t, first.Cost, again.Cost)
		}
	}
}

func TestFindPathValidAndOptimal(t *testing.T) {
	g := gridFromRows(t,
		"..........",
		".###.####.",
		"...#....#.",
		"##.#.##.#.",
		"...#..#...",
		".####.###.",
		"......#...",
	)

	for _, mode := range []Mode{Orthogonal, Diagonal} {
		for _, goal := range [][2]int{{9, 6}, {4, 2}, {0, 6}, {7, 4}, {2, 3}} {
			start := g.At(0, 0)
			res, err := FindPath(context.Background(), g, start.Center(), center(goal[0], goal[1]), mode)
			require.NoError(t, err)

			want := dijkstraCosts(g, start, mode)[g.Index(goal[0], goal[1])]
			if want < 0 {
				assert.False(t, res.Found, "%s goal %v", mode, goal)
				continue
			}
			require.True(t, res.Found, "%s goal %v", mode, goal)
			assert.Equal(t, want, res.Cost, "%s goal %v", mode, goal)

			prev := start
			sum := 0
			for _, tile := range res.Tiles {
				assert.False(t, tile.Wall)
				assert.True(t, IsNeighbor(mode, prev, tile), "%s: (%d,%d)->(%d,%d)", mode, prev.X, prev.Y, tile.X, tile.Y)
				sum += StepCost(prev, tile)
				prev = tile
			}
			assert.Equal(t, res.Cost, sum)
			assert.Equal(t, len(res.Tiles)+1, len(res.Waypoints))
		}
	}
}

func TestSearchMatchesLinearScan(t *testing.T) {
	layouts := [][]string{
		{
			".......",
			".......",
			".......",
			".......",
			".......",
		},
		{
			"..#....#..",
			"..#.##.#..",
			"....#..#..",
			".####.##..",
			"......#...",
			"..#.#...#.",
		},
		{
			"...#......",
			".#.#.####.",
			".#...#....",
			".#####.##.",
			".......#..",
		},
	}

	for li, rows := range layouts {
		g := gridFromRows(t, rows...)
		start := g.At(0, 0)
		for _, mode := range []Mode{Orthogonal, Diagonal} {
			for i := 0; i < g.Len(); i++ {
				goal := g.TileByIndex(i)
				wantPath, wantCost, wantFound := linearScanPath(g, start, goal, mode)

				res, err := findPath(context.Background(), g, start, goal, StrategyFor(mode))
				require.NoError(t, err)
				require.Equal(t, wantFound, res.Found, "layout %d %s goal (%d,%d)", li, mode, goal.X, goal.Y)
				if !wantFound {
					continue
				}
				if len(wantPath) == 0 {
					assert.Empty(t, res.Tiles)
				} else {
					assert.Equal(t, wantPath, coords(res.Tiles), "layout %d %s goal (%d,%d)", li, mode, goal.X, goal.Y)
				}
				assert.Equal(t, wantCost, res.Cost)
			}
		}
	}
}

func TestSearchDoesNotMutateGrid(t *testing.T) {
	g := gridFromRows(t,
		"....",
		".##.",
		"....",
	)
	before := make([]grid.Tile, g.Len())
	for i := range before {
		before[i] = *g.TileByIndex(i)
	}

	_, err := FindPath(context.Background(), g, center(0, 0), center(3, 2), Diagonal)
	require.NoError(t, err)

	for i := range before {
		assert.Equal(t, before[i], *g.TileByIndex(i))
	}
}

func TestSearchCancelled(t *testing.T) {
	g := openGrid(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Search(ctx, g, g.At(0, 0), g.At(9, 9), StrategyFor(Diagonal))
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = FindPath(ctx, g, center(0, 0), center(9, 9), Diagonal)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSearchFromWallStart(t *testing.T) {
	g := gridFromRows(t,
		"#..",
		"...",
	)

	res, err := FindPath(context.Background(), g, center(0, 0), center(2, 1), Orthogonal)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 30, res.Cost)
}
