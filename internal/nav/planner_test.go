package nav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tilenav/internal/grid"
)

func TestPlannerCachesSameTiles(t *testing.T) {
	g := openGrid(t, 5, 5)
	p := NewPlanner(g, Orthogonal)
	ctx := context.Background()

	_, ok := p.Path()
	assert.False(t, ok)

	first, err := p.SetDestination(ctx, center(0, 0), center(4, 4))
	require.NoError(t, err)
	require.True(t, first.Found)
	assert.Equal(t, 1, p.Searches())

	// Different world positions inside the same tiles reuse the cached route.
	again, err := p.SetDestination(ctx, grid.Vec2{X: 0.1, Y: 0.9}, grid.Vec2{X: 4.8, Y: 4.2})
	require.NoError(t, err)
	assert.Equal(t, first.Waypoints, again.Waypoints)
	assert.Equal(t, 1, p.Searches())

	cached, ok := p.Path()
	require.True(t, ok)
	assert.Equal(t, first.Cost, cached.Cost)

	_, err = p.SetDestination(ctx, center(0, 0), center(2, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Searches())
}

func TestPlannerModeChange(t *testing.T) {
	g := openGrid(t, 5, 5)
	p := NewPlanner(g, Orthogonal)
	ctx := context.Background()

	res, err := p.SetDestination(ctx, center(0, 0), center(4, 4))
	require.NoError(t, err)
	assert.Equal(t, 80, res.Cost)

	p.SetMode(Orthogonal)
	_, ok := p.Path()
	assert.True(t, ok, "same mode keeps the cache")

	p.SetMode(Diagonal)
	assert.Equal(t, Diagonal, p.Mode())
	_, ok = p.Path()
	assert.False(t, ok)

	res, err = p.SetDestination(ctx, center(0, 0), center(4, 4))
	require.NoError(t, err)
	assert.Equal(t, 56, res.Cost)
	assert.Equal(t, 2, p.Searches())
}

func TestPlannerReplanAfterRebuild(t *testing.T) {
	g := openGrid(t, 3, 3)
	p := NewPlanner(g, Orthogonal)
	ctx := context.Background()

	res, err := p.Replan(ctx)
	require.NoError(t, err)
	assert.False(t, res.Found, "no destination yet")
	assert.Equal(t, 0, p.Searches())

	res, err = p.SetDestination(ctx, center(0, 1), center(2, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, res.Cost)

	// Wall off the middle column.
	g.Rebuild(func(pos grid.Vec2) bool { return pos.X != 1.5 })

	res, err = p.Replan(ctx)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Waypoints)
	assert.Equal(t, 2, p.Searches())

	g.Rebuild(func(pos grid.Vec2) bool { return pos != grid.Vec2{X: 1.5, Y: 1.5} })
	res, err = p.Replan(ctx)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 40, res.Cost)
}

func TestPlannerSetGrid(t *testing.T) {
	p := NewPlanner(openGrid(t, 3, 3), Diagonal)
	ctx := context.Background()

	_, err := p.SetDestination(ctx, center(0, 0), center(2, 2))
	require.NoError(t, err)

	p.SetGrid(openGrid(t, 6, 6))
	res, err := p.SetDestination(ctx, center(0, 0), center(5, 5))
	require.NoError(t, err)
	assert.Equal(t, 70, res.Cost)
	assert.Equal(t, 2, p.Searches())
}
