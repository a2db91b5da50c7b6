package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOrdersStartToGoal(t *testing.T) {
	g := openGrid(t, 4, 1)
	out, err := Search(context.Background(), g, g.At(0, 0), g.At(3, 0), StrategyFor(Orthogonal))
	require.NoError(t, err)

	path, err := Extract(g, out)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 0}, {2, 0}, {3, 0}}, coords(path))
}

func TestExtractNotFound(t *testing.T) {
	g := openGrid(t, 2, 2)

	path, err := Extract(g, nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = Extract(g, &Outcome{State: StateNotFound, Goal: -1})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestExtractDetectsParentCycle(t *testing.T) {
	g := openGrid(t, 3, 1)
	nodes := []node{
		{parent: noParent},
		{parent: 2},
		{parent: 1},
	}
	out := &Outcome{State: StateFound, Start: 0, Goal: 2, nodes: nodes}

	path, err := Extract(g, out)
	assert.Nil(t, path)
	assert.True(t, errors.Is(err, ErrParentCycle))
}

func TestExtractDetectsBrokenChain(t *testing.T) {
	g := openGrid(t, 3, 1)
	nodes := []node{
		{parent: noParent},
		{parent: noParent},
		{parent: 1},
	}
	out := &Outcome{State: StateFound, Start: 0, Goal: 2, nodes: nodes}

	_, err := Extract(g, out)
	assert.True(t, errors.Is(err, ErrParentCycle))
}
