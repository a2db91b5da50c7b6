package nav

import (
	"context"
	"sync"

	"github.com/samdwyer/tilenav/internal/grid"
)

// Planner caches the route to the current destination.
// A search runs only when the start tile, destination tile, mode or grid
// changes, or when Replan is called after the obstacles were rebuilt.
type Planner struct {
	mu       sync.Mutex
	grid     *grid.Grid
	strategy NeighborStrategy

	from, to grid.Vec2
	hasDest  bool
	startIdx int
	goalIdx  int
	valid    bool
	result   Result
	searches int
}

// NewPlanner creates a planner over g using the given adjacency mode.
func NewPlanner(g *grid.Grid, mode Mode) *Planner {
	return &Planner{grid: g, strategy: StrategyFor(mode)}
}

// SetDestination returns the route from one world position to another,
// searching only if the tiles differ from the cached request.
func (p *Planner) SetDestination(ctx context.Context, from, to grid.Vec2) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.grid.TileAt(from)
	goal := p.grid.TileAt(to)
	p.from, p.to, p.hasDest = from, to, true
	if p.valid && p.grid.IndexOf(start) == p.startIdx && p.grid.IndexOf(goal) == p.goalIdx {
		return p.result, nil
	}
	return p.plan(ctx)
}

// Replan discards the cached route and searches again for the last destination.
// Use it after the grid's walkability was rebuilt.
func (p *Planner) Replan(ctx context.Context) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.valid = false
	if !p.hasDest {
		return Result{}, nil
	}
	return p.plan(ctx)
}

// SetGrid swaps the grid, for example after a level reload, and drops the cache.
func (p *Planner) SetGrid(g *grid.Grid) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grid = g
	p.valid = false
}

// SetMode changes the adjacency mode and drops the cache.
func (p *Planner) SetMode(m Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.strategy.Mode() != m {
		p.strategy = StrategyFor(m)
		p.valid = false
	}
}

// Mode returns the active adjacency mode.
func (p *Planner) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.strategy.Mode()
}

// Path returns the cached route and whether one is available.
func (p *Planner) Path() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.valid
}

// Searches returns how many searches the planner has run.
func (p *Planner) Searches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searches
}

func (p *Planner) plan(ctx context.Context) (Result, error) {
	start := p.grid.TileAt(p.from)
	goal := p.grid.TileAt(p.to)

	p.searches++
	res, err := findPath(ctx, p.grid, start, goal, p.strategy)
	if err != nil {
		p.valid = false
		return Result{}, err
	}
	p.startIdx = p.grid.IndexOf(start)
	p.goalIdx = p.grid.IndexOf(goal)
	p.result = res
	p.valid = true
	return res, nil
}
