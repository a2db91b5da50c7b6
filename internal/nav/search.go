package nav

import (
	"container/heap"
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/telemetry"
)

// State is the lifecycle of a single search.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateFound
	StateNotFound
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

const noParent = -1

type setMembership uint8

const (
	unseen setMembership = iota
	inOpen
	inClosed
)

// node holds the per-search fields of one tile. Nodes live in an arena
// parallel to the grid's tiles, so the grid itself is never written to.
type node struct {
	costFromStart   int
	heuristicToGoal int
	parent          int
	seq             int // insertion order into the open set
	heapIndex       int
	set             setMembership
}

func (n *node) totalCost() int {
	return n.costFromStart + n.heuristicToGoal
}

// Outcome is the finished state of a search.
type Outcome struct {
	State    State
	Start    int // Linear index of the start tile
	Goal     int // Linear index of the goal tile, or -1 if not found
	Cost     int // Cost from start to goal when found
	Expanded int // Number of tiles moved to the closed set

	nodes  []node
	closed []int
}

// Found returns true if the goal was reached.
func (o *Outcome) Found() bool {
	return o.State == StateFound
}

// Parent returns the linear index of the predecessor of tile i, or -1.
func (o *Outcome) Parent(i int) int {
	return o.nodes[i].parent
}

// Closed returns the linear indices of closed tiles in the order they were closed.
func (o *Outcome) Closed() []int {
	return o.closed
}

// Search runs A* from start to goal over g.
// The open tile with the lowest total cost is expanded first; ties go to the
// lower heuristic and then to the tile that entered the open set first.
// An unreachable goal yields StateNotFound and a nil error. Cancelling ctx
// aborts between iterations with ctx.Err().
func Search(ctx context.Context, g *grid.Grid, start, goal *grid.Tile, strategy NeighborStrategy) (*Outcome, error) {
	tracer := telemetry.Tracer("nav")
	ctx, span := tracer.Start(ctx, "nav.search")
	defer span.End()

	s := newSearch(g, start, goal, strategy)
	err := s.run(ctx)

	span.SetAttributes(
		attribute.String("nav.mode", strategy.Mode().String()),
		attribute.Int("nav.grid_tiles", g.Len()),
		attribute.Int("nav.expanded", s.out.Expanded),
		attribute.String("nav.state", s.out.State.String()),
		attribute.Int("nav.cost", s.out.Cost),
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.out, nil
}

type search struct {
	grid     *grid.Grid
	goal     *grid.Tile
	strategy NeighborStrategy
	nodes    []node
	open     openSet
	nextSeq  int
	out      *Outcome
}

func newSearch(g *grid.Grid, start, goal *grid.Tile, strategy NeighborStrategy) *search {
	nodes := make([]node, g.Len())
	for i := range nodes {
		nodes[i].parent = noParent
		nodes[i].heapIndex = -1
	}
	s := &search{
		grid:     g,
		goal:     goal,
		strategy: strategy,
		nodes:    nodes,
		out: &Outcome{
			State: StateIdle,
			Start: g.IndexOf(start),
			Goal:  noParent,
			nodes: nodes,
		},
	}
	s.open.nodes = nodes
	return s
}

func (s *search) run(ctx context.Context) error {
	s.out.State = StateSearching

	start := s.out.Start
	goal := s.grid.IndexOf(s.goal)
	s.nodes[start].heuristicToGoal = Heuristic(s.grid.TileByIndex(start), s.goal)
	s.push(start)

	var neighbors []*grid.Tile
	for s.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := heap.Pop(&s.open).(int)
		cur := &s.nodes[current]
		cur.set = inClosed
		s.out.closed = append(s.out.closed, current)
		s.out.Expanded++

		if current == goal {
			s.out.State = StateFound
			s.out.Goal = current
			s.out.Cost = cur.costFromStart
			return nil
		}

		curTile := s.grid.TileByIndex(current)
		neighbors = s.strategy.Neighbors(s.grid, curTile, neighbors[:0])
		for _, nb := range neighbors {
			if nb.Wall {
				continue
			}
			i := s.grid.IndexOf(nb)
			n := &s.nodes[i]
			if n.set == inClosed {
				continue
			}

			tentative := cur.costFromStart + StepCost(curTile, nb)
			if tentative < n.costFromStart || n.set != inOpen {
				n.costFromStart = tentative
				n.heuristicToGoal = Heuristic(nb, s.goal)
				n.parent = current
				if n.set == inOpen {
					heap.Fix(&s.open, n.heapIndex)
				} else {
					s.push(i)
				}
			}
		}
	}

	s.out.State = StateNotFound
	return nil
}

func (s *search) push(i int) {
	n := &s.nodes[i]
	n.set = inOpen
	n.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.open, i)
}

// openSet is a min-heap of node indices keyed on (total, heuristic, seq).
type openSet struct {
	nodes []node
	items []int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a, b := &o.nodes[o.items[i]], &o.nodes[o.items[j]]
	if fa, fb := a.totalCost(), b.totalCost(); fa != fb {
		return fa < fb
	}
	if a.heuristicToGoal != b.heuristicToGoal {
		return a.heuristicToGoal < b.heuristicToGoal
	}
	return a.seq < b.seq
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.nodes[o.items[i]].heapIndex = i
	o.nodes[o.items[j]].heapIndex = j
}

func (o *openSet) Push(x any) {
	i := x.(int)
	o.nodes[i].heapIndex = len(o.items)
	o.items = append(o.items, i)
}

func (o *openSet) Pop() any {
	old := o.items
	n := len(old)
	i := old[n-1]
	o.nodes[i].heapIndex = -1
	o.items = old[:n-1]
	return i
}
