package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/tilenav/internal/grid"
)

// Mode selects the adjacency used when expanding tiles.
type Mode int

const (
	// Orthogonal allows the four axis-aligned moves.
	Orthogonal Mode = iota
	// Diagonal allows all eight surrounding moves.
	Diagonal
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown adjacency mode")

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case Orthogonal:
		return "orthogonal"
	case Diagonal:
		return "diagonal"
	default:
		return "unknown"
	}
}

// Toggle returns the other adjacency mode.
func (m Mode) Toggle() Mode {
	if m == Diagonal {
		return Orthogonal
	}
	return Diagonal
}

// ParseMode converts a configuration name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthogonal", "vertical", "4", "4-way":
		return Orthogonal, nil
	case "diagonal", "8", "8-way":
		return Diagonal, nil
	default:
		return Orthogonal, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// NeighborStrategy enumerates the in-bounds tiles adjacent to a tile.
// Implementations are purely geometric and never filter walls.
type NeighborStrategy interface {
	// Neighbors appends the neighbors of t to dst and returns it.
	Neighbors(g *grid.Grid, t *grid.Tile, dst []*grid.Tile) []*grid.Tile
	Mode() Mode
}

// StrategyFor returns the neighbor strategy for a mode.
func StrategyFor(m Mode) NeighborStrategy {
	if m == Diagonal {
		return diagonalNeighbors{}
	}
	return orthogonalNeighbors{}
}

type orthogonalNeighbors struct{}

// orthogonalOffsets is the expansion order: +x, -x, +y, -y.
var orthogonalOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func (orthogonalNeighbors) Neighbors(g *grid.Grid, t *grid.Tile, dst []*grid.Tile) []*grid.Tile {
	for _, d := range orthogonalOffsets {
		if n := g.At(t.X+d[0], t.Y+d[1]); n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

func (orthogonalNeighbors) Mode() Mode { return Orthogonal }

type diagonalNeighbors struct{}

func (diagonalNeighbors) Neighbors(g *grid.Grid, t *grid.Tile, dst []*grid.Tile) []*grid.Tile {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := g.At(t.X+dx, t.Y+dy); n != nil {
				dst = append(dst, n)
			}
		}
	}
	return dst
}

func (diagonalNeighbors) Mode() Mode { return Diagonal }

// IsNeighbor reports whether a and b are adjacent under mode m.
func IsNeighbor(m Mode, a, b *grid.Tile) bool {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > 1 || dy > 1 || dx+dy == 0 {
		return false
	}
	return m == Diagonal || dx+dy == 1
}
