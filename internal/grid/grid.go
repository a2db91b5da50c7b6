package grid

import (
	"log/slog"
	"math"
)

// WalkableFunc reports whether the tile centred at pos can be walked on.
type WalkableFunc func(pos Vec2) bool

// Grid owns every Tile of a tilemap.
// Tiles live in a flat slice indexed y*Width+x; the slice never changes
// after Build, so *Tile values stay valid for the lifetime of the grid.
type Grid struct {
	Width  int
	Height int
	bounds Bounds
	tiles  []Tile
}

// Build creates a grid covering bounds and marks walls with isWalkable.
// isWalkable is probed once per tile at the tile center.
func Build(bounds Bounds, isWalkable WalkableFunc) (*Grid, error) {
	if bounds.Max.X < bounds.Min.X {
		return nil, &InvalidBoundsError{Bounds: bounds, Axis: "x"}
	}
	if bounds.Max.Y < bounds.Min.Y {
		return nil, &InvalidBoundsError{Bounds: bounds, Axis: "y"}
	}

	width, height := bounds.Size()
	g := &Grid{
		Width:  width,
		Height: height,
		bounds: bounds,
		tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[g.Index(x, y)] = Tile{
				Pos: Vec2{X: bounds.Min.X + float64(x), Y: bounds.Min.Y + float64(y)},
				X:   x,
				Y:   y,
			}
		}
	}
	walls := g.Rebuild(isWalkable)

	slog.Debug("grid built", "width", width, "height", height, "walls", walls)
	return g, nil
}

// Rebuild re-probes walkability for every tile and returns the wall count.
// It must not run while a search over this grid is in progress.
func (g *Grid) Rebuild(isWalkable WalkableFunc) int {
	walls := 0
	for i := range g.tiles {
		t := &g.tiles[i]
		t.Wall = isWalkable != nil && !isWalkable(t.Center())
		if t.Wall {
			walls++
		}
	}
	return walls
}

// Bounds returns the world bounds the grid was built from.
func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// Len returns the number of tiles in the grid.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Index returns the linear index of (x, y). The caller must bounds-check.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds returns true if (x, y) addresses a tile.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at grid indices (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.tiles[g.Index(x, y)]
}

// TileByIndex returns the tile at linear index i.
func (g *Grid) TileByIndex(i int) *Tile {
	return &g.tiles[i]
}

// IndexOf returns the linear index of a tile owned by this grid.
func (g *Grid) IndexOf(t *Tile) int {
	return g.Index(t.X, t.Y)
}

// TileAt maps a world position to its tile.
// Positions outside the grid are clamped to the nearest edge tile.
func (g *Grid) TileAt(pos Vec2) *Tile {
	rel := pos.Sub(g.bounds.Min)
	x := clampCell(rel.X, g.Width)
	y := clampCell(rel.Y, g.Height)
	return &g.tiles[g.Index(x, y)]
}

// Walls returns the origin of every wall tile, for debug markers.
func (g *Grid) Walls() []Vec2 {
	var walls []Vec2
	for i := range g.tiles {
		if g.tiles[i].Wall {
			walls = append(walls, g.tiles[i].Pos)
		}
	}
	return walls
}

// clampCell floors v and clamps it into [0, n). Clamping happens before the
// int conversion so far-away and NaN positions stay well defined.
func clampCell(v float64, n int) int {
	v = math.Floor(v)
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > float64(n-1):
		return n - 1
	}
	return int(v)
}
