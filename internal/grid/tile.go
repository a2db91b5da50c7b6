// Package grid provides the navigation tile grid and world/grid coordinate mapping.
package grid

import "math"

// Vec2 is a position in world space.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Bounds holds the inclusive corners of a tilemap in world space.
type Bounds struct {
	Min Vec2 // Origin corner of the first tile (tilemapStart)
	Max Vec2 // Origin corner of the last tile (tilemapEnd)
}

// Size returns the number of tiles along each axis.
func (b Bounds) Size() (width, height int) {
	width = int(math.Round(b.Max.X - b.Min.X + 1))
	height = int(math.Round(b.Max.Y - b.Min.Y + 1))
	return width, height
}

// Tile is one cell of the navigation grid.
type Tile struct {
	Wall bool // Static walkability, fixed when the grid is built
	Pos  Vec2 // World position of the tile's origin corner
	X, Y int  // Indices into the grid
}

// halfTile offsets a tile origin to its center.
var halfTile = Vec2{X: 0.5, Y: 0.5}

// Center returns the world position of the middle of the tile.
func (t *Tile) Center() Vec2 {
	return t.Pos.Add(halfTile)
}
