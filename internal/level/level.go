// Package level loads tilemap levels and turns them into navigation grids.
package level

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilenav/internal/grid"
	"github.com/samdwyer/tilenav/internal/telemetry"
)

// DefaultRadius is the walkability probe radius used when a level sets none.
const DefaultRadius = 0.4

// WallRune marks an obstacle tile in Def.Rows.
const WallRune = '#'

// Rect is an axis-aligned obstacle in world space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Def defines a level loaded from JSON.
//
// Rows are read top to bottom: Rows[r][c] covers the tile whose origin is
// (Start.X + c, Start.Y + r). Obstacles add free-form rectangles on top.
type Def struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Start     [2]float64 `json:"start"`  // tilemapStart, origin of the first tile
	End       [2]float64 `json:"end"`    // tilemapEnd, origin of the last tile
	Radius    float64    `json:"radius"` // Probe radius, 0 means DefaultRadius
	Spawn     [2]float64 `json:"spawn"`
	Rows      []string   `json:"rows"`
	Obstacles []Rect     `json:"obstacles"`
}

// ErrInvalidLevel is wrapped by every Validate failure.
var ErrInvalidLevel = errors.New("invalid level")

// Bounds returns the grid bounds of the level.
func (d *Def) Bounds() grid.Bounds {
	return grid.Bounds{
		Min: grid.Vec2{X: d.Start[0], Y: d.Start[1]},
		Max: grid.Vec2{X: d.End[0], Y: d.End[1]},
	}
}

// SpawnPos returns the spawn point as a world position.
func (d *Def) SpawnPos() grid.Vec2 {
	return grid.Vec2{X: d.Spawn[0], Y: d.Spawn[1]}
}

// ProbeRadius returns the radius used for walkability checks.
func (d *Def) ProbeRadius() float64 {
	if d.Radius <= 0 {
		return DefaultRadius
	}
	return d.Radius
}

// Validate checks that the layout fits the level bounds.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if d.Radius < 0 {
		return fmt.Errorf("%w %s: negative radius %g", ErrInvalidLevel, d.ID, d.Radius)
	}
	width, height := d.Bounds().Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w %s: end (%g,%g) before start (%g,%g)",
			ErrInvalidLevel, d.ID, d.End[0], d.End[1], d.Start[0], d.Start[1])
	}
	if len(d.Rows) > height {
		return fmt.Errorf("%w %s: %d rows exceed height %d", ErrInvalidLevel, d.ID, len(d.Rows), height)
	}
	for i, row := range d.Rows {
		if len(row) > width {
			return fmt.Errorf("%w %s: row %d has %d tiles, width is %d", ErrInvalidLevel, d.ID, i, len(row), width)
		}
	}
	for i, r := range d.Obstacles {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("%w %s: obstacle %d has empty size", ErrInvalidLevel, d.ID, i)
		}
	}
	return nil
}

// ObstacleRects returns every obstacle of the level in world space.
// Runs of wall tiles are merged into as few rectangles as possible.
func (d *Def) ObstacleRects() []Rect {
	rects := mergeWallRows(d.Rows, d.Start[0], d.Start[1])
	return append(rects, d.Obstacles...)
}

// BuildGrid creates the navigation grid for the level, probing walkability
// against the level's obstacle geometry.
func (d *Def) BuildGrid(ctx context.Context) (*grid.Grid, *Space, error) {
	tracer := telemetry.Tracer("level")
	_, span := tracer.Start(ctx, "level.build_grid")
	defer span.End()

	if err := d.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, nil, err
	}

	space := NewSpace(d.ObstacleRects(), d.ProbeRadius())
	g, err := grid.Build(d.Bounds(), space.IsWalkable)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, nil, fmt.Errorf("level %s: %w", d.ID, err)
	}

	span.SetAttributes(
		attribute.String("level.id", d.ID),
		attribute.Int("level.width", g.Width),
		attribute.Int("level.height", g.Height),
		attribute.Int("level.obstacles", space.ShapeCount()),
		attribute.Int("level.walls", len(g.Walls())),
	)
	return g, space, nil
}

// mergeWallRows greedily covers wall tiles with rectangles, widest run first.
func mergeWallRows(rows []string, originX, originY float64) []Rect {
	processed := make([][]bool, len(rows))
	for y := range rows {
		processed[y] = make([]bool, len(rows[y]))
	}
	isWall := func(x, y int) bool {
		return y < len(rows) && x < len(rows[y]) && rows[y][x] == WallRune && !processed[y][x]
	}

	var rects []Rect
	for y := range rows {
		for x := 0; x < len(rows[y]); x++ {
			if !isWall(x, y) {
				continue
			}

			w := 1
			for isWall(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < len(rows) {
				for xi := x; xi < x+w; xi++ {
					if !isWall(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy][xx] = true
				}
			}
			rects = append(rects, Rect{
				X: originX + float64(x),
				Y: originY + float64(y),
				W: float64(w),
				H: float64(h),
			})
		}
	}
	return rects
}
