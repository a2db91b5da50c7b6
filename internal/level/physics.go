package level

import (
	"github.com/jakecoffman/cp"

	"github.com/samdwyer/tilenav/internal/grid"
)

// Space holds static obstacle geometry and answers overlap queries against it.
type Space struct {
	space  *cp.Space
	radius float64
	shapes int
}

// NewSpace creates a physics space with one static box per obstacle rectangle.
func NewSpace(rects []Rect, radius float64) *Space {
	space := cp.NewSpace()
	for _, r := range rects {
		bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		space.AddShape(shape)
	}
	return &Space{space: space, radius: radius, shapes: len(rects)}
}

// IsWalkable reports whether a circle of the probe radius centred at pos
// is free of obstacles.
func (s *Space) IsWalkable(pos grid.Vec2) bool {
	info := s.space.PointQueryNearest(cp.Vector{X: pos.X, Y: pos.Y}, s.radius, cp.SHAPE_FILTER_ALL)
	return info.Shape == nil
}

// ShapeCount returns the number of obstacle shapes in the space.
func (s *Space) ShapeCount() int {
	return s.shapes
}
