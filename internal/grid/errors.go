package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is matched by every InvalidBoundsError.
var ErrInvalidBounds = errors.New("invalid grid bounds")

// InvalidBoundsError reports a degenerate or inverted tilemap.
type InvalidBoundsError struct {
	Bounds Bounds
	Axis   string
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("invalid grid bounds: %s end (%g,%g) is before start (%g,%g)",
		e.Axis, e.Bounds.Max.X, e.Bounds.Max.Y, e.Bounds.Min.X, e.Bounds.Min.Y)
}

// Is lets errors.Is match ErrInvalidBounds.
func (e *InvalidBoundsError) Is(target error) bool {
	return target == ErrInvalidBounds
}
