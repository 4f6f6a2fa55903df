package field

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// ErrCoordinateOutOfBounds is returned when a rasterized cell lies outside
// the grid.
var ErrCoordinateOutOfBounds = errors.New("coordinate out of bounds")

// BoundsError reports a cell of a shape that lies outside the grid. For a
// circle whose origin is off the grid the origin itself is reported.
type BoundsError struct {
	Point geometry.Point
	Size  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s not within %dx%d grid", ErrCoordinateOutOfBounds, e.Point, e.Size, e.Size)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrCoordinateOutOfBounds
}

// PlacementError describes why a placement was abandoned.
// Index is the position of the failing shape in the input.
type PlacementError struct {
	Index int
	Shape geometry.Shape
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placing shape %d (%v): %v", e.Index, e.Shape, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}
