package raster

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// ErrUnsupportedShape is returned for shape kinds that have no rasterization.
var ErrUnsupportedShape = errors.New("unsupported shape")

// UnsupportedShapeError reports which shape kind could not be rasterized.
// It matches ErrUnsupportedShape with errors.Is.
type UnsupportedShapeError struct {
	Kind geometry.ShapeKind
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedShape, e.Kind)
}

func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}
