package field

import (
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceField/pkg/raster"
)

// Place stamps shapes onto a fresh size x size grid, in input order.
//
// Each shape gets one pin from alloc and all of its cells become Metal at
// voltage 0 with that pin. A cell covered by several shapes belongs to the
// last one. Placement is all or nothing: the first shape that cannot be
// rasterized or leaves the grid aborts the whole operation with a
// *PlacementError and no grid is returned.
//
// A nil alloc is replaced by a new allocator.
func Place(size int, alloc *PinAllocator, shapes []geometry.Shape) (*Grid, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = NewPinAllocator()
	}

	for i, shape := range shapes {
		// Reject far-out shapes before rasterizing allocates their cells
		if err := checkExtent(shape, size); err != nil {
			return nil, &PlacementError{Index: i, Shape: shape, Err: err}
		}

		points, err := raster.Rasterize(shape)
		if err != nil {
			return nil, &PlacementError{Index: i, Shape: shape, Err: err}
		}

		// Reject the shape before touching any cell
		for _, p := range points {
			if !g.InBounds(p) {
				return nil, &PlacementError{Index: i, Shape: shape, Err: &BoundsError{Point: p, Size: size}}
			}
		}

		pin := alloc.Allocate()
		for _, p := range points {
			g.cells[g.index(p)] = MetalCell(0, pin)
		}

		g.conductors = append(g.conductors, points...)
		g.shapes = append(g.shapes, shape)
		g.pins = append(g.pins, pin)
		g.conductorCount++
	}

	return g, nil
}

// PlaceShapes is Place with a fresh allocator, so pins run 0..len(shapes)-1.
func PlaceShapes(size int, shapes ...geometry.Shape) (*Grid, error) {
	return Place(size, NewPinAllocator(), shapes)
}

// checkExtent verifies that the extreme cells of a line or circle lie on a
// size x size grid. Other shapes are left to the rasterizer.
func checkExtent(shape geometry.Shape, size int) error {
	inBounds := func(p geometry.Point) bool {
		return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
	}

	switch s := shape.(type) {
	case geometry.Line:
		for _, p := range []geometry.Point{s.P1, s.P2} {
			if !inBounds(p) {
				return &BoundsError{Point: p, Size: size}
			}
		}

	case geometry.Circle:
		o := s.Origin
		if !inBounds(o) {
			return &BoundsError{Point: o, Size: size}
		}
		if s.Radius >= uint(size) {
			return &BoundsError{Point: geometry.Point{X: o.X - size, Y: o.Y}, Size: size}
		}
		r := int(s.Radius)
		for _, p := range []geometry.Point{
			{X: o.X + r, Y: o.Y}, {X: o.X - r, Y: o.Y},
			{X: o.X, Y: o.Y + r}, {X: o.X, Y: o.Y - r},
		} {
			if !inBounds(p) {
				return &BoundsError{Point: p, Size: size}
			}
		}
	}
	return nil
}
