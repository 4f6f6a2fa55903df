// Package raster converts conductor shapes into ordered sequences of grid
// cells.
//
// Lines use Bresenham's algorithm and circles the midpoint circle algorithm,
// both in pure integer arithmetic. The rasterizer knows nothing about grid
// bounds: coordinates may be negative or beyond any grid and it is up to the
// caller to reject them.
package raster

import (
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// Rasterize returns the cells approximating shape.
// HalfCircle and Square have no rasterization and fail with an
// *UnsupportedShapeError.
func Rasterize(shape geometry.Shape) ([]geometry.Point, error) {
	switch s := shape.(type) {
	case geometry.Line:
		return Line(s.P1, s.P2), nil
	case geometry.Circle:
		return Circle(s.Origin, s.Radius), nil
	case nil:
		return nil, &UnsupportedShapeError{Kind: -1}
	default:
		return nil, &UnsupportedShapeError{Kind: shape.Kind()}
	}
}

// Line returns the 8-connected path from p1 to p2, endpoints included.
// The walk is monotonic along the dominant axis, so the result holds
// max(|dx|, |dy|)+1 cells.
func Line(p1, p2 geometry.Point) []geometry.Point {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx, sy := sign(p2.X-p1.X), sign(p2.Y-p1.Y)

	n := dx
	if -dy > n {
		n = -dy
	}
	points := make([]geometry.Point, 0, n+1)

	x, y := p1.X, p1.Y
	e := dx + dy
	for {
		points = append(points, geometry.Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	return points
}

// Circle returns the outline of a circle around origin. Every offset the
// midpoint walk generates in the first octant is emitted with all eight of
// its reflections, so cells on the octant borders appear more than once.
// A zero radius yields origin alone.
func Circle(origin geometry.Point, radius uint) []geometry.Point {
	if radius == 0 {
		return []geometry.Point{origin}
	}

	r := int(radius)
	points := make([]geometry.Point, 0, 8*(r+1))

	x, y := r, 0
	d := 1 - r
	for x >= y {
		points = append(points,
			origin.Add(geometry.Pt(x, y)),
			origin.Add(geometry.Pt(y, x)),
			origin.Add(geometry.Pt(-y, x)),
			origin.Add(geometry.Pt(-x, y)),
			origin.Add(geometry.Pt(-x, -y)),
			origin.Add(geometry.Pt(-y, -x)),
			origin.Add(geometry.Pt(y, -x)),
			origin.Add(geometry.Pt(x, -y)),
		)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
