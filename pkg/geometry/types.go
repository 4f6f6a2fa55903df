// Package geometry provides the integer grid coordinates and conductor shape
// primitives used to describe a field layout.
package geometry

import (
	"fmt"
	"math"
)

// Point represents a cell coordinate on the grid.
// X selects the column and Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the offset from other to p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}

// Adjacent reports whether two points are 8-neighbours (or identical).
func (p Point) Adjacent(other Point) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ShapeKind identifies a conductor primitive.
type ShapeKind int

const (
	KindLine ShapeKind = iota
	KindCircle
	KindHalfCircle
	KindSquare
)

func (k ShapeKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindHalfCircle:
		return "halfcircle"
	case KindSquare:
		return "square"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a conductor primitive. The set of implementations is closed:
// Line, Circle, HalfCircle and Square.
type Shape interface {
	Kind() ShapeKind
	String() string
	shape()
}

// Line is a straight conductor segment between two cells, both inclusive.
type Line struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Circle is a circular conductor outline.
type Circle struct {
	Origin Point `json:"origin"`
	Radius uint  `json:"radius"`
}

// HalfCircle is a half-circle outline rotated by Angle degrees.
// It has no rasterization yet.
type HalfCircle struct {
	Origin Point   `json:"origin"`
	Radius uint    `json:"radius"`
	Angle  float64 `json:"angle"`
}

// Square is a closed quadrilateral outline. It has no rasterization yet.
type Square struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
	P3 Point `json:"p3"`
	P4 Point `json:"p4"`
}

func (Line) Kind() ShapeKind       { return KindLine }
func (Circle) Kind() ShapeKind     { return KindCircle }
func (HalfCircle) Kind() ShapeKind { return KindHalfCircle }
func (Square) Kind() ShapeKind     { return KindSquare }

func (Line) shape()       {}
func (Circle) shape()     {}
func (HalfCircle) shape() {}
func (Square) shape()     {}

func (l Line) String() string {
	return fmt.Sprintf("line %s-%s", l.P1, l.P2)
}

func (c Circle) String() string {
	return fmt.Sprintf("circle %s r=%d", c.Origin, c.Radius)
}

func (h HalfCircle) String() string {
	return fmt.Sprintf("halfcircle %s r=%d angle=%g", h.Origin, h.Radius, h.Angle)
}

func (s Square) String() string {
	return fmt.Sprintf("square %s %s %s %s", s.P1, s.P2, s.P3, s.P4)
}
