// Package field holds the grid model of a field layout: the cell states,
// the placement of conductor shapes onto cells, pin allocation and the
// assignment of voltages to pins.
//
// A Grid is built once by Place, receives voltages through ApplyVoltages and
// potentials from the solver package, and is then only read.
package field

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// DefaultSize is the side length of the built-in grid.
const DefaultSize = 100

// MaxSize is the largest accepted side length (16M cells).
const MaxSize = 4096

// ErrInvalidSize is returned for a grid side length outside 1..MaxSize.
var ErrInvalidSize = errors.New("invalid grid size")

// CellKind tells Air and Metal cells apart.
type CellKind uint8

const (
	Air CellKind = iota
	Metal
)

func (k CellKind) String() string {
	switch k {
	case Air:
		return "air"
	case Metal:
		return "metal"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell is the state of one grid cell.
//
// Potential is meaningful only for Air cells; Voltage, Pin and HasPin only
// for Metal cells.
type Cell struct {
	Kind      CellKind
	Potential int
	Voltage   int
	Pin       PinID
	HasPin    bool
}

// AirCell returns an Air cell holding potential.
func AirCell(potential int) Cell {
	return Cell{Kind: Air, Potential: potential}
}

// MetalCell returns a Metal cell tied to pin.
func MetalCell(voltage int, pin PinID) Cell {
	return Cell{Kind: Metal, Voltage: voltage, Pin: pin, HasPin: true}
}

// IsMetal reports whether the cell is part of a conductor.
func (c Cell) IsMetal() bool {
	return c.Kind == Metal
}

// MetalSource is a conductor cell as seen by the solver.
type MetalSource struct {
	Point   geometry.Point
	Voltage int
	Pin     PinID
}

// Grid is a square array of cells plus the bookkeeping of placed conductors.
// Its size never changes after construction.
type Grid struct {
	size  int
	cells []Cell // indexed x*size + y

	conductorCount int
	conductors     []geometry.Point
	shapes         []geometry.Shape
	pins           []PinID
}

// NewGrid creates a size x size grid of Air cells at potential 0.
func NewGrid(size int) (*Grid, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, size, MaxSize)
	}
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p geometry.Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

func (g *Grid) index(p geometry.Point) int {
	return p.X*g.size + p.Y
}

// At returns the cell at p. It panics if p is out of bounds, like indexing a
// slice would.
func (g *Grid) At(p geometry.Point) Cell {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("field: %s outside %dx%d grid", p, g.size, g.size))
	}
	return g.cells[g.index(p)]
}

// Cell returns the cell at column x, row y.
func (g *Grid) Cell(x, y int) Cell {
	return g.At(geometry.Point{X: x, Y: y})
}

// Set overwrites the cell at p.
func (g *Grid) Set(p geometry.Point, c Cell) error {
	if !g.InBounds(p) {
		return &BoundsError{Point: p, Size: g.size}
	}
	g.cells[g.index(p)] = c
	return nil
}

// Cells returns a copy of all cells, indexed x*Size()+y.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// ConductorCount returns the number of shapes placed on the grid.
func (g *Grid) ConductorCount() int {
	return g.conductorCount
}

// Conductors returns every rasterized conductor coordinate in placement
// order. Coordinates shared by overlapping shapes appear more than once.
func (g *Grid) Conductors() []geometry.Point {
	out := make([]geometry.Point, len(g.conductors))
	copy(out, g.conductors)
	return out
}

// Shapes returns the placed shapes in placement order.
func (g *Grid) Shapes() []geometry.Shape {
	out := make([]geometry.Shape, len(g.shapes))
	copy(out, g.shapes)
	return out
}

// Pins returns the pin of each placed shape, in placement order.
func (g *Grid) Pins() []PinID {
	out := make([]PinID, len(g.pins))
	copy(out, g.pins)
	return out
}

// PinCells counts the Metal cells currently owned by pin.
func (g *Grid) PinCells(pin PinID) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == Metal && c.HasPin && c.Pin == pin {
			n++
		}
	}
	return n
}

// PinVoltage returns the voltage held by the cells of pin. The second result
// is false when no cell is owned by pin any more.
func (g *Grid) PinVoltage(pin PinID) (int, bool) {
	for _, c := range g.cells {
		if c.Kind == Metal && c.HasPin && c.Pin == pin {
			return c.Voltage, true
		}
	}
	return 0, false
}

// MetalSources returns a snapshot of all Metal cells in row-major order.
// Each cell appears once regardless of how many shapes covered it.
func (g *Grid) MetalSources() []MetalSource {
	var sources []MetalSource
	for i, c := range g.cells {
		if c.Kind != Metal {
			continue
		}
		sources = append(sources, MetalSource{
			Point:   geometry.Point{X: i / g.size, Y: i % g.size},
			Voltage: c.Voltage,
			Pin:     c.Pin,
		})
	}
	return sources
}

// AirCount returns the number of Air cells.
func (g *Grid) AirCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == Air {
			n++
		}
	}
	return n
}

// ReplacePotentials stores potentials, indexed like Cells, into every Air
// cell in one pass. Metal cells are left untouched.
func (g *Grid) ReplacePotentials(potentials []int) error {
	if len(potentials) != len(g.cells) {
		return fmt.Errorf("potential buffer holds %d values, grid has %d cells", len(potentials), len(g.cells))
	}
	for i := range g.cells {
		if g.cells[i].Kind == Air {
			g.cells[i].Potential = potentials[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:           g.size,
		cells:          g.Cells(),
		conductorCount: g.conductorCount,
		conductors:     g.Conductors(),
		shapes:         g.Shapes(),
		pins:           g.Pins(),
	}
}
