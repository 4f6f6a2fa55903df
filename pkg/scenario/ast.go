package scenario

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// TextFile is the parse tree of a .fld file.
type TextFile struct {
	Statements []*Statement `@@*`
}

// Statement is one line of a scenario file.
type Statement struct {
	Pos lexer.Position

	Name       *string         `  "name" @String`
	Grid       *int            `| "grid" @Int`
	Line       *LineStmt       `| @@`
	Circle     *CircleStmt     `| @@`
	HalfCircle *HalfCircleStmt `| @@`
	Square     *SquareStmt     `| @@`
	Voltage    *VoltageStmt    `| @@`
}

// PointLit is a coordinate literal.
// Example: (30, 10)
type PointLit struct {
	X int `"(" @Int ","`
	Y int `@Int ")"`
}

// LineStmt example: line (0, 0) (99, 99)
type LineStmt struct {
	P1 PointLit `"line" @@`
	P2 PointLit `@@`
}

// CircleStmt example: circle (30, 10) 5
type CircleStmt struct {
	Origin PointLit `"circle" @@`
	Radius int      `@Int`
}

// HalfCircleStmt example: halfcircle (10, 10) 4 90
type HalfCircleStmt struct {
	Origin PointLit `"halfcircle" @@`
	Radius int      `@Int`
	Angle  float64  `@( Float | Int )`
}

// SquareStmt example: square (1, 1) (1, 5) (5, 5) (5, 1)
type SquareStmt struct {
	P1 PointLit `"square" @@`
	P2 PointLit `@@`
	P3 PointLit `@@`
	P4 PointLit `@@`
}

// VoltageStmt assigns a voltage to a pin.
// Example: voltage 0 = -80
type VoltageStmt struct {
	Pin   int `"voltage" @Int ( "=" | ":" )?`
	Value int `@Int`
}

func (p PointLit) point() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}
