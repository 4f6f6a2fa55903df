// Package scenario describes a field layout to solve: the grid size, the
// ordered conductor shapes and the voltage of each pin.
//
// Scenarios are read from two file formats:
//
//   - a line-oriented text format (.fld), parsed with participle
//   - an s-expression format (.fsx, .sexp) in the style of KiCad files
//
// Shape order matters: the n-th shape becomes pin n when the scenario is
// placed with a fresh allocator.
package scenario

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// Scenario is a layout plus its pin voltages.
type Scenario struct {
	Name     string
	GridSize int // 0 when the file does not set one
	Shapes   []geometry.Shape
	Voltages field.VoltageMap
}

// Format identifies a scenario file syntax.
type Format int

const (
	FormatText Format = iota
	FormatSexp
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatSexp:
		return "sexp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks the format from a file extension. Unknown extensions
// are read as text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fsx", ".sexp", ".sx":
		return FormatSexp
	default:
		return FormatText
	}
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer file.Close()

	sc, err := Parse(file, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse reads a scenario in the given format.
func Parse(r io.Reader, format Format) (*Scenario, error) {
	switch format {
	case FormatText:
		p, err := NewParser()
		if err != nil {
			return nil, err
		}
		return p.Parse(r)
	case FormatSexp:
		return ParseSexp(r)
	default:
		return nil, fmt.Errorf("unknown scenario format %s", format)
	}
}

// Size returns the grid size to use: the scenario's own, or fallback.
func (s *Scenario) Size(fallback int) int {
	if s.GridSize > 0 {
		return s.GridSize
	}
	return fallback
}

// Build places the shapes on a grid of Size(fallback) with a fresh pin
// allocator and applies the voltages.
func (s *Scenario) Build(fallback int) (*field.Grid, error) {
	g, err := field.Place(s.Size(fallback), field.NewPinAllocator(), s.Shapes)
	if err != nil {
		return nil, err
	}
	field.ApplyVoltages(g, s.Voltages)
	return g, nil
}

// Default returns the built-in layout: a frame of four lines at -80 around
// a cross of two lines at +80 on a 100x100 grid.
func Default() *Scenario {
	line := func(x1, y1, x2, y2 int) geometry.Shape {
		return geometry.Line{P1: geometry.Pt(x1, y1), P2: geometry.Pt(x2, y2)}
	}
	return &Scenario{
		Name:     "default",
		GridSize: field.DefaultSize,
		Shapes: []geometry.Shape{
			line(2, 2, 2, 97),
			line(97, 2, 97, 97),
			line(3, 2, 96, 2),
			line(3, 97, 96, 97),
			line(30, 50, 70, 50),
			line(50, 30, 50, 70),
		},
		Voltages: field.VoltageMap{
			0: -80, 1: -80, 2: -80, 3: -80,
			4: 80, 5: 80,
		},
	}
}
