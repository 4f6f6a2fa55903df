package render

import (
	"encoding/json"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/solver"
)

// ExportJSON exports a solved grid. Potentials are indexed [x][y]; Metal
// cells are null. res may be nil for a grid that was never solved.
func ExportJSON(name string, g *field.Grid, res *solver.Result) ([]byte, error) {
	size := g.Size()
	potentials := make([][]*int, size)
	for x := 0; x < size; x++ {
		potentials[x] = make([]*int, size)
		for y := 0; y < size; y++ {
			c := g.Cell(x, y)
			if c.IsMetal() {
				continue
			}
			p := c.Potential
			potentials[x][y] = &p
		}
	}

	output := struct {
		Version        string        `json:"version"`
		Name           string        `json:"name,omitempty"`
		Size           int           `json:"size"`
		ConductorCount int           `json:"conductor_count"`
		Precision      string        `json:"precision,omitempty"`
		Stats          *solver.Stats `json:"stats,omitempty"`
		Pins           []PinInfo     `json:"pins"`
		Potentials     [][]*int      `json:"potentials"`
	}{
		Version:        "1.0",
		Name:           name,
		Size:           size,
		ConductorCount: g.ConductorCount(),
		Pins:           Pins(g),
		Potentials:     potentials,
	}
	if res != nil {
		st := res.Stats()
		output.Precision = res.Precision.String()
		output.Stats = &st
	}

	return json.MarshalIndent(output, "", "  ")
}
