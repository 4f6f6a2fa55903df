// Package render presents solved field grids: an ANSI terminal view, a PNG
// heatmap, a pin table and a JSON export. It only reads grids.
package render

import (
	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/raster"
)

// PinInfo summarises one placed conductor.
type PinInfo struct {
	Pin     field.PinID `json:"pin"`
	Shape   string      `json:"shape"`
	Voltage *int        `json:"voltage"` // nil when the pin lost all its cells
	Cells   int         `json:"cells"`   // rasterized cells
	Owned   int         `json:"owned"`   // cells still held after overlaps
}

// Pins lists the placed conductors of g in placement order.
func Pins(g *field.Grid) []PinInfo {
	shapes := g.Shapes()
	pins := g.Pins()

	infos := make([]PinInfo, 0, len(pins))
	for i, pin := range pins {
		info := PinInfo{
			Pin:   pin,
			Shape: shapes[i].String(),
			Owned: g.PinCells(pin),
		}
		if pts, err := raster.Rasterize(shapes[i]); err == nil {
			info.Cells = len(pts)
		}
		if v, ok := g.PinVoltage(pin); ok {
			info.Voltage = &v
		}
		infos = append(infos, info)
	}
	return infos
}
