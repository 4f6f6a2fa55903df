package render

import (
	"bufio"
	"io"
	"math"

	"github.com/gookit/color"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
)

// ramp shades Air cells from weakest to strongest potential.
const ramp = " .:-=+*%@"

// TextOptions controls the terminal view.
type TextOptions struct {
	Color bool
	// Step samples every Step-th cell in both directions. Values below 1 mean 1.
	Step int
}

// Text writes one character per cell, one grid row (fixed y) per line.
// Metal cells are drawn as '#', red for positive and blue for negative
// voltage. Air cells use a character ramp scaled to the largest absolute
// potential on the grid.
func Text(w io.Writer, g *field.Grid, opts TextOptions) error {
	step := opts.Step
	if step < 1 {
		step = 1
	}
	peak := peakPotential(g)

	bw := bufio.NewWriter(w)
	for y := 0; y < g.Size(); y += step {
		for x := 0; x < g.Size(); x += step {
			bw.WriteString(glyph(g.Cell(x, y), peak, opts.Color))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func glyph(c field.Cell, peak int, useColor bool) string {
	if c.IsMetal() {
		if !useColor {
			return "#"
		}
		switch {
		case c.Voltage > 0:
			return color.RGB(230, 60, 50).Sprint("#")
		case c.Voltage < 0:
			return color.RGB(60, 110, 230).Sprint("#")
		default:
			return color.RGB(200, 200, 200).Sprint("#")
		}
	}

	level := normalise(c.Potential, peak)
	idx := int(math.Round(math.Abs(level) * float64(len(ramp)-1)))
	ch := string(ramp[idx])
	if !useColor {
		return ch
	}
	r, g, b := diverging(level)
	return color.RGB(r, g, b).Sprint(ch)
}

// peakPotential returns the largest absolute Air potential, at least 1.
func peakPotential(g *field.Grid) int {
	peak := 1
	for _, c := range g.Cells() {
		if c.IsMetal() {
			continue
		}
		p := c.Potential
		if p < 0 {
			p = -p
		}
		if p > peak {
			peak = p
		}
	}
	return peak
}

// normalise maps a potential to [-1, 1].
func normalise(potential, peak int) float64 {
	v := float64(potential) / float64(peak)
	return math.Max(-1, math.Min(1, v))
}

// diverging maps [-1, 1] to blue, through near-black, to red.
func diverging(level float64) (uint8, uint8, uint8) {
	mag := math.Abs(level)
	base := 40.0
	hot := uint8(base + mag*(255-base))
	cold := uint8(base * (1 - mag))
	if level >= 0 {
		return hot, cold, cold
	}
	return cold, cold, hot
}
