package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
)

var (
	positiveMetal = color.RGBA{R: 255, G: 235, B: 80, A: 255}
	negativeMetal = color.RGBA{R: 80, G: 255, B: 235, A: 255}
	neutralMetal  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// MaxHeatmapSide bounds the side length of a heatmap in pixels.
const MaxHeatmapSide = 16384

// Heatmap draws g with scale x scale pixels per cell. Pixel (x, y) of the
// unscaled image is cell (x, y).
func Heatmap(g *field.Grid, scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, fmt.Errorf("render: scale must be at least 1, got %d", scale)
	}

	size := g.Size()
	if scale > MaxHeatmapSide/size {
		return nil, fmt.Errorf("render: %dx%d grid at scale %d exceeds %d pixels per side",
			size, size, scale, MaxHeatmapSide)
	}
	src := image.NewRGBA(image.Rect(0, 0, size, size))
	peak := peakPotential(g)

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			src.SetRGBA(x, y, cellColor(g.Cell(x, y), peak))
		}
	}

	if scale == 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, size*scale, size*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func cellColor(c field.Cell, peak int) color.RGBA {
	if c.IsMetal() {
		switch {
		case c.Voltage > 0:
			return positiveMetal
		case c.Voltage < 0:
			return negativeMetal
		default:
			return neutralMetal
		}
	}
	r, g, b := diverging(normalise(c.Potential, peak))
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
