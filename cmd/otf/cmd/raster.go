package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceField/pkg/raster"
)

var rasterCmd = &cobra.Command{
	Use:   "raster",
	Short: "Print the cells of a single primitive",
}

var rasterLineCmd = &cobra.Command{
	Use:   "line X1 Y1 X2 Y2",
	Short: "Rasterize a line segment (Bresenham)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseInts(args)
		if err != nil {
			return err
		}
		return printPoints(cmd, raster.Line(geometry.Pt(v[0], v[1]), geometry.Pt(v[2], v[3])))
	},
}

var rasterCircleCmd = &cobra.Command{
	Use:   "circle X Y R",
	Short: "Rasterize a circle outline (midpoint)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseInts(args)
		if err != nil {
			return err
		}
		if v[2] < 0 {
			return fmt.Errorf("radius must not be negative, got %d", v[2])
		}
		return printPoints(cmd, raster.Circle(geometry.Pt(v[0], v[1]), uint(v[2])))
	},
}

func init() {
	rootCmd.AddCommand(rasterCmd)
	rasterCmd.AddCommand(rasterLineCmd)
	rasterCmd.AddCommand(rasterCircleCmd)
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func printPoints(cmd *cobra.Command, pts []geometry.Point) error {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d points\n", len(pts))
	fmt.Fprintln(out, strings.Join(parts, " "))
	return nil
}
