package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceField/internal/ctxlog"
	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/render"
	"github.com/OpenTraceLab/OpenTraceField/pkg/solver"
)

var (
	solvePrecision string
	solveWorkers   int
	solveSize      int
	solveStep      int
	solvePNG       string
	solveJSON      string
	solveNoColor   bool
	solveQuiet     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [scenario]",
	Short: "Place conductors, apply voltages and compute the potential field",
	Long: `Solve a scenario file (.fld text or .fsx s-expression) and render the
resulting field. Without a scenario the built-in layout is used: a frame of
four lines at -80 around a cross of two lines at +80.

Examples:
  otf solve
  otf solve board.fld --precision float
  otf solve board.fsx --png field.png --json field.json --quiet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solvePrecision, "precision", "p", "truncate",
		"accumulation policy: truncate (per term) or float")
	solveCmd.Flags().IntVarP(&solveWorkers, "workers", "w", 0,
		"concurrent solver rows (0 = GOMAXPROCS)")
	solveCmd.Flags().IntVar(&solveSize, "size", 0,
		"grid size, overriding scenario and config")
	solveCmd.Flags().IntVar(&solveStep, "step", 1,
		"render every n-th cell in the terminal view")
	solveCmd.Flags().StringVar(&solvePNG, "png", "",
		"write a heatmap PNG to this file")
	solveCmd.Flags().StringVar(&solveJSON, "json", "",
		"write the solved field as JSON to this file")
	solveCmd.Flags().BoolVar(&solveNoColor, "no-color", false,
		"disable ANSI colours")
	solveCmd.Flags().BoolVarP(&solveQuiet, "quiet", "q", false,
		"skip the terminal view")
}

func runSolve(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := ctxlog.FromContext(cmd.Context())

	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	precisionName := cfg.Solver.Precision
	if cmd.Flags().Changed("precision") {
		precisionName = solvePrecision
	}
	precision, err := solver.ParsePrecision(precisionName)
	if err != nil {
		return err
	}
	workers := cfg.Solver.Workers
	if cmd.Flags().Changed("workers") {
		workers = solveWorkers
	}

	g, err := buildGrid(cmd, sc, gridSize(cmd, sc, solveSize))
	if err != nil {
		return err
	}

	s := solver.New(solver.Options{Precision: precision, Workers: workers})
	res, err := s.Solve(cmd.Context(), g)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	logger.Info("field solved",
		"sources", res.Sources,
		"air_cells", res.AirCells,
		"elapsed", res.Elapsed)

	fmt.Fprintf(out, "Scenario: %s\n", sc.Name)
	fmt.Fprintf(out, "  Grid:        %d x %d\n", g.Size(), g.Size())
	fmt.Fprintf(out, "  Conductors:  %d\n", g.ConductorCount())
	fmt.Fprintf(out, "  Metal cells: %d\n", res.Sources)
	fmt.Fprintf(out, "  Precision:   %s\n", res.Precision)
	fmt.Fprintf(out, "  Workers:     %d\n\n", s.Options().Workers)

	if !solveQuiet {
		opts := render.TextOptions{Color: cfg.Render.Color && !solveNoColor, Step: solveStep}
		if err := render.Text(out, g, opts); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	st := res.Stats()
	fmt.Fprintf(out, "Potential: min %.2f, max %.2f, mean %.2f\n", st.Min, st.Max, st.Mean)

	if solvePNG != "" {
		if err := writePNG(solvePNG, g, cfg.Render.Scale); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote heatmap %s\n", solvePNG)
	}

	if solveJSON != "" {
		data, err := render.ExportJSON(sc.Name, g, res)
		if err != nil {
			return fmt.Errorf("failed to export JSON: %w", err)
		}
		if err := os.WriteFile(solveJSON, data, 0644); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		fmt.Fprintf(out, "✓ Wrote field %s\n", solveJSON)
	}

	return nil
}

func writePNG(path string, g *field.Grid, scale int) error {
	img, err := render.Heatmap(g, scale)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
