package cmd

import (
	"fmt"
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceField/internal/ctxlog"
	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/scenario"
	"github.com/spf13/cobra"
)

// loadScenario reads the scenario named by args, or the built-in default.
func loadScenario(cmd *cobra.Command, args []string) (*scenario.Scenario, error) {
	logger := ctxlog.FromContext(cmd.Context())

	if len(args) == 0 {
		logger.Debug("using built-in scenario")
		return scenario.Default(), nil
	}

	sc, err := scenario.Load(args[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scenario",
		"path", args[0],
		"format", scenario.FormatForPath(args[0]).String(),
		"shapes", len(sc.Shapes),
		"voltages", len(sc.Voltages))
	return sc, nil
}

// gridSize resolves the grid size: flag > scenario > config.
func gridSize(cmd *cobra.Command, sc *scenario.Scenario, flagValue int) int {
	if cmd.Flags().Changed("size") {
		return flagValue
	}
	return sc.Size(cfg.Grid.Size)
}

// buildGrid places the scenario and applies its voltages. Placement errors
// are logged and returned; nothing is rendered for a failed placement.
func buildGrid(cmd *cobra.Command, sc *scenario.Scenario, size int) (*field.Grid, error) {
	logger := ctxlog.FromContext(cmd.Context())

	sc.GridSize = size
	g, err := sc.Build(size)
	if err != nil {
		logger.Error("placement failed", "scenario", sc.Name, "error", err)
		return nil, fmt.Errorf("placement failed: %w", err)
	}
	logger.Info("placed conductors",
		slog.String("scenario", sc.Name),
		slog.Int("size", g.Size()),
		slog.Int("conductors", g.ConductorCount()),
		slog.Int("metal_cells", g.Size()*g.Size()-g.AirCount()))
	return g, nil
}
