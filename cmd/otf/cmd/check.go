package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkSize int

var checkCmd = &cobra.Command{
	Use:   "check [scenario]",
	Short: "Validate that a scenario places cleanly",
	Long: `Rasterize and place every shape of a scenario without solving. Reports the
conductor count, or the first shape that is unsupported or leaves the grid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(cmd, args)
		if err != nil {
			return err
		}

		g, err := buildGrid(cmd, sc, gridSize(cmd, sc, checkSize))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %s: %d conductors on a %dx%d grid\n",
			sc.Name, g.ConductorCount(), g.Size(), g.Size())
		fmt.Fprintf(out, "  Pins:        %d\n", len(g.Pins()))
		fmt.Fprintf(out, "  Metal cells: %d\n", g.Size()*g.Size()-g.AirCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkSize, "size", 0, "grid size, overriding scenario and config")
}
