package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceField/pkg/render"
)

var (
	pinsSize int
	pinsJSON bool
)

var pinsCmd = &cobra.Command{
	Use:   "pins [scenario]",
	Short: "List placed conductors with their pins and voltages",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
	pinsCmd.Flags().IntVar(&pinsSize, "size", 0, "grid size, overriding scenario and config")
	pinsCmd.Flags().BoolVar(&pinsJSON, "json", false, "print as JSON")
}

func runPins(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	g, err := buildGrid(cmd, sc, gridSize(cmd, sc, pinsSize))
	if err != nil {
		return err
	}

	infos := render.Pins(g)
	out := cmd.OutOrStdout()

	if pinsJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tVOLTAGE\tCELLS\tOWNED\tSHAPE")
	for _, info := range infos {
		voltage := "-"
		if info.Voltage != nil {
			voltage = fmt.Sprintf("%d", *info.Voltage)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", info.Pin, voltage, info.Cells, info.Owned, info.Shape)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nConductors: %d\n", g.ConductorCount())
	return nil
}
