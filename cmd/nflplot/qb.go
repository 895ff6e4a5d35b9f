package main

import (
	"github.com/spf13/cobra"

	"github.com/ajbenz18/nfl-analysis/src/plot"
)

func newQBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "qb <data.json> <columns.txt> <x-col> <y-col>",
		Short:   "Plot two quarterback stat columns for players above a play threshold",
		Example: `  nflplot qb chart_data.json qb-columns.txt EPA/Play "Success %" --season 2025`,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, plot.PlotSpec{
				Domain:  plot.QB.Name,
				Primary: args[0],
				Columns: args[1],
				X:       args[2],
				Y:       args[3],
			})
		},
	}
	f := cmd.Flags()
	f.Float64("min-plays", plot.QB.MinCount, "minimum value of the count column")
	f.String("count", "", "count column for the threshold (default \"Plays\")")
	f.String("season", "", "season shown in the subtitle")
	f.StringSlice("percent", nil, "extra columns holding 0-100 percentages")
	addChartFlags(cmd)
	f.Bool("invert-x", false, "put high x values on the left")
	f.Bool("invert-y", false, "put high y values at the bottom")
	return cmd
}
