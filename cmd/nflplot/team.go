package main

import (
	"github.com/spf13/cobra"

	"github.com/ajbenz18/nfl-analysis/src/plot"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team <data.csv> <x-col> <y-col>",
		Short: "Plot two team stat columns, optionally joined with a second table",
		Example: `  nflplot team offense.csv "PACT%" "MOT%" --invert-y
  nflplot team offense.csv EPA/Play Sacks --secondary defense.csv --join Tm`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, plot.PlotSpec{
				Domain:  plot.Team.Name,
				Primary: args[0],
				X:       args[1],
				Y:       args[2],
			})
		},
	}
	f := cmd.Flags()
	f.String("secondary", "", "second table left-joined onto the first")
	f.String("join", "", "column shared by both tables")
	f.String("join-suffix", "", "suffix for colliding secondary columns (default \"_secondary\")")
	f.Int("header-row", plot.Team.HeaderRow, "0-based header line of the tables")
	f.String("sheet", "", "sheet name for .xlsx sources")
	addChartFlags(cmd)
	f.String("label-col", "", "column used for point labels (default \"Tm\")")
	f.String("identity-col", "", "column used for logo lookup (default \"Tm\")")
	f.Bool("invert-x", false, "put high x values on the left")
	f.Bool("invert-y", false, "put high y values at the bottom")
	return cmd
}

// addChartFlags registers the flags shared by the single-chart commands.
func addChartFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("title", "", "chart title (default \"<x> vs <y>\")")
	f.String("subtitle", "", "grey line under the title")
	f.String("x-label", "", "x axis name (default: column name)")
	f.String("y-label", "", "y axis name (default: column name)")
	f.String("out", "", "output PNG path (default: out dir from config)")
	f.String("assets", "", "directory of <key>.png logos (default: NFLPLOT_ASSET_DIR or data/logos)")
	f.Int("width", 0, "figure width in pixels")
	f.Int("height", 0, "figure height in pixels")
	f.Int("logo-size", 0, "logo size in pixels along its shorter side")
}
