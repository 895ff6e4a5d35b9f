// Command nflplot renders annotated scatter plots from team and quarterback
// statistics tables.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajbenz18/nfl-analysis/src/config"
	"github.com/ajbenz18/nfl-analysis/src/logging"
	"github.com/ajbenz18/nfl-analysis/src/plot"
)

const logLevelFlag = "log-level"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nflplot",
		Short:         "Render annotated NFL scatter plots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetOutput(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().String(logLevelFlag, "", "debug, info, warn or error (default: config, NFLPLOT_LOG_LEVEL, then info)")
	root.AddCommand(newTeamCmd(), newQBCmd(), newBatchCmd(), newInspectCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// settings loads the shared configuration and applies its log level unless
// --log-level was given.
func settings(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if f := cmd.Flags().Lookup(logLevelFlag); f != nil && f.Changed {
		level = f.Value.String()
	}
	if _, ok := logging.ParseLevel(level); !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	logging.SetLogLevel(level)
	return cfg, nil
}

// runSingle renders one chart from positional arguments plus flags.
func runSingle(cmd *cobra.Command, base plot.PlotSpec) error {
	cfg, err := settings(cmd, "")
	if err != nil {
		return err
	}
	spec, err := config.SpecFromFlags(base, cmd.Flags())
	if err != nil {
		return err
	}
	explicitOut := spec.Out
	spec = cfg.Apply(spec)
	if explicitOut != "" {
		spec.Out = explicitOut
	}
	return renderAndSave(cmd.OutOrStdout(), spec)
}

func renderAndSave(w io.Writer, spec plot.PlotSpec) error {
	c, err := plot.Run(spec)
	if err != nil {
		return err
	}
	if err := plot.Save(c, spec.Out); err != nil {
		return err
	}
	printReport(w, spec.Out, c.Report)
	return nil
}

func printReport(w io.Writer, out string, r plot.Report) {
	fmt.Fprintf(w, "wrote %s\n", out)
	fmt.Fprintf(w, "  rows: %d loaded, %d plotted, %d missing an axis value, %d below threshold\n",
		r.RowsLoaded, r.RowsPlotted, r.Dropped, r.BelowThreshold)
	fmt.Fprintf(w, "  markers: %d logos, %d fallback points\n", r.WithAsset, r.WithoutAsset)
	fmt.Fprintf(w, "  x %-12s mean=%.4g sd=%.4g range=[%.4g, %.4g]\n", r.X.Column, r.X.Mean, r.X.StdDev, r.X.Min, r.X.Max)
	fmt.Fprintf(w, "  y %-12s mean=%.4g sd=%.4g range=[%.4g, %.4g]\n", r.Y.Column, r.Y.Mean, r.Y.StdDev, r.Y.Min, r.Y.Max)
}
