package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajbenz18/nfl-analysis/src/dataset"
	"github.com/ajbenz18/nfl-analysis/src/normalize"
	"github.com/ajbenz18/nfl-analysis/src/stats"
)

func newInspectCmd() *cobra.Command {
	var src dataset.Source
	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Print the columns of a table and a summary of its numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := settings(cmd, ""); err != nil {
				return err
			}
			src.Path = args[0]
			ds, err := dataset.Load(src)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), ds)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&src.ColumnsPath, "columns", "", "sidecar column list for .json record lists")
	f.IntVar(&src.HeaderRow, "header-row", 0, "0-based header line")
	f.StringVar(&src.Sheet, "sheet", "", "sheet name for .xlsx sources")
	f.StringVar(&src.Format, "format", "", "csv, tsv, json or xlsx (default: from extension)")
	return cmd
}

func printSummary(w io.Writer, ds *dataset.Dataset) {
	fmt.Fprintf(w, "Source: %s\n", ds.Name)
	fmt.Fprintf(w, "Rows: %d\n", ds.Len())
	cols := ds.Columns()
	fmt.Fprintf(w, "Columns: %d\n", len(cols))
	for _, c := range cols {
		missing := normalize.Coerce(ds, c, false)
		s := stats.ForColumn(ds, c, stats.DefaultMarginFactor)
		if s.Empty() {
			fmt.Fprintf(w, "  %-24s text\n", c)
			continue
		}
		fmt.Fprintf(w, "  %-24s n=%d missing=%d mean=%.4g sd=%.4g min=%.4g max=%.4g\n",
			c, s.N, missing, s.Mean, s.StdDev, s.Min, s.Max)
	}
}
