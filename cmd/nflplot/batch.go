package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajbenz18/nfl-analysis/src/logging"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <charts.yaml>",
		Short: "Render every chart listed in a job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(cmd, args[0])
			if err != nil {
				return err
			}
			if err := cfg.ValidateJobs(); err != nil {
				return err
			}
			log := logging.For("batch")
			specs := cfg.Specs()
			failed := 0
			for i, spec := range specs {
				if err := renderAndSave(cmd.OutOrStdout(), spec); err != nil {
					failed++
					log.Errorf("chart %d of %d (%s): %v", i+1, len(specs), spec.Out, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d charts failed", failed, len(specs))
			}
			return nil
		},
	}
}
