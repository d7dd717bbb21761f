package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var datasetIDs []int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline",
		Long: `Run every pipeline phase for the configured datasets: download,
capsid chain extraction, aggregation, clustering, cluster
reconciliation and alignment preparation.

Examples:
  # Process all datasets end to end
  capsid run

  # Process specific datasets only
  capsid run --dataset-ids 1
  capsid run -d 1`,
		Aliases: []string{"all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPipeline(datasetIDs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().IntSliceVarP(
		&datasetIDs, "dataset-ids", "d", []int{},
		"dataset IDs to process (empty = all)",
	)

	return runCmd
}

func runPipeline(datasetIDs []int) error {
	ctx := context.Background()
	applyDatasetIDs(datasetIDs)

	runner, closeCache := newRunner()
	defer closeCache()

	return runner.Run(ctx)
}
