package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/spf13/cobra"
)

// getAlignCmd returns the align command.
func getAlignCmd() *cobra.Command {
	var (
		datasetIDs []int
		algorithm  string
	)

	alignCmd := &cobra.Command{
		Use:   "align",
		Short: "Align and trim cluster representative sequences",
		Long: `Prepare the representative sequences of a clustering run for tree
inference: align them with MAFFT and trim the alignment with ClipKit.

This command:
  1. Aligns the cluster representatives with the configured MAFFT
     algorithm
  2. Trims poorly aligned columns with ClipKit
  3. Saves the tool logs next to the outputs when configured

Examples:
  capsid align
  capsid align -d 1 --algorithm einsi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("algorithm") {
				cfg.Update([]config.Option{
					config.OptAlignAlgorithm(algorithm),
				})
			}
			err := runAlign(datasetIDs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	alignCmd.Flags().IntSliceVarP(
		&datasetIDs, "dataset-ids", "d", []int{},
		"dataset IDs to process (empty = all)",
	)
	alignCmd.Flags().StringVar(
		&algorithm, "algorithm", "",
		"MAFFT algorithm: auto, linsi, einsi, ginsi or fast",
	)

	return alignCmd
}

func runAlign(datasetIDs []int) error {
	ctx := context.Background()
	applyDatasetIDs(datasetIDs)

	runner, closeCache := newRunner()
	defer closeCache()

	dss, err := runner.Datasets()
	if err != nil {
		return err
	}

	for _, ds := range dss {
		gn.Info("Preparing the alignment for <em>%s</em>", ds.Name)
		res, err := runner.Align(ctx, ds)
		if err != nil {
			return err
		}
		gn.Message("<em>Trimmed alignment saved to %s</em>",
			res.TrimmedPath)
	}
	return nil
}
