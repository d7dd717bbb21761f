package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
func getFetchCmd() *cobra.Command {
	var datasetIDs []int

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download protein records from UniProt",
		Long: `Download the raw protein records of the configured datasets.

This command:
  1. Reads datasets.yaml to discover dataset queries
  2. Pages through the UniProt REST API with retries
  3. Saves every record as <accession>.json in the output directory
  4. Mirrors records into the local cache for later runs

Datasets are configured in: ~/.config/capsid/datasets.yaml

Examples:
  # Download all datasets
  capsid fetch

  # Download specific datasets only
  capsid fetch --dataset-ids 1,2
  capsid fetch -d 1,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(datasetIDs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fetchCmd.Flags().IntSliceVarP(
		&datasetIDs, "dataset-ids", "d", []int{},
		"dataset IDs to download (empty = all)",
	)

	return fetchCmd
}

func runFetch(datasetIDs []int) error {
	ctx := context.Background()
	applyDatasetIDs(datasetIDs)

	runner, closeCache := newRunner()
	defer closeCache()

	dss, err := runner.Datasets()
	if err != nil {
		return err
	}

	for _, ds := range dss {
		gn.Info("Downloading dataset <em>%s</em>", ds.Name)
		count, err := runner.Fetch(ctx, ds)
		if err != nil {
			return err
		}
		gn.Message("<em>Downloaded %s records</em>",
			humanize.Comma(int64(count)))
	}
	return nil
}
