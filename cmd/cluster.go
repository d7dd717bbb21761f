package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/spf13/cobra"
)

// getClusterCmd returns the cluster command.
func getClusterCmd() *cobra.Command {
	var (
		datasetIDs []int
		minSeqID   float64
		coverage   float64
	)

	clusterCmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster unique sequences and assign cluster identifiers",
		Long: `Group the unique capsid sequences by similarity with MMseqs2 and
record each sequence's cluster in the JSON and TSV outputs.

This command:
  1. Runs 'mmseqs easy-cluster' on the unique-sequence FASTA
  2. Numbers the clusters in order of first appearance
  3. Matches cluster members back onto the aggregated entries
  4. Rewrites the JSON and TSV outputs with cluster identifiers

Sequences without a matching cluster keep a null cluster identifier;
their count is reported but is not an error.

Examples:
  capsid cluster
  capsid cluster -d 1 --min-seq-id 0.5 --coverage 0.9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-seq-id") {
				cfg.Update([]config.Option{
					config.OptClusterMinSeqID(minSeqID),
				})
			}
			if cmd.Flags().Changed("coverage") {
				cfg.Update([]config.Option{
					config.OptClusterCoverage(coverage),
				})
			}
			err := runCluster(datasetIDs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	clusterCmd.Flags().IntSliceVarP(
		&datasetIDs, "dataset-ids", "d", []int{},
		"dataset IDs to process (empty = all)",
	)
	clusterCmd.Flags().Float64Var(
		&minSeqID, "min-seq-id", 0,
		"minimum sequence identity for clustering (0..1)",
	)
	clusterCmd.Flags().Float64Var(
		&coverage, "coverage", 0,
		"minimum alignment coverage for clustering (0..1)",
	)

	return clusterCmd
}

func runCluster(datasetIDs []int) error {
	ctx := context.Background()
	applyDatasetIDs(datasetIDs)

	runner, closeCache := newRunner()
	defer closeCache()

	dss, err := runner.Datasets()
	if err != nil {
		return err
	}

	for _, ds := range dss {
		gn.Info("Clustering sequences of <em>%s</em>", ds.Name)
		_, res, err := runner.Cluster(ctx, ds)
		if err != nil {
			return err
		}
		gn.Message(
			"<em>Grouped %s sequences into %s clusters</em>",
			humanize.Comma(int64(res.Stats.Sequences)),
			humanize.Comma(int64(res.Stats.Clusters)),
		)
	}
	return nil
}
