package iorun_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroevo/capsid/internal/iorun"
	"github.com/retroevo/capsid/pkg/cluster"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"github.com/retroevo/capsid/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClusterer struct {
	table cluster.Table
}

func (f *fakeClusterer) Cluster(
	ctx context.Context,
	fastaPath, outPrefix, tmpDir string,
) (*pipeline.ClusterResult, error) {
	return &pipeline.ClusterResult{
		TablePath:   outPrefix + "_cluster.tsv",
		RepSeqPath:  outPrefix + "_rep_seq.fasta",
		AllSeqsPath: outPrefix + "_all_seqs.fasta",
		Table:       f.table,
		Stats:       f.table.Stats(),
	}, nil
}

func testSetup(t *testing.T) (*config.Config, datasets.Dataset) {
	t.Helper()
	cfg := config.New()
	cfg.Output.Dir = t.TempDir()
	cfg.JobsNumber = 2
	ds := datasets.Dataset{ID: 1, Name: "test_ds", Query: "gene:gag"}
	return cfg, ds
}

func writeRecord(t *testing.T, dir, accession, id, seq string, end int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	body := fmt.Sprintf(`{
  "primaryAccession": %q,
  "uniProtkbId": %q,
  "sequence": {"value": %q},
  "features": [
    {
      "type": "Chain",
      "description": "Capsid protein p24",
      "location": {
        "start": {"value": 1, "modifier": "EXACT"},
        "end": {"value": %d, "modifier": "EXACT"}
      }
    }
  ]
}`, accession, id, seq, end)
	err := os.WriteFile(
		filepath.Join(dir, accession+".json"), []byte(body), 0644,
	)
	require.NoError(t, err)
}

func TestExtract(t *testing.T) {
	cfg, ds := testSetup(t)
	recordsDir := filepath.Join(cfg.Output.Dir, ds.Name, "records")

	writeRecord(t, recordsDir, "P16087", "GAG_FIVPE", "AAAACCCCGGGG", 8)
	writeRecord(t, recordsDir, "P31822", "GAG_FIVWO", "TTTTCCCCGGGG", 8)
	// identical chain subsequence, collapses with P16087
	writeRecord(t, recordsDir, "Q00001", "GAG_FIVSD", "AAAACCCCTTTT", 8)

	runner := iorun.New(cfg, nil, nil, nil)
	entries, err := runner.Extract(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "AAAACCCC", entries[0].Sequence)
	assert.Equal(t, "TTTTCCCC", entries[1].Sequence)
	assert.Equal(t, "FIVPE,FIVSD", entries[0].Label)

	root := filepath.Join(cfg.Output.Dir, ds.Name)
	for _, name := range []string{
		"test_ds_unique.json",
		"test_ds_unique.tsv",
		"test_ds_unique.fasta",
	} {
		_, err = os.Stat(filepath.Join(root, name))
		assert.NoError(t, err, name)
	}
}

func TestExtractMissingRecords(t *testing.T) {
	cfg, ds := testSetup(t)
	runner := iorun.New(cfg, nil, nil, nil)
	_, err := runner.Extract(context.Background(), ds)
	assert.Error(t, err)
}

func TestCluster(t *testing.T) {
	cfg, ds := testSetup(t)
	recordsDir := filepath.Join(cfg.Output.Dir, ds.Name, "records")
	writeRecord(t, recordsDir, "P16087", "GAG_FIVPE", "AAAACCCCGGGG", 8)
	writeRecord(t, recordsDir, "P31822", "GAG_FIVWO", "TTTTCCCCGGGG", 8)

	clusterer := &fakeClusterer{
		table: cluster.Table{
			{Representative: "FIVPE", Member: "FIVPE"},
			{Representative: "FIVPE", Member: "FIVWO"},
		},
	}
	runner := iorun.New(cfg, nil, clusterer, nil)

	_, err := runner.Extract(context.Background(), ds)
	require.NoError(t, err)

	entries, res, err := runner.Cluster(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, res.Stats.Clusters)

	require.NotNil(t, entries[0].ClusterID)
	assert.Equal(t, 1, *entries[0].ClusterID)
	require.NotNil(t, entries[1].ClusterID)
	assert.Equal(t, 1, *entries[1].ClusterID)

	// the enriched entries were persisted
	reloaded, _, err := runner.Cluster(context.Background(), ds)
	require.NoError(t, err)
	require.NotNil(t, reloaded[0].ClusterID)
}

func TestExtractDeterministicOrder(t *testing.T) {
	cfg, ds := testSetup(t)
	recordsDir := filepath.Join(cfg.Output.Dir, ds.Name, "records")

	// enough records to keep both workers busy
	for i := range 20 {
		acc := fmt.Sprintf("P%05d", i)
		id := fmt.Sprintf("GAG_V%05d", i)
		seq := fmt.Sprintf("SEQ%05dAAAACCCC", i)
		writeRecord(t, recordsDir, acc, id, seq, len(seq)-2)
	}

	runner := iorun.New(cfg, nil, nil, nil)
	first, err := runner.Extract(context.Background(), ds)
	require.NoError(t, err)

	second, err := runner.Extract(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
