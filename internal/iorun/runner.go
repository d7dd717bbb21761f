// Package iorun orchestrates the capsid pipeline: download, feature
// extraction, aggregation, clustering, cluster reconciliation and
// phylogeny preparation. Each phase can run on its own from the files
// the previous phase left on disk, or all together via Run.
package iorun

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/google/uuid"
	"github.com/retroevo/capsid/internal/iodatasets"
	"github.com/retroevo/capsid/internal/iowrite"
	"github.com/retroevo/capsid/pkg/cluster"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"github.com/retroevo/capsid/pkg/pipeline"
	"github.com/retroevo/capsid/pkg/record"
)

// Runner executes pipeline phases for the configured datasets.
type Runner struct {
	cfg       *config.Config
	source    pipeline.RecordSource
	clusterer pipeline.Clusterer
	aligner   pipeline.Aligner
}

// New creates a Runner. Collaborators that a phase does not need may
// be nil; only Run and the corresponding phase methods touch them.
func New(
	cfg *config.Config,
	source pipeline.RecordSource,
	clusterer pipeline.Clusterer,
	aligner pipeline.Aligner,
) *Runner {
	return &Runner{
		cfg:       cfg,
		source:    source,
		clusterer: clusterer,
		aligner:   aligner,
	}
}

// dsPaths fixes the on-disk layout of one dataset's artifacts inside
// the output directory.
type dsPaths struct {
	root          string
	recordsDir    string
	uniqueJSON    string
	uniqueTSV     string
	uniqueFASTA   string
	clusterPrefix string
	clusterTmpDir string
	alignDir      string
}

func (r *Runner) paths(ds datasets.Dataset) dsPaths {
	root := filepath.Join(r.cfg.Output.Dir, ds.Name)
	return dsPaths{
		root:          root,
		recordsDir:    filepath.Join(root, "records"),
		uniqueJSON:    filepath.Join(root, ds.Name+"_unique.json"),
		uniqueTSV:     filepath.Join(root, ds.Name+"_unique.tsv"),
		uniqueFASTA:   filepath.Join(root, ds.Name+"_unique.fasta"),
		clusterPrefix: filepath.Join(root, "cluster", ds.Name),
		clusterTmpDir: filepath.Join(root, "cluster", "tmp"),
		alignDir:      filepath.Join(root, "align"),
	}
}

// Datasets loads datasets.yaml and filters it to the configured IDs.
func (r *Runner) Datasets() ([]datasets.Dataset, error) {
	dsc, err := iodatasets.New(r.cfg).Load()
	if err != nil {
		return nil, err
	}
	dss := dsc.Filter(r.cfg.DatasetIDs)
	if len(dss) == 0 {
		return nil, iodatasets.NoDatasetsError(r.cfg.DatasetIDs)
	}
	return dss, nil
}

// Fetch downloads the raw records of one dataset.
func (r *Runner) Fetch(
	ctx context.Context,
	ds datasets.Dataset,
) (int, error) {
	p := r.paths(ds)
	return r.source.Download(ctx, ds, p.recordsDir)
}

// Extract reads the raw records of one dataset, extracts the
// qualifying capsid chains, aggregates them into unique-sequence
// entries and writes the JSON, TSV and FASTA outputs.
func (r *Runner) Extract(
	ctx context.Context,
	ds datasets.Dataset,
) ([]record.Entry, error) {
	p := r.paths(ds)

	records, err := loadRecords(p.recordsDir)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded raw records",
		"dataset", ds.Name, "records", len(records))

	hits, err := r.extractAll(ctx, records)
	if err != nil {
		return nil, err
	}

	entries := aggregateHits(hits)
	slog.Info("Aggregated hits",
		"dataset", ds.Name,
		"hits", len(hits),
		"unique_sequences", len(entries))

	if err = r.writeEntries(p, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Cluster clusters the unique sequences of one dataset and reconciles
// the resulting membership table back onto the entries, persisting the
// enriched JSON and TSV in place.
func (r *Runner) Cluster(
	ctx context.Context,
	ds datasets.Dataset,
) ([]record.Entry, *pipeline.ClusterResult, error) {
	p := r.paths(ds)

	entries, err := loadEntries(p.uniqueJSON)
	if err != nil {
		return nil, nil, err
	}

	res, err := r.clusterer.Cluster(
		ctx, p.uniqueFASTA, p.clusterPrefix, p.clusterTmpDir,
	)
	if err != nil {
		return nil, nil, err
	}

	enriched, nums := cluster.Reconcile(entries, res.Table)
	unmatched := cluster.Unmatched(enriched)
	slog.Info("Reconciled clusters",
		"dataset", ds.Name,
		"clusters", len(nums),
		"entries", len(enriched),
		"unmatched", unmatched)
	if unmatched > 0 {
		gn.Warn("%d entries did not match any cluster", unmatched)
	}

	if err = r.writeEntries(p, enriched); err != nil {
		return nil, nil, err
	}
	return enriched, res, nil
}

// Align aligns and trims the representative sequences of one
// dataset's clustering run.
func (r *Runner) Align(
	ctx context.Context,
	ds datasets.Dataset,
) (*pipeline.AlignResult, error) {
	p := r.paths(ds)
	repSeqPath := p.clusterPrefix + "_rep_seq.fasta"
	return r.aligner.Prepare(ctx, repSeqPath, p.alignDir)
}

// Run executes every phase for every selected dataset.
func (r *Runner) Run(ctx context.Context) error {
	startTime := time.Now()
	runID := uuid.New().String()
	slog.Info("Starting pipeline run", "run_id", runID)

	dss, err := r.Datasets()
	if err != nil {
		return err
	}

	for i, ds := range dss {
		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Dataset [%d]: %s", ds.ID, ds.Name)
		fmt.Println(strings.Repeat("─", 60))
		slog.Info("Processing dataset",
			"index", i+1,
			"total", len(dss),
			"dataset_id", ds.ID,
			"name", ds.Name)

		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		if err = r.runDataset(ctx, ds); err != nil {
			return err
		}
	}

	totalDuration := time.Since(startTime)
	slog.Info("Pipeline run complete",
		"run_id", runID,
		"datasets", len(dss),
		"duration", gnfmt.TimeString(totalDuration.Seconds()))
	gn.Info(`Pipeline run complete
Datasets processed: %d.
Elapsed time: <em>%s</em>
`,
		len(dss),
		gnfmt.TimeString(totalDuration.Seconds()),
	)
	return nil
}

func (r *Runner) runDataset(
	ctx context.Context,
	ds datasets.Dataset,
) error {
	gn.Info("(1/4) Downloading records...")
	count, err := r.Fetch(ctx, ds)
	if err != nil {
		return err
	}
	gn.Message("<em>Downloaded %s records</em>",
		humanize.Comma(int64(count)))

	gn.Info("(2/4) Extracting capsid chains...")
	entries, err := r.Extract(ctx, ds)
	if err != nil {
		return err
	}
	gn.Message("<em>Found %s unique capsid sequences</em>",
		humanize.Comma(int64(len(entries))))

	gn.Info("(3/4) Clustering sequences...")
	_, res, err := r.Cluster(ctx, ds)
	if err != nil {
		return err
	}
	gn.Message(
		"<em>Grouped %s sequences into %s clusters</em>",
		humanize.Comma(int64(res.Stats.Sequences)),
		humanize.Comma(int64(res.Stats.Clusters)),
	)

	gn.Info("(4/4) Preparing the alignment...")
	alignRes, err := r.Align(ctx, ds)
	if err != nil {
		return err
	}
	gn.Message("<em>Trimmed alignment saved to %s</em>",
		alignRes.TrimmedPath)
	return nil
}

func (r *Runner) writeEntries(p dsPaths, entries []record.Entry) error {
	if err := gnsys.MakeDir(p.root); err != nil {
		return iowrite.WriteJSONError(p.root, err)
	}
	if err := iowrite.JSON(p.uniqueJSON, entries); err != nil {
		return err
	}
	if err := iowrite.TSV(
		p.uniqueTSV, entries, r.cfg.Output.SubfamilyMarker,
	); err != nil {
		return err
	}
	return iowrite.FASTA(p.uniqueFASTA, entries)
}

func loadEntries(path string) ([]record.Entry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var entries []record.Entry
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &entries); err != nil {
		return nil, DecodeError(path, err)
	}
	return entries, nil
}
