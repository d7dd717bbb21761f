// Package pipeline defines the contracts between the capsid pipeline
// core and its external collaborators: the record source, the
// sequence-similarity clusterer and the alignment toolchain. The core
// transforms (extract, aggregate, cluster reconciliation) are pure and
// live in their own packages; everything behind these interfaces does
// network or subprocess I/O.
package pipeline

import (
	"context"

	"github.com/retroevo/capsid/pkg/cluster"
	"github.com/retroevo/capsid/pkg/datasets"
)

// RecordSource downloads raw protein records.
type RecordSource interface {
	// Download saves every record matching the dataset query as an
	// individual JSON document in dir and reports how many were saved.
	Download(ctx context.Context, ds datasets.Dataset, dir string) (int, error)
}

// ClusterResult holds the artifacts of one clustering run.
type ClusterResult struct {
	// TablePath is the two-column membership TSV.
	TablePath string
	// RepSeqPath is the FASTA of representative sequences.
	RepSeqPath string
	// AllSeqsPath is the FASTA of all sequences grouped by cluster.
	AllSeqsPath string

	Table cluster.Table
	Stats cluster.Stats
}

// Clusterer groups the sequences of a FASTA file by similarity.
type Clusterer interface {
	// Cluster runs the external clustering tool and returns the parsed
	// membership table together with the output file locations.
	Cluster(ctx context.Context, fastaPath, outPrefix, tmpDir string) (*ClusterResult, error)
}

// AlignResult holds the artifacts of one phylogeny-prep run.
type AlignResult struct {
	AlignedPath string
	TrimmedPath string
	MafftLog    string
	ClipKitLog  string
}

// Aligner prepares sequences for tree inference: multiple sequence
// alignment followed by alignment trimming.
type Aligner interface {
	// Prepare aligns the FASTA file and trims the alignment, leaving
	// the results in outDir.
	Prepare(ctx context.Context, fastaPath, outDir string) (*AlignResult, error)
}
