// Package iocluster runs MMseqs2 easy-cluster over a FASTA file and
// parses the resulting representative/member table.
package iocluster

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/gnames/gnsys"
	"github.com/retroevo/capsid/pkg/cluster"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/pipeline"
)

type clusterer struct {
	cfg *config.Config
}

// New creates a Clusterer that shells out to the MMseqs2 binary
// configured in cfg.
func New(cfg *config.Config) pipeline.Clusterer {
	return &clusterer{cfg: cfg}
}

func (c *clusterer) Cluster(
	ctx context.Context,
	fastaPath, outPrefix, tmpDir string,
) (*pipeline.ClusterResult, error) {
	binPath, err := exec.LookPath(c.cfg.Cluster.MMseqsPath)
	if err != nil {
		return nil, ToolNotFoundError(c.cfg.Cluster.MMseqsPath, err)
	}
	if err = gnsys.MakeDir(tmpDir); err != nil {
		return nil, ToolFailedError(binPath, "", err)
	}

	args := []string{
		"easy-cluster", fastaPath, outPrefix, tmpDir,
		"--min-seq-id", formatFloat(c.cfg.Cluster.MinSeqID),
		"-c", formatFloat(c.cfg.Cluster.Coverage),
		"--cov-mode", strconv.Itoa(c.cfg.Cluster.CoverageMode),
	}
	slog.Info("Running MMseqs2", "binary", binPath, "args", args)

	cmd := exec.CommandContext(ctx, binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err = cmd.Run(); err != nil {
		return nil, ToolFailedError(binPath, stderr.String(), err)
	}

	res := &pipeline.ClusterResult{
		TablePath:   outPrefix + "_cluster.tsv",
		RepSeqPath:  outPrefix + "_rep_seq.fasta",
		AllSeqsPath: outPrefix + "_all_seqs.fasta",
	}
	for _, p := range []string{
		res.TablePath, res.RepSeqPath, res.AllSeqsPath,
	} {
		if _, err = os.Stat(p); err != nil {
			return nil, OutputMissingError(p, err)
		}
	}

	res.Table, err = readTable(res.TablePath)
	if err != nil {
		return nil, err
	}
	res.Stats = res.Table.Stats()
	slog.Info("Clustering complete",
		"clusters", res.Stats.Clusters,
		"sequences", res.Stats.Sequences,
	)

	if c.cfg.Cluster.RemoveTmpFiles {
		// Best effort, the results are already on disk.
		if err = os.RemoveAll(tmpDir); err != nil {
			slog.Warn("Cannot remove temporary directory",
				"dir", tmpDir, "error", err)
		}
	}
	return res, nil
}

func readTable(path string) (cluster.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TableReadError(path, err)
	}
	defer f.Close()

	t, err := cluster.ParseTable(f)
	if err != nil {
		return nil, TableReadError(path, err)
	}
	return t, nil
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
