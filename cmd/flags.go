package cmd

import (
	"log/slog"

	"github.com/retroevo/capsid/internal/ioalign"
	"github.com/retroevo/capsid/internal/iocluster"
	"github.com/retroevo/capsid/internal/iofetch"
	"github.com/retroevo/capsid/internal/iorun"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/pipeline"
)

// applyDatasetIDs narrows the run to the datasets given on the command
// line.
func applyDatasetIDs(ids []int) {
	cfg.Update([]config.Option{config.OptDatasetIDs(ids)})
}

// newSource creates the UniProt record source, backed by the record
// cache when it can be opened.
func newSource() (pipeline.RecordSource, func()) {
	cache, err := iofetch.NewCache(config.RecordCacheDir(cfg.HomeDir))
	if err != nil {
		// The cache is an optimization; the download works without it.
		slog.Warn("Cannot open the record cache", "error", err)
		return iofetch.New(cfg, nil), func() {}
	}
	return iofetch.New(cfg, cache), func() { cache.Close() }
}

// newRunner wires the pipeline runner with all collaborators.
func newRunner() (*iorun.Runner, func()) {
	source, closeCache := newSource()
	runner := iorun.New(
		cfg,
		source,
		iocluster.New(cfg),
		ioalign.New(cfg),
	)
	return runner, closeCache
}
