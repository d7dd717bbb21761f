package iorun

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/retroevo/capsid/pkg/aggregate"
	"github.com/retroevo/capsid/pkg/extract"
	"github.com/retroevo/capsid/pkg/record"
	"golang.org/x/sync/errgroup"
)

// indexedRecord carries the original position of a record through the
// worker pool so the hit stream can be restored to input order.
type indexedRecord struct {
	idx int
	rec record.Record
}

type indexedHits struct {
	idx  int
	hits []record.Hit
}

// extractAll runs feature extraction over records with JobsNumber
// workers. The returned hits are in record order regardless of which
// worker produced them, so aggregation stays deterministic.
func (r *Runner) extractAll(
	ctx context.Context,
	records []record.Record,
) ([]record.Hit, error) {
	chIn := make(chan indexedRecord)
	chOut := make(chan indexedHits)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range r.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return extractWorker(ctx, chIn, chOut)
		})
	}

	perRecord := make([][]record.Hit, len(records))
	g.Go(func() error {
		for ih := range chOut {
			perRecord[ih.idx] = ih.hits
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	err := func() error {
		defer close(chIn)
		for i, rec := range records {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- indexedRecord{idx: i, rec: rec}:
			}
		}
		return nil
	}()
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, CancelledError(err)
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	var hits []record.Hit
	for _, hs := range perRecord {
		hits = append(hits, hs...)
	}
	return hits, nil
}

func extractWorker(
	ctx context.Context,
	chIn <-chan indexedRecord,
	chOut chan<- indexedHits,
) error {
	for ir := range chIn {
		res := indexedHits{idx: ir.idx, hits: extract.FromRecord(ir.rec)}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- res:
		}
	}
	return nil
}

// aggregateHits collapses the hit stream into unique-sequence entries.
func aggregateHits(hits []record.Hit) []record.Entry {
	return aggregate.Unique(hits)
}

// loadRecords reads every .json file of a download directory in name
// order.
func loadRecords(dir string) ([]record.Record, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, ReadDirError(dir, err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	records := make([]record.Record, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ReadDirError(path, err)
		}
		var rec record.Record
		if err = json.Unmarshal(data, &rec); err != nil {
			return nil, DecodeError(path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadDirError(path, err)
	}
	return data, nil
}
