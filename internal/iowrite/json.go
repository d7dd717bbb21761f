// Package iowrite serializes aggregated entries to the output formats
// of the pipeline: JSON for downstream tools, TSV for spreadsheets,
// FASTA for the clustering and alignment stages.
package iowrite

import (
	"os"

	"github.com/gnames/gnfmt"
	"github.com/retroevo/capsid/pkg/record"
)

// JSON writes entries as a pretty-printed JSON array.
func JSON(path string, entries []record.Entry) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(entries)
	if err != nil {
		return WriteJSONError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return WriteJSONError(path, err)
	}
	return nil
}
