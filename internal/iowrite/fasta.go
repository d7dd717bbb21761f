package iowrite

import (
	"bufio"
	"os"

	"github.com/retroevo/capsid/pkg/record"
)

const fastaLineWidth = 60

// FASTA writes entries as a FASTA file. The header of each sequence is
// the entry's lookup key, which is what the clustering stage reports in
// its representative/member table. Entries with empty sequences are
// skipped.
func FASTA(path string, entries []record.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteFASTAError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if e.Sequence == "" {
			continue
		}
		if _, err = w.WriteString(">" + e.LookupKey() + "\n"); err != nil {
			return WriteFASTAError(path, err)
		}
		for i := 0; i < len(e.Sequence); i += fastaLineWidth {
			end := i + fastaLineWidth
			if end > len(e.Sequence) {
				end = len(e.Sequence)
			}
			if _, err = w.WriteString(e.Sequence[i:end] + "\n"); err != nil {
				return WriteFASTAError(path, err)
			}
		}
	}
	if err = w.Flush(); err != nil {
		return WriteFASTAError(path, err)
	}
	return nil
}
