// Package cluster models the membership table produced by an external
// sequence-similarity clustering tool and reconciles aggregated entries
// against it.
package cluster

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Assignment is one row of the membership table: a representative id and
// one member of its cluster. Singleton clusters have exactly one row
// where both ids are equal.
type Assignment struct {
	Representative string
	Member         string
}

// Table is the membership table in file order. Row order matters:
// cluster numbers are assigned by first appearance of a representative.
type Table []Assignment

// ParseTable reads a two-column tab-separated membership table. Blank
// lines and rows with fewer than two columns are skipped; duplicate
// (representative, member) pairs are kept only once.
func ParseTable(r io.Reader) (Table, error) {
	var res Table
	seen := make(map[Assignment]bool)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		a := Assignment{Representative: parts[0], Member: parts[1]}
		if seen[a] {
			continue
		}
		seen[a] = true
		res = append(res, a)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Numbering maps every member id to its cluster number. Numbers start
// at 1 and follow the order representatives first appear in the table,
// not cluster size or lexicographic order.
func (t Table) Numbering() map[string]int {
	repNum := make(map[string]int)
	res := make(map[string]int)
	for _, a := range t {
		num, ok := repNum[a.Representative]
		if !ok {
			num = len(repNum) + 1
			repNum[a.Representative] = num
		}
		res[a.Member] = num
	}
	return res
}

// Stats summarizes cluster sizes.
type Stats struct {
	Clusters   int
	Sequences  int
	MinSize    int
	MaxSize    int
	MeanSize   float64
	MedianSize int
}

// Stats computes cluster-size statistics over the table.
func (t Table) Stats() Stats {
	members := make(map[string]int)
	var order []string
	for _, a := range t {
		if _, ok := members[a.Representative]; !ok {
			order = append(order, a.Representative)
		}
		members[a.Representative]++
	}
	if len(order) == 0 {
		return Stats{}
	}

	sizes := make([]int, 0, len(order))
	total := 0
	for _, rep := range order {
		sizes = append(sizes, members[rep])
		total += members[rep]
	}
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)

	return Stats{
		Clusters:   len(sizes),
		Sequences:  total,
		MinSize:    sorted[0],
		MaxSize:    sorted[len(sorted)-1],
		MeanSize:   float64(total) / float64(len(sizes)),
		MedianSize: sorted[len(sorted)/2],
	}
}
