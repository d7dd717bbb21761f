package cluster

import (
	"slices"
	"strings"

	"github.com/retroevo/capsid/pkg/record"
)

// Reconcile assigns a cluster number to every entry by looking its label
// up in the membership table. It returns a new enriched slice (the input
// is not modified) together with the member-id to cluster-number mapping
// it used.
//
// Lookup is layered because the label written into the clustering input
// may join multiple identifiers in an order that later re-serialization
// does not preserve. Per entry, in order, first success wins:
//
//  1. the entry's lookup key verbatim;
//  2. for comma-joined multi-value keys, the sorted permutation;
//  3. each comma-separated component individually.
//
// An entry matching none of these keeps a nil ClusterID; unmatched
// entries are an expected outcome, countable by callers.
func Reconcile(entries []record.Entry, t Table) ([]record.Entry, map[string]int) {
	nums := t.Numbering()

	res := make([]record.Entry, len(entries))
	for i, e := range entries {
		res[i] = e
		res[i].ClusterID = lookup(e.LookupKey(), nums)
	}
	return res, nums
}

// Unmatched counts entries left without a cluster number.
func Unmatched(entries []record.Entry) int {
	var n int
	for _, e := range entries {
		if e.ClusterID == nil {
			n++
		}
	}
	return n
}

func lookup(key string, nums map[string]int) *int {
	if id, ok := nums[key]; ok {
		return &id
	}
	if !strings.Contains(key, ",") {
		return nil
	}

	parts := strings.Split(key, ",")

	sorted := slices.Clone(parts)
	slices.Sort(sorted)
	if id, ok := nums[strings.Join(sorted, ",")]; ok {
		return &id
	}

	for _, p := range parts {
		if id, ok := nums[strings.TrimSpace(p)]; ok {
			return &id
		}
	}
	return nil
}
