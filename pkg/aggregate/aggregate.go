// Package aggregate turns a flat list of capsid hits into unique-sequence
// entries.
//
// Stage A groups hits by exact sequence identity, in first-seen order, and
// merges metadata: fields on which every hit in a group agrees stay scalar,
// divergent fields become sorted lists of distinct values. Stage B then
// collapses entries that share the same accession identity, keeping the
// longest sequence variant per accession set.
package aggregate

import (
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/retroevo/capsid/pkg/record"
)

// Unique runs both aggregation stages and assigns each surviving entry a
// stable label and a deterministic id derived from its sequence.
func Unique(hits []record.Hit) []record.Entry {
	entries := groupBySequence(hits)
	entries = dedupeByAccession(entries)
	assignLabels(entries)
	return entries
}

// groupBySequence is Stage A. Group order is the order in which each
// distinct sequence (the empty string included) first appears in the
// input; this order is part of the contract because Stage B breaks
// length ties by it.
func groupBySequence(hits []record.Hit) []record.Entry {
	var order []string
	groups := make(map[string][]record.Hit)
	for _, h := range hits {
		if _, ok := groups[h.Sequence]; !ok {
			order = append(order, h.Sequence)
		}
		groups[h.Sequence] = append(groups[h.Sequence], h)
	}

	entries := make([]record.Entry, 0, len(order))
	for _, seq := range order {
		entries = append(entries, mergeGroup(seq, groups[seq]))
	}
	return entries
}

func mergeGroup(seq string, hits []record.Hit) record.Entry {
	var accessions, catalogIDs, sciNames, commonNames, descriptions []string
	var taxonIDs []int
	var secondary []string
	for _, h := range hits {
		accessions = append(accessions, h.PrimaryAccession)
		catalogIDs = append(catalogIDs, h.UniProtkbID)
		sciNames = append(sciNames, h.Organism.ScientificName)
		commonNames = append(commonNames, h.Organism.CommonName)
		taxonIDs = append(taxonIDs, h.Organism.TaxonID)
		descriptions = append(descriptions, h.Description)
		secondary = append(secondary, h.SecondaryAccessions...)
	}

	return record.Entry{
		ID:                  gnuuid.New(seq).String(),
		PrimaryAccession:    distinctStrings(accessions),
		SecondaryAccessions: unionStrings(secondary),
		UniProtkbID:         distinctStrings(catalogIDs),
		Organism: record.OrganismGroup{
			ScientificName: distinctStrings(sciNames),
			CommonName:     distinctStrings(commonNames),
			TaxonID:        distinctInts(taxonIDs),
			// Hits sharing a sequence share a taxonomy; the lineage of
			// the first hit stands for the whole group.
			Lineage: hits[0].Organism.Lineage,
		},
		OrganismHosts: dedupeHosts(hits),
		Sequence:      seq,
		Description:   distinctStrings(descriptions),
	}
}

// distinctStrings collapses values into a scalar when they all agree and
// into a sorted list of distinct values otherwise.
func distinctStrings(vals []string) record.Strings {
	uniq := unionStrings(vals)
	if len(uniq) == 1 {
		return record.Strings{uniq[0]}
	}
	return record.Strings(uniq)
}

func distinctInts(vals []int) record.Ints {
	uniq := slices.Clone(vals)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	return record.Ints(uniq)
}

// unionStrings returns the sorted distinct values. The result is never
// nil-vs-empty sensitive: no values means an empty slice.
func unionStrings(vals []string) []string {
	uniq := slices.Clone(vals)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	if uniq == nil {
		uniq = []string{}
	}
	return uniq
}

// dedupeHosts unions hosts across a group, deduplicated by taxon id with
// the first occurrence winning even when other host fields differ. Hosts
// without a taxon id are dropped.
func dedupeHosts(hits []record.Hit) []record.Organism {
	seen := make(map[int]bool)
	res := []record.Organism{}
	for _, h := range hits {
		for _, host := range h.OrganismHosts {
			if host.TaxonID == 0 || seen[host.TaxonID] {
				continue
			}
			seen[host.TaxonID] = true
			res = append(res, host)
		}
	}
	return res
}

// dedupeByAccession is Stage B. Entries sharing a normalized accession
// key keep only the longest sequence; equal lengths keep the entry that
// appeared first in Stage A order. An accession occasionally yields two
// sequence groupings upstream (differing chain boundaries across isoform
// records); the longest is taken as the most complete capsid call.
func dedupeByAccession(entries []record.Entry) []record.Entry {
	kept := make([]record.Entry, 0, len(entries))
	byKey := make(map[string]int)
	for _, e := range entries {
		key := accessionKey(e.PrimaryAccession)
		idx, ok := byKey[key]
		if !ok {
			byKey[key] = len(kept)
			kept = append(kept, e)
			continue
		}
		if len(e.Sequence) > len(kept[idx].Sequence) {
			kept[idx] = e
		}
	}
	return kept
}

// accessionKey normalizes an accession field to an order-insensitive
// identity: sorted distinct non-empty values, or a lone empty string
// when none exist.
func accessionKey(accessions record.Strings) string {
	var vals []string
	for _, a := range accessions {
		if a != "" {
			vals = append(vals, a)
		}
	}
	if len(vals) == 0 {
		return ""
	}
	slices.Sort(vals)
	vals = slices.Compact(vals)
	return strings.Join(vals, ",")
}

// assignLabels gives every entry the short identifier used in clustering
// input headers. Duplicate labels are disambiguated with the entry's
// first accession so headers stay unique.
func assignLabels(entries []record.Entry) {
	seen := make(map[string]bool)
	for i := range entries {
		label := record.DeriveLabels(entries[i].UniProtkbID)
		if label == "" {
			label = entries[i].PrimaryAccession.Join(",")
		}
		if label != "" && seen[label] {
			if acc := entries[i].PrimaryAccession.First(); acc != "" {
				label = label + "_" + acc
			}
		}
		seen[label] = true
		entries[i].Label = label
	}
}
