// Package extract finds capsid chains in raw protein records.
//
// A feature qualifies when it is a "Chain" whose description mentions
// capsid (but not nucleocapsid), both location boundaries carry the
// EXACT modifier, and the chain stops short of the last residue of the
// full sequence. Chains running to the final residue are open-ended
// C-terminal annotations, not complete capsid calls, and are rejected
// even though their boundaries are EXACT.
package extract

import (
	"strings"

	"github.com/retroevo/capsid/pkg/record"
)

const (
	chainType        = "Chain"
	capsidWord       = "capsid"
	nucleocapsidWord = "nucleocapsid"
	exactModifier    = "EXACT"
)

// FromRecord returns one Hit per qualifying capsid chain, in feature
// order. Missing metadata degrades to empty values; a record without a
// full sequence still yields hits with empty subsequences.
func FromRecord(rec record.Record) []record.Hit {
	full := rec.Sequence.Value

	var hits []record.Hit
	for _, f := range rec.Features {
		if f.Type != chainType {
			continue
		}
		desc := strings.ToLower(f.Description)
		if !strings.Contains(desc, capsidWord) ||
			strings.Contains(desc, nucleocapsidWord) {
			continue
		}
		loc := f.Location
		if loc.Start.Modifier != exactModifier ||
			loc.End.Modifier != exactModifier {
			continue
		}
		if full != "" && loc.End.Value >= len(full) {
			continue
		}

		hits = append(hits, record.Hit{
			PrimaryAccession:    rec.PrimaryAccession,
			SecondaryAccessions: rec.SecondaryAccessions,
			UniProtkbID:         rec.UniProtkbID,
			Organism:            rec.Organism,
			OrganismHosts:       hostDescriptors(rec.OrganismHosts),
			Sequence:            subsequence(full, loc.Start.Value, loc.End.Value),
			Description:         f.Description,
		})
	}
	return hits
}

// subsequence maps a 1-based inclusive span to a 0-based half-open
// slice. Out-of-range positions are clamped instead of failing.
func subsequence(full string, start, end int) string {
	if full == "" {
		return ""
	}
	if start < 1 {
		start = 1
	}
	if end > len(full) {
		end = len(full)
	}
	if end < start {
		return ""
	}
	return full[start-1 : end]
}

// hostDescriptors copies host organisms without their lineage; host
// lineages are not part of the curated output.
func hostDescriptors(hosts []record.Organism) []record.Organism {
	res := make([]record.Organism, 0, len(hosts))
	for _, h := range hosts {
		res = append(res, record.Organism{
			ScientificName: h.ScientificName,
			CommonName:     h.CommonName,
			TaxonID:        h.TaxonID,
		})
	}
	return res
}
