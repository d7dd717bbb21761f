// Package record defines the data model of the capsid pipeline: raw
// UniProt protein entries as served by the REST API, per-feature
// extraction hits, and aggregated unique-sequence entries.
//
// This package has no I/O dependencies. Absent or malformed fields
// degrade to zero values; nothing in this package returns an error for
// data-shape problems.
package record

import (
	"bytes"
	"encoding/json"
)

// Position is one boundary of a feature location. Modifier reports the
// annotation confidence of the boundary; only "EXACT" positions delimit
// a trustworthy capsid chain.
type Position struct {
	Value    int    `json:"value"`
	Modifier string `json:"modifier"`
}

// Location is a 1-based inclusive feature span, UniProt style.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Feature is one annotated region of a protein entry.
type Feature struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

// Organism describes a taxon: the virus the protein belongs to, or one
// of the organisms it infects. Host descriptors carry no lineage.
type Organism struct {
	ScientificName string   `json:"scientificName"`
	CommonName     string   `json:"commonName"`
	TaxonID        int      `json:"taxonId"`
	Lineage        []string `json:"lineage,omitempty"`
}

// Seq normalizes the two wire shapes of a protein sequence: a raw
// string, or an object wrapping the string in a "value" field. Internal
// code only ever sees the plain string.
type Seq struct {
	Value string
}

type seqWrapper struct {
	Value string `json:"value"`
}

// UnmarshalJSON accepts both wire shapes. Shapes that are neither a
// string nor an object with a "value" field unmarshal to an empty
// sequence instead of failing.
func (s *Seq) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.Value = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			s.Value = str
		}
		return nil
	}
	var w seqWrapper
	if err := json.Unmarshal(data, &w); err == nil {
		s.Value = w.Value
	}
	return nil
}

// MarshalJSON writes the wrapped shape, matching the UniProt entry
// format raw records are stored in.
func (s Seq) MarshalJSON() ([]byte, error) {
	return json.Marshal(seqWrapper{Value: s.Value})
}

// Record is one raw protein entry. Every field is optional.
type Record struct {
	PrimaryAccession    string     `json:"primaryAccession"`
	SecondaryAccessions []string   `json:"secondaryAccessions,omitempty"`
	UniProtkbID         string     `json:"uniProtkbId"`
	Organism            Organism   `json:"organism"`
	OrganismHosts       []Organism `json:"organismHosts,omitempty"`
	Sequence            Seq        `json:"sequence"`
	Features            []Feature  `json:"features,omitempty"`
}

// Hit is one qualifying capsid-chain extraction from a single record.
// Sequence holds the extracted subsequence, not the full protein.
type Hit struct {
	PrimaryAccession    string     `json:"primaryAccession"`
	SecondaryAccessions []string   `json:"secondaryAccessions"`
	UniProtkbID         string     `json:"uniProtkbId"`
	Organism            Organism   `json:"organism"`
	OrganismHosts       []Organism `json:"organismHosts"`
	Sequence            string     `json:"sequence"`
	Description         string     `json:"description"`
}

// OrganismGroup mirrors Organism after aggregation: scalar fields
// become scalar-or-list depending on whether contributing hits agreed.
// Lineage is taken verbatim from the first contributing hit.
type OrganismGroup struct {
	ScientificName Strings  `json:"scientificName"`
	CommonName     Strings  `json:"commonName"`
	TaxonID        Ints     `json:"taxonId"`
	Lineage        []string `json:"lineage,omitempty"`
}

// Entry is one unique capsid sequence with metadata merged across all
// hits that produced it. ClusterID is nil until reconciliation; nil
// afterwards means no cluster matched, which is a normal, countable
// outcome rather than an error.
type Entry struct {
	ID                  string        `json:"id,omitempty"`
	Label               string        `json:"label,omitempty"`
	PrimaryAccession    Strings       `json:"primaryAccession"`
	SecondaryAccessions []string      `json:"secondaryAccessions"`
	UniProtkbID         Strings       `json:"uniProtkbId"`
	Organism            OrganismGroup `json:"organism"`
	OrganismHosts       []Organism    `json:"organismHosts"`
	Sequence            string        `json:"sequence"`
	Description         Strings       `json:"description,omitempty"`
	ClusterID           *int          `json:"cluster_id"`
}
