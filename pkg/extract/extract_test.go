package extract_test

import (
	"strings"
	"testing"

	"github.com/retroevo/capsid/pkg/extract"
	"github.com/retroevo/capsid/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(desc string, start, end int, mods ...string) record.Feature {
	startMod, endMod := "EXACT", "EXACT"
	if len(mods) == 2 {
		startMod, endMod = mods[0], mods[1]
	}
	return record.Feature{
		Type:        "Chain",
		Description: desc,
		Location: record.Location{
			Start: record.Position{Value: start, Modifier: startMod},
			End:   record.Position{Value: end, Modifier: endMod},
		},
	}
}

func TestFromRecordFilters(t *testing.T) {
	full := strings.Repeat("A", 9) + "CAPSIDSEQ" + strings.Repeat("A", 10)

	tests := []struct {
		msg  string
		f    record.Feature
		hits int
	}{
		{"qualifying chain", chain("Capsid protein p24", 10, 18), 1},
		{"case-insensitive match", chain("CAPSID protein", 10, 18), 1},
		{
			"wrong feature type",
			record.Feature{
				Type:        "Region",
				Description: "Capsid protein",
				Location: record.Location{
					Start: record.Position{Value: 10, Modifier: "EXACT"},
					End:   record.Position{Value: 18, Modifier: "EXACT"},
				},
			},
			0,
		},
		{"no capsid in description", chain("Matrix protein p17", 10, 18), 0},
		{"nucleocapsid rejected", chain("Nucleocapsid protein p7", 10, 18), 0},
		{
			"inexact start",
			chain("Capsid protein", 10, 18, "OUTSIDE", "EXACT"),
			0,
		},
		{
			"inexact end",
			chain("Capsid protein", 10, 18, "EXACT", "UNSURE"),
			0,
		},
		{"chain runs to the last residue", chain("Capsid protein", 10, 28), 0},
		{"chain ends just before the last residue", chain("Capsid protein", 10, 27), 1},
	}

	for _, v := range tests {
		rec := record.Record{
			PrimaryAccession: "P00001",
			Sequence:         record.Seq{Value: full},
			Features:         []record.Feature{v.f},
		}
		hits := extract.FromRecord(rec)
		assert.Len(t, hits, v.hits, v.msg)
	}
}

func TestFromRecordSubsequence(t *testing.T) {
	full := "MGARASVLSGGELDRWEKIRLRPGGKKKYKLKHIVWASRELERF"

	rec := record.Record{
		PrimaryAccession: "P04591",
		UniProtkbID:      "GAG_HV1H2",
		Sequence:         record.Seq{Value: full},
		Features: []record.Feature{
			chain("Capsid protein p24", 3, 10),
		},
	}

	hits := extract.FromRecord(rec)
	require.Len(t, hits, 1)
	// 1-based inclusive positions 3..10
	assert.Equal(t, full[2:10], hits[0].Sequence)
	assert.Equal(t, "P04591", hits[0].PrimaryAccession)
	assert.Equal(t, "Capsid protein p24", hits[0].Description)
}

func TestFromRecordMultipleChains(t *testing.T) {
	full := strings.Repeat("X", 50)
	rec := record.Record{
		Sequence: record.Seq{Value: full},
		Features: []record.Feature{
			chain("Capsid protein p27", 1, 10),
			chain("Matrix protein", 11, 20),
			chain("Capsid protein p24", 21, 30),
		},
	}

	hits := extract.FromRecord(rec)
	require.Len(t, hits, 2)
	// feature order is preserved
	assert.Equal(t, "Capsid protein p27", hits[0].Description)
	assert.Equal(t, "Capsid protein p24", hits[1].Description)
}

func TestFromRecordMissingSequence(t *testing.T) {
	rec := record.Record{
		PrimaryAccession: "P00001",
		Features: []record.Feature{
			chain("Capsid protein", 10, 20),
		},
	}

	hits := extract.FromRecord(rec)
	require.Len(t, hits, 1)
	assert.Empty(t, hits[0].Sequence)
}

func TestFromRecordHostLineageStripped(t *testing.T) {
	full := strings.Repeat("X", 50)
	rec := record.Record{
		Sequence: record.Seq{Value: full},
		OrganismHosts: []record.Organism{
			{
				ScientificName: "Felis catus",
				CommonName:     "Cat",
				TaxonID:        9685,
				Lineage:        []string{"Eukaryota", "Metazoa"},
			},
		},
		Features: []record.Feature{chain("Capsid protein", 1, 10)},
	}

	hits := extract.FromRecord(rec)
	require.Len(t, hits, 1)
	require.Len(t, hits[0].OrganismHosts, 1)
	assert.Equal(t, "Felis catus", hits[0].OrganismHosts[0].ScientificName)
	assert.Nil(t, hits[0].OrganismHosts[0].Lineage)
}
