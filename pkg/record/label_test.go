package record_test

import (
	"testing"

	"github.com/retroevo/capsid/pkg/record"
	"github.com/stretchr/testify/assert"
)

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res string
	}{
		{"standard id", "GAG_FIVWO", "FIVWO"},
		{"no underscore", "P03345", ""},
		{"empty", "", ""},
		{"multiple underscores keep the tail", "POL_HV1_B", "HV1_B"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, record.DeriveLabel(v.in), v.msg)
	}
}

func TestDeriveLabels(t *testing.T) {
	tests := []struct {
		msg string
		in  record.Strings
		res string
	}{
		{"single", record.Strings{"GAG_FIVWO"}, "FIVWO"},
		{
			"several",
			record.Strings{"GAG_FIVWO", "GAG_FIVPE"},
			"FIVWO,FIVPE",
		},
		{"skips underivable", record.Strings{"GAG_FIVWO", "P03345"}, "FIVWO"},
		{"empty", nil, ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, record.DeriveLabels(v.in), v.msg)
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		msg string
		e   record.Entry
		res string
	}{
		{
			"precomputed label wins",
			record.Entry{
				Label:       "FIVWO",
				UniProtkbID: record.Strings{"GAG_FIVPE"},
			},
			"FIVWO",
		},
		{
			"derived from catalog ids",
			record.Entry{UniProtkbID: record.Strings{"GAG_FIVPE"}},
			"FIVPE",
		},
		{
			"falls back to accessions",
			record.Entry{
				UniProtkbID:      record.Strings{"P03345"},
				PrimaryAccession: record.Strings{"P03345", "P0C6F2"},
			},
			"P03345,P0C6F2",
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.e.LookupKey(), v.msg)
	}
}
