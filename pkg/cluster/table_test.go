package cluster_test

import (
	"strings"
	"testing"

	"github.com/retroevo/capsid/pkg/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	in := strings.Join([]string{
		"FIVPE\tFIVPE",
		"FIVPE\tFIVWO",
		"",
		"HV1H2\tHV1H2",
		"FIVPE\tFIVWO", // duplicate pair
		"orphan-line-without-tab",
	}, "\n")

	table, err := cluster.ParseTable(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t,
		cluster.Assignment{Representative: "FIVPE", Member: "FIVWO"},
		table[1],
	)
}

func TestNumbering(t *testing.T) {
	table := cluster.Table{
		{Representative: "B", Member: "B"},
		{Representative: "B", Member: "X"},
		{Representative: "A", Member: "A"},
		{Representative: "C", Member: "C"},
		{Representative: "A", Member: "Y"},
	}

	nums := table.Numbering()

	// numbers follow first appearance of the representative,
	// not lexicographic order
	assert.Equal(t, 1, nums["B"])
	assert.Equal(t, 1, nums["X"])
	assert.Equal(t, 2, nums["A"])
	assert.Equal(t, 2, nums["Y"])
	assert.Equal(t, 3, nums["C"])
}

func TestStats(t *testing.T) {
	table := cluster.Table{
		{Representative: "A", Member: "A"},
		{Representative: "A", Member: "B"},
		{Representative: "A", Member: "C"},
		{Representative: "D", Member: "D"},
		{Representative: "E", Member: "E"},
		{Representative: "E", Member: "F"},
	}

	st := table.Stats()
	assert.Equal(t, 3, st.Clusters)
	assert.Equal(t, 6, st.Sequences)
	assert.Equal(t, 1, st.MinSize)
	assert.Equal(t, 3, st.MaxSize)
	assert.InDelta(t, 2.0, st.MeanSize, 1e-9)
	assert.Equal(t, 2, st.MedianSize)
}

func TestStatsEmpty(t *testing.T) {
	assert.Equal(t, cluster.Stats{}, cluster.Table{}.Stats())
}
