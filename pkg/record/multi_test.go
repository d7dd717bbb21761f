package record_test

import (
	"encoding/json"
	"testing"

	"github.com/retroevo/capsid/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringsMarshal(t *testing.T) {
	tests := []struct {
		msg string
		val record.Strings
		res string
	}{
		{"empty", record.Strings{}, `""`},
		{"nil", nil, `""`},
		{"single", record.Strings{"P03345"}, `"P03345"`},
		{
			"multiple",
			record.Strings{"P03345", "P0C6F2"},
			`["P03345","P0C6F2"]`,
		},
	}

	for _, v := range tests {
		data, err := json.Marshal(v.val)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, string(data), v.msg)
	}
}

func TestStringsUnmarshal(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res record.Strings
	}{
		{"scalar", `"P03345"`, record.Strings{"P03345"}},
		{"list", `["P03345","P0C6F2"]`, record.Strings{"P03345", "P0C6F2"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}

	for _, v := range tests {
		var s record.Strings
		err := json.Unmarshal([]byte(v.in), &s)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, s, v.msg)
	}
}

func TestStringsJoin(t *testing.T) {
	tests := []struct {
		msg string
		val record.Strings
		res string
	}{
		{"skips empties", record.Strings{"", "A", "", "B"}, "A,B"},
		{"all empty", record.Strings{"", ""}, ""},
		{"single", record.Strings{"A"}, "A"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.val.Join(","), v.msg)
	}
}

func TestIntsRoundTrip(t *testing.T) {
	tests := []struct {
		msg string
		val record.Ints
		res string
	}{
		{"empty", record.Ints{}, `0`},
		{"single", record.Ints{11746}, `11746`},
		{"multiple", record.Ints{11746, 11757}, `[11746,11757]`},
	}

	for _, v := range tests {
		data, err := json.Marshal(v.val)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, string(data), v.msg)
	}

	var ii record.Ints
	err := json.Unmarshal([]byte(`[11746,11757]`), &ii)
	require.NoError(t, err)
	assert.Equal(t, record.Ints{11746, 11757}, ii)

	err = json.Unmarshal([]byte(`11746`), &ii)
	require.NoError(t, err)
	assert.Equal(t, record.Ints{11746}, ii)
}

func TestStringsFirst(t *testing.T) {
	assert.Equal(t, "", record.Strings{}.First())
	assert.Equal(t, "A", record.Strings{"A", "B"}.First())
}
