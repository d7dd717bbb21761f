package record

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Strings is a scalar-or-list metadata field. A single element round-trips
// through JSON as a plain string, multiple elements as an array. Upstream
// records disagree on such fields often enough that collapsing has to be
// explicit rather than guessed at every consumption site.
type Strings []string

// MarshalJSON writes a plain string for empty or single-valued fields
// and an array otherwise.
func (ss Strings) MarshalJSON() ([]byte, error) {
	switch len(ss) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(ss[0])
	default:
		return json.Marshal([]string(ss))
	}
}

// UnmarshalJSON accepts both the scalar and the list wire shape.
func (ss *Strings) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*ss = nil
		} else {
			*ss = Strings{s}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*ss = Strings(list)
	}
	return nil
}

// IsSingle reports whether all contributing hits agreed on one value.
func (ss Strings) IsSingle() bool {
	return len(ss) <= 1
}

// First returns the first value or an empty string.
func (ss Strings) First() string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// Join concatenates non-empty values with sep.
func (ss Strings) Join(sep string) string {
	var parts []string
	for _, s := range ss {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// Ints is the scalar-or-list counterpart of Strings for numeric fields
// such as taxon ids.
type Ints []int

// MarshalJSON writes a plain number for single-valued fields and an
// array otherwise. An empty field marshals as 0.
func (ii Ints) MarshalJSON() ([]byte, error) {
	switch len(ii) {
	case 0:
		return json.Marshal(0)
	case 1:
		return json.Marshal(ii[0])
	default:
		return json.Marshal([]int(ii))
	}
}

// UnmarshalJSON accepts both the scalar and the list wire shape.
func (ii *Ints) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		if i == 0 {
			*ii = nil
		} else {
			*ii = Ints{i}
		}
		return nil
	}
	var list []int
	if err := json.Unmarshal(data, &list); err == nil {
		*ii = Ints(list)
	}
	return nil
}

// Join concatenates non-zero values with sep.
func (ii Ints) Join(sep string) string {
	var parts []string
	for _, i := range ii {
		if i != 0 {
			parts = append(parts, strconv.Itoa(i))
		}
	}
	return strings.Join(parts, sep)
}
