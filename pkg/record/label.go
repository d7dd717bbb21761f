package record

import "strings"

// DeriveLabel maps a catalog identifier to its short organism mnemonic
// by taking the part after the first underscore: "GAG_FIVWO" becomes
// "FIVWO". Identifiers without an underscore yield an empty string.
func DeriveLabel(catalogID string) string {
	_, label, found := strings.Cut(catalogID, "_")
	if !found {
		return ""
	}
	return label
}

// DeriveLabels derives a label from each identifier independently and
// joins the non-empty results with commas.
func DeriveLabels(catalogIDs Strings) string {
	var labels []string
	for _, id := range catalogIDs {
		if l := DeriveLabel(id); l != "" {
			labels = append(labels, l)
		}
	}
	return strings.Join(labels, ",")
}

// LookupKey is the identifier an entry is known by in clustering input
// files. The precomputed Label wins; without it the key is re-derived
// from the catalog ids, and as a last resort from joined accessions.
func (e Entry) LookupKey() string {
	if e.Label != "" {
		return e.Label
	}
	if key := DeriveLabels(e.UniProtkbID); key != "" {
		return key
	}
	return e.PrimaryAccession.Join(",")
}
