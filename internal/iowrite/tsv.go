package iowrite

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/retroevo/capsid/pkg/record"
)

// Column names follow the UniProtKB JSON field names, except for
// cluster_id which is not a UniProtKB field.
var tsvHeader = []string{
	"label",
	"primaryAccession",
	"secondaryAccessions",
	"uniProtkbId",
	"scientificName",
	"commonName",
	"taxonId",
	"genus",
	"sequence",
	"description",
	"cluster_id",
}

// TSV writes entries as a tab-separated table with one row per unique
// sequence. List-valued fields are comma-joined. The genus column is
// derived from the lineage: the taxon immediately below the configured
// subfamily marker.
func TSV(path string, entries []record.Entry, subfamilyMarker string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteTSVError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err = w.Write(tsvHeader); err != nil {
		return WriteTSVError(path, err)
	}
	for _, e := range entries {
		row := []string{
			e.Label,
			e.PrimaryAccession.Join(","),
			strings.Join(e.SecondaryAccessions, ","),
			e.UniProtkbID.Join(","),
			e.Organism.ScientificName.Join(","),
			e.Organism.CommonName.Join(","),
			e.Organism.TaxonID.Join(","),
			genus(e.Organism.Lineage, subfamilyMarker),
			e.Sequence,
			e.Description.Join(","),
			clusterID(e.ClusterID),
		}
		if err = w.Write(row); err != nil {
			return WriteTSVError(path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return WriteTSVError(path, err)
	}
	return nil
}

// genus returns the lineage element that follows the subfamily marker,
// or an empty string when the marker is absent or terminal.
func genus(lineage []string, marker string) string {
	for i, taxon := range lineage {
		if taxon == marker && i+1 < len(lineage) {
			return lineage[i+1]
		}
	}
	return ""
}

func clusterID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}
