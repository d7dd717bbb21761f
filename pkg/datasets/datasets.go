// Package datasets defines the schema for datasets.yaml, which names the
// UniProt queries the pipeline can download. Users edit the file to add
// custom datasets; the embedded default carries the Orthoretrovirinae
// Gag dataset the pipeline was built for.
package datasets

// Datasets loads the datasets configuration.
type Datasets interface {
	Load() (*Config, error)
}

// Config represents the complete datasets.yaml file.
type Config struct {
	// DataSets lists the downloadable datasets.
	DataSets []Dataset `yaml:"data_sets"`
}

// Dataset describes one named UniProt download.
type Dataset struct {
	// ID identifies the dataset in CLI flags.
	ID int `yaml:"id"`

	// Name is a short human-readable title, also used for the download
	// directory.
	Name string `yaml:"name"`

	// Query is a UniProt REST query expression.
	Query string `yaml:"query"`

	// BatchSize overrides the configured page size when positive.
	BatchSize int `yaml:"batch_size"`
}

// Filter returns the datasets matching the requested ids, in config
// order. An empty id list selects everything.
func (c *Config) Filter(ids []int) []Dataset {
	if len(ids) == 0 {
		return c.DataSets
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var res []Dataset
	for _, ds := range c.DataSets {
		if want[ds.ID] {
			res = append(res, ds)
		}
	}
	return res
}
