// Package iodatasets loads the datasets.yaml configuration from the
// user's config directory.
package iodatasets

import (
	"fmt"
	"os"

	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"gopkg.in/yaml.v3"
)

type iodatasets struct {
	cfg *config.Config
}

func New(cfg *config.Config) datasets.Datasets {
	res := iodatasets{cfg: cfg}
	return &res
}

func (d *iodatasets) Load() (*datasets.Config, error) {
	datasetsPath := config.DatasetsFilePath(d.cfg.HomeDir)
	datasetsConfig, err := loadDatasetsConfig(datasetsPath)
	if err != nil {
		return nil, DatasetsConfigError(datasetsPath, err)
	}
	return datasetsConfig, nil
}

func loadDatasetsConfig(path string) (*datasets.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read datasets config file: %w", err)
	}

	var res datasets.Config
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse datasets config: %w", err)
	}

	return &res, nil
}
