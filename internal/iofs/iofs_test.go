package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "capsid"),
		filepath.Join(tmpDir, ".cache", "capsid"),
		filepath.Join(tmpDir, ".local", "share", "capsid", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	cfgPath := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	// existing file is not overwritten
	err = os.WriteFile(cfgPath, []byte("custom: true\n"), 0644)
	require.NoError(t, err)
	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)
	data, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "custom: true\n", string(data))
}

func TestEnsureDatasetsFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureDatasetsFile(tmpDir)
	require.NoError(t, err)

	data, err := os.ReadFile(config.DatasetsFilePath(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, DatasetsYAML, string(data))
}

// TestEmbeddedDatasetsParse verifies the shipped datasets.yaml is a
// valid configuration with the default dataset.
func TestEmbeddedDatasetsParse(t *testing.T) {
	var dsc datasets.Config
	err := yaml.Unmarshal([]byte(DatasetsYAML), &dsc)
	require.NoError(t, err)
	require.NotEmpty(t, dsc.DataSets)
	assert.Equal(t, 1, dsc.DataSets[0].ID)
	assert.NotEmpty(t, dsc.DataSets[0].Query)
}
