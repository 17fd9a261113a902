package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10000, cfg.DatasetSize)
	assert.Equal(t, int64(42), cfg.DatasetSeed)
	assert.Equal(t, 1000, cfg.HistorySessions)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9090\"\ndataset_size: 500\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 500, cfg.DatasetSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1000, cfg.HistorySessions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9090\"\n"), 0o644))
	t.Setenv("ASKSIEM_HTTP_ADDR", ":7070")
	t.Setenv("ASKSIEM_DATASET_SEED", "99")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, int64(99), cfg.DatasetSeed)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveSizes(t *testing.T) {
	t.Setenv("ASKSIEM_DATASET_SIZE", "0")
	_, err := Load("")
	assert.Error(t, err)
}
