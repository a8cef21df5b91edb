package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoad_Formats(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load("testdata/terrain.yaml")
		require.NoError(t, err)
		assert.Equal(t, 32, cfg.Terrain.Size)
		assert.Equal(t, "uncertainty", cfg.Terrain.MetricMode)
		assert.Equal(t, 20, cfg.Terrain.ContourCount, "unset fields keep defaults")
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "localhost:50051", cfg.Scorer.Address)
		assert.Equal(t, 500*time.Millisecond, cfg.Scorer.Timeout())
	})
	t.Run("toml", func(t *testing.T) {
		cfg, err := Load("testdata/terrain.toml")
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, 48, cfg.Density.Size)
		assert.Equal(t, "authority", cfg.Density.Source)
		assert.Equal(t, "json", cfg.Logging.Format)
	})
	t.Run("json", func(t *testing.T) {
		cfg, err := Load("testdata/terrain.json")
		require.NoError(t, err)
		assert.InDelta(t, 0.4, cfg.Trajectory.TargetPull, 1e-12)
		assert.Equal(t, "/tmp/landscape.db", cfg.Storage.Path)
		assert.Equal(t, 64, cfg.Terrain.Size)
	})
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terrain.size")
	assert.Contains(t, err.Error(), "metric_mode")
	assert.Contains(t, err.Error(), "workers")
}

func TestLoad_BadSyntaxAndExtension(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("workers = = 3"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	ini := filepath.Join(dir, "conf.ini")
	require.NoError(t, os.WriteFile(ini, []byte("workers=3"), 0o644))
	_, err = Load(ini)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TERRAIN_STORAGE_PATH", "/var/terrain.db")
	t.Setenv("TERRAIN_WORKERS", "12")
	t.Setenv("TERRAIN_SIZE", "not-a-number")
	t.Setenv("TERRAIN_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "/var/terrain.db", cfg.Storage.Path)
	assert.Equal(t, 12, cfg.Workers)
	assert.Equal(t, 64, cfg.Terrain.Size, "unparseable values are ignored")
	assert.Equal(t, "debug", cfg.Logging.Level)
}
