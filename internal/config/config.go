// Package config loads and validates terrain pipeline configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// #region types

// Config is the full pipeline configuration.
type Config struct {
	Terrain    TerrainConfig    `toml:"terrain" json:"terrain" yaml:"terrain"`
	Trajectory TrajectoryConfig `toml:"trajectory" json:"trajectory" yaml:"trajectory"`
	Density    DensityConfig    `toml:"density" json:"density" yaml:"density"`
	Workers    int              `toml:"workers" json:"workers" yaml:"workers"`
	Storage    StorageConfig    `toml:"storage" json:"storage" yaml:"storage"`
	Scorer     ScorerConfig     `toml:"scorer" json:"scorer" yaml:"scorer"`
	Logging    LoggingConfig    `toml:"logging" json:"logging" yaml:"logging"`
}

// TerrainConfig shapes the per-conversation backdrop.
type TerrainConfig struct {
	Size         int    `toml:"size" json:"size" yaml:"size"`
	MetricMode   string `toml:"metric_mode" json:"metric_mode" yaml:"metric_mode"`
	ContourCount int    `toml:"contour_count" json:"contour_count" yaml:"contour_count"`
}

// TrajectoryConfig tunes path synthesis.
type TrajectoryConfig struct {
	TargetPull  float64 `toml:"target_pull" json:"target_pull" yaml:"target_pull"`
	DriftWeight float64 `toml:"drift_weight" json:"drift_weight" yaml:"drift_weight"`
}

// DensityConfig shapes the multi-conversation density field.
type DensityConfig struct {
	Size   int    `toml:"size" json:"size" yaml:"size"`
	Source string `toml:"source" json:"source" yaml:"source"` // "affect" | "authority"
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"`
}

// ScorerConfig points at the external message scorer. Empty address disables it.
type ScorerConfig struct {
	Address   string `toml:"address" json:"address" yaml:"address"`
	TimeoutMS int    `toml:"timeout_ms" json:"timeout_ms" yaml:"timeout_ms"`
}

// Timeout returns the per-call timeout.
func (s ScorerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`
	Format string `toml:"format" json:"format" yaml:"format"`
}

// #endregion types

// #region defaults

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Size:         64,
			MetricMode:   "composite",
			ContourCount: 20,
		},
		Trajectory: TrajectoryConfig{
			TargetPull:  0.6,
			DriftWeight: 5,
		},
		Density: DensityConfig{
			Size:   64,
			Source: "affect",
		},
		Workers: 4,
		Storage: StorageConfig{Path: "terrain.db"},
		Scorer:  ScorerConfig{TimeoutMS: 2000},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// #endregion defaults

// #region env

// ApplyEnvOverrides applies TERRAIN_* environment variables. Unparseable
// numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	c.Storage.Path = envOr("TERRAIN_STORAGE_PATH", c.Storage.Path)
	c.Scorer.Address = envOr("TERRAIN_SCORER_ADDR", c.Scorer.Address)
	c.Logging.Level = envOr("TERRAIN_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envOr("TERRAIN_LOG_FORMAT", c.Logging.Format)
	c.Terrain.MetricMode = envOr("TERRAIN_METRIC_MODE", c.Terrain.MetricMode)
	c.Density.Source = envOr("TERRAIN_DENSITY_SOURCE", c.Density.Source)
	c.Terrain.Size = envInt("TERRAIN_SIZE", c.Terrain.Size)
	c.Density.Size = envInt("TERRAIN_DENSITY_SIZE", c.Density.Size)
	c.Workers = envInt("TERRAIN_WORKERS", c.Workers)
	c.Scorer.TimeoutMS = envInt("TERRAIN_SCORER_TIMEOUT_MS", c.Scorer.TimeoutMS)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// #endregion env

// #region validate

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Terrain.Size < 2 {
		errs = append(errs, fmt.Errorf("terrain.size must be >= 2, got %d", c.Terrain.Size))
	}
	if c.Terrain.ContourCount < 0 {
		errs = append(errs, fmt.Errorf("terrain.contour_count must be >= 0, got %d", c.Terrain.ContourCount))
	}
	switch c.Terrain.MetricMode {
	case "uncertainty", "affect", "composite":
	default:
		errs = append(errs, fmt.Errorf("terrain.metric_mode %q is not one of uncertainty, affect, composite", c.Terrain.MetricMode))
	}
	if c.Density.Size < 2 {
		errs = append(errs, fmt.Errorf("density.size must be >= 2, got %d", c.Density.Size))
	}
	if c.Density.Source != "affect" && c.Density.Source != "authority" {
		errs = append(errs, fmt.Errorf("density.source %q is not affect or authority", c.Density.Source))
	}
	if c.Trajectory.TargetPull <= 0 || c.Trajectory.DriftWeight <= 0 {
		errs = append(errs, errors.New("trajectory.target_pull and trajectory.drift_weight must be positive"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if c.Scorer.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("scorer.timeout_ms must be >= 0, got %d", c.Scorer.TimeoutMS))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not text or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// #endregion validate
