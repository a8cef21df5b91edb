package landscape

import (
	"github.com/danielpatrickdp/convo-terrain/internal/affect"
	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/config"
	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/eval"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/signals"
	"github.com/danielpatrickdp/convo-terrain/internal/terrain"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

// #region options

// Options bundles every knob of a landscape run.
type Options struct {
	TerrainSize     int
	ContourCount    int
	MetricMode      terrain.MetricMode
	Trajectory      trajectory.Options
	ElevationMode   affect.Mode
	DensitySize     int
	DensityContours int
	Workers         int
	Validate        bool
}

// DefaultOptions returns the standard run settings.
func DefaultOptions() Options {
	return Options{
		TerrainSize:     64,
		ContourCount:    20,
		MetricMode:      terrain.ModeComposite,
		Trajectory:      trajectory.DefaultOptions(),
		ElevationMode:   affect.ModeAffect,
		DensitySize:     64,
		DensityContours: 20,
		Workers:         4,
		Validate:        true,
	}
}

// OptionsFromConfig maps a loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	o.TerrainSize = cfg.Terrain.Size
	o.ContourCount = cfg.Terrain.ContourCount
	o.DensityContours = cfg.Terrain.ContourCount
	o.MetricMode = terrain.ParseMetricMode(cfg.Terrain.MetricMode)
	o.Trajectory.TargetPull = cfg.Trajectory.TargetPull
	o.Trajectory.DriftWeight = cfg.Trajectory.DriftWeight
	o.ElevationMode = affect.ParseMode(cfg.Density.Source)
	o.DensitySize = cfg.Density.Size
	o.Workers = cfg.Workers
	return o
}

// #endregion options

// #region result

// Result is everything derived from one conversation.
type Result struct {
	ID          string                  `json:"id"`
	Seed        int32                   `json:"seed"`
	Params      terrain.Params          `json:"params"`
	Heightmap   field.Grid              `json:"heightmap"`
	Contours    []contour.Contour       `json:"contours"`
	Target      trajectory.Target       `json:"target"`
	Coordinates []trajectory.Coordinate `json:"coordinates"`
	Points      []affect.PathPoint      `json:"points"`
	Tiers       []signals.Tier          `json:"signal_tiers"`
	Intensities []float64               `json:"intensities"`
	Stats       cluster.Stats           `json:"stats"`
	Decision    cluster.Decision        `json:"decision"`
	Eval        *eval.EvalResult        `json:"eval,omitempty"`
}

// Batch is the outcome of a multi-conversation run.
type Batch struct {
	RunID           string            `json:"run_id"`
	Results         []Result          `json:"results"`
	Density         field.Grid        `json:"density"`
	DensityContours []contour.Contour `json:"density_contours"`
	Summary         Summary           `json:"summary"`
}

// Summary aggregates a batch for dashboards.
type Summary struct {
	Conversations int                   `json:"conversations"`
	Points        int                   `json:"points"`
	SkippedPoints int                   `json:"skipped_points"`
	Clusters      map[cluster.Label]int `json:"clusters"`
	Tiers         map[cluster.Tier]int  `json:"tiers"`
	EvalFailures  int                   `json:"eval_failures"`
}

// #endregion result
