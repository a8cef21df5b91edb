package terrain

import "strings"

// #region metric-mode

// MetricMode selects which conversation metric shapes the terrain.
type MetricMode string

const (
	ModeUncertainty MetricMode = "uncertainty"
	ModeAffect      MetricMode = "affect"
	ModeComposite   MetricMode = "composite"
)

// ParseMetricMode normalizes a mode string. Unknown or empty values map to composite.
func ParseMetricMode(s string) MetricMode {
	switch MetricMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeUncertainty:
		return ModeUncertainty
	case ModeAffect:
		return ModeAffect
	default:
		return ModeComposite
	}
}

// #endregion metric-mode

// #region params

// Params is the small input set that shapes a generated heightmap.
type Params struct {
	AverageConfidence float64    `json:"average_confidence" yaml:"average_confidence"`
	Intensity         float64    `json:"intensity" yaml:"intensity"`
	MetricMode        MetricMode `json:"metric_mode" yaml:"metric_mode"`
}

// DefaultParams returns neutral inputs: confidence and intensity at 0.5, composite mode.
func DefaultParams() Params {
	return Params{AverageConfidence: 0.5, Intensity: 0.5, MetricMode: ModeComposite}
}

// #endregion params

// #region shape

// shape holds the derived generator constants for one Params value.
type shape struct {
	baseHeight  float64
	heightRange float64
	complexity  float64
	variation   float64
	peakBoost   float64
}

const (
	minElevation = 0.1
	maxElevation = 1.2
)

// #endregion shape
