package eval

import (
	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

// #region eval-config
// EvalConfig holds thresholds for output validation.
type EvalConfig struct {
	MinElevation float64 // heightmap cells below this fail
	MaxElevation float64 // heightmap cells above this fail
	Epsilon      float64 // slack for floating-point bound checks
}

// DefaultEvalConfig returns the bounds the heightmap generator guarantees.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MinElevation: 0.1,
		MaxElevation: 1.2,
		Epsilon:      1e-9,
	}
}

// #endregion eval-config

// #region eval-input
// Output bundles one pipeline run's artefacts for validation.
// Density is optional and only checked when non-empty.
type Output struct {
	Heightmap      field.Grid
	Contours       []contour.Contour
	Coordinates    []trajectory.Coordinate
	ExpectedPoints int
	Density        field.Grid
}

// #endregion eval-input

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of validation.
type EvalResult struct {
	Passed  bool         `json:"passed"`
	Metrics []EvalMetric `json:"metrics"`
	Reason  string       `json:"reason"`
}

// #endregion eval-result
