package eval

import (
	"fmt"

	"github.com/danielpatrickdp/convo-terrain/internal/field"
)

// #region eval-harness
// EvalHarness checks pipeline output against the guarantees downstream
// renderers rely on.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates out and returns pass/fail with one metric per check.
func (h *EvalHarness) Run(out Output) EvalResult {
	var metrics []EvalMetric
	var failReasons []string
	check := func(name string, value float64, pass bool, reason string) {
		metrics = append(metrics, EvalMetric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, reason)
		}
	}

	// 1. Heightmap cells finite and within bounds
	nonFinite, outOfRange := h.gridViolations(out.Heightmap)
	check("heightmap_non_finite", float64(nonFinite), nonFinite == 0,
		fmt.Sprintf("%d heightmap cells are not finite", nonFinite))
	check("heightmap_out_of_range", float64(outOfRange), outOfRange == 0,
		fmt.Sprintf("%d heightmap cells outside [%.2f, %.2f]", outOfRange, h.config.MinElevation, h.config.MaxElevation))

	// 2. Contours strictly ascending by elevation
	disorder := contourDisorder(out)
	check("contour_disorder", float64(disorder), disorder == 0,
		fmt.Sprintf("%d contours out of ascending order", disorder))

	// 3. Path length and bounds
	if out.ExpectedPoints > 0 {
		n := len(out.Coordinates)
		check("path_length", float64(n), n == out.ExpectedPoints,
			fmt.Sprintf("path has %d points, want %d", n, out.ExpectedPoints))
	}
	outside := h.pathViolations(out)
	check("path_out_of_bounds", float64(outside), outside == 0,
		fmt.Sprintf("%d path points outside their margin", outside))

	// 4. Density non-negative
	if !out.Density.Empty() {
		var negative int
		for _, v := range out.Density.Cells {
			if v < 0 || !field.Finite(v) {
				negative++
			}
		}
		check("density_invalid", float64(negative), negative == 0,
			fmt.Sprintf("%d density cells negative or not finite", negative))
	}

	reason := "all checks passed"
	if len(failReasons) == 1 {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
	} else if len(failReasons) > 1 {
		reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
	}

	return EvalResult{
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
func (h *EvalHarness) gridViolations(g field.Grid) (nonFinite, outOfRange int) {
	for _, v := range g.Cells {
		if !field.Finite(v) {
			nonFinite++
			continue
		}
		if v < h.config.MinElevation-h.config.Epsilon || v > h.config.MaxElevation+h.config.Epsilon {
			outOfRange++
		}
	}
	return nonFinite, outOfRange
}

func contourDisorder(out Output) int {
	var n int
	for i := 1; i < len(out.Contours); i++ {
		if out.Contours[i].Elevation <= out.Contours[i-1].Elevation {
			n++
		}
	}
	return n
}

func (h *EvalHarness) pathViolations(out Output) int {
	var n int
	for _, c := range out.Coordinates {
		lo, hi := c.Margin-h.config.Epsilon, 1-c.Margin+h.config.Epsilon
		if !field.Finite(c.X) || !field.Finite(c.Y) || c.X < lo || c.X > hi || c.Y < lo || c.Y > hi {
			n++
		}
	}
	return n
}

// #endregion helpers
