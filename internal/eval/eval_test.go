package eval

import (
	"math"
	"strings"
	"testing"

	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/terrain"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

func validOutput() Output {
	grid := terrain.Generate(16, 7, terrain.DefaultParams())
	scores := []trajectory.FeatureScore{{Expressiveness: 0.7, Alignment: 0.3}, {Expressiveness: 0.2, Alignment: 0.8}}
	return Output{
		Heightmap:      grid,
		Contours:       contour.Generate(grid, 10),
		Coordinates:    trajectory.Synthesize(scores, trajectory.TargetFor(0.3, 0.6), trajectory.DefaultOptions()),
		ExpectedPoints: 2,
	}
}

func metric(r EvalResult, name string) (EvalMetric, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return EvalMetric{}, false
}

func TestEvalPassesOnGeneratedOutput(t *testing.T) {
	h := NewEvalHarness(DefaultEvalConfig())
	result := h.Run(validOutput())

	if !result.Passed {
		t.Fatalf("expected pass, got fail: %s", result.Reason)
	}
	if result.Reason != "all checks passed" {
		t.Errorf("unexpected reason: %s", result.Reason)
	}
	if _, ok := metric(result, "density_invalid"); ok {
		t.Error("density check should be skipped without a density grid")
	}
}

func TestEvalFailsOnHeightmapOutOfRange(t *testing.T) {
	out := validOutput()
	out.Heightmap = out.Heightmap.Clone()
	out.Heightmap.Cells[0] = 5
	out.Heightmap.Cells[1] = math.NaN()

	result := NewEvalHarness(DefaultEvalConfig()).Run(out)
	if result.Passed {
		t.Fatal("expected fail on bad heightmap")
	}
	if m, _ := metric(result, "heightmap_out_of_range"); m.Value != 1 || m.Pass {
		t.Errorf("unexpected range metric: %+v", m)
	}
	if m, _ := metric(result, "heightmap_non_finite"); m.Value != 1 || m.Pass {
		t.Errorf("unexpected finite metric: %+v", m)
	}
	if !strings.Contains(result.Reason, "2 checks") {
		t.Errorf("expected multi-check reason, got %s", result.Reason)
	}
}

func TestEvalFailsOnContourOrder(t *testing.T) {
	out := validOutput()
	out.Contours = []contour.Contour{{Elevation: 0.5}, {Elevation: 0.3}}
	result := NewEvalHarness(DefaultEvalConfig()).Run(out)
	if result.Passed {
		t.Fatal("expected fail on descending contours")
	}
}

func TestEvalFailsOnPathViolations(t *testing.T) {
	out := validOutput()
	out.Coordinates = append(out.Coordinates, trajectory.Coordinate{X: 0.99, Y: 0.5, Margin: 0.05})
	result := NewEvalHarness(DefaultEvalConfig()).Run(out)
	if result.Passed {
		t.Fatal("expected fail")
	}
	if m, _ := metric(result, "path_length"); m.Pass {
		t.Error("expected path length failure")
	}
	if m, _ := metric(result, "path_out_of_bounds"); m.Value != 1 {
		t.Errorf("expected one out-of-bounds point, got %+v", m)
	}
}

func TestEvalDensityCheck(t *testing.T) {
	out := validOutput()
	out.Density = field.New(4)
	if r := NewEvalHarness(DefaultEvalConfig()).Run(out); !r.Passed {
		t.Fatalf("expected zero density to pass: %s", r.Reason)
	}
	out.Density.Cells[3] = -0.1
	if r := NewEvalHarness(DefaultEvalConfig()).Run(out); r.Passed {
		t.Fatal("expected negative density to fail")
	}
}

func TestEvalEmptyOutputPasses(t *testing.T) {
	if r := NewEvalHarness(DefaultEvalConfig()).Run(Output{}); !r.Passed {
		t.Fatalf("expected empty output to pass: %s", r.Reason)
	}
}
