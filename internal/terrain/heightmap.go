package terrain

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/noise"
)

// #region generate

// Generate builds a size×size elevation grid from seed and params.
// Every cell lies in [0.1, 1.2]; identical arguments yield a bit-identical grid.
func Generate(size int, seed int32, params Params) field.Grid {
	g := field.New(size)
	if g.Empty() {
		return g
	}
	s := deriveShape(params)
	fillRows(g, 0, size, seed, s)
	return g
}

// GenerateParallel is Generate split into row chunks across at most workers
// goroutines. Output is bit-identical to Generate.
func GenerateParallel(ctx context.Context, size int, seed int32, params Params, workers int) (field.Grid, error) {
	g := field.New(size)
	if g.Empty() {
		return g, nil
	}
	if workers < 1 {
		workers = 1
	}
	s := deriveShape(params)
	chunk := (size + workers - 1) / workers

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for start := 0; start < size; start += chunk {
		end := min(start+chunk, size)
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			fillRows(g, start, end, seed, s)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return field.Grid{}, err
	}
	return g, nil
}

// #endregion generate

// #region cells

// fillRows writes rows [y0, y1). Rows are disjoint so chunks can run concurrently.
func fillRows(g field.Grid, y0, y1 int, seed int32, s shape) {
	size := float64(g.Size)
	for y := y0; y < y1; y++ {
		ny := float64(y) / size
		for x := 0; x < g.Size; x++ {
			nx := float64(x) / size
			g.Cells[g.Index(x, y)] = cellHeight(nx, ny, seed, s)
		}
	}
}

func cellHeight(nx, ny float64, seed int32, s shape) float64 {
	coarseFreq := 4 * s.complexity
	coarse := noise.FractalNoise(nx*coarseFreq, ny*coarseFreq, 4, seed)
	medium := noise.FractalNoise(nx*8, ny*8, 3, seed+101)
	fine := noise.FractalNoise(nx*16, ny*16, 2, seed+211)

	combined := (coarse*1.0 + medium*0.5 + fine*0.3) / 1.8
	scaled := combined * s.variation

	// recentre around the base height, spread by the height range
	h := s.baseHeight + (scaled-s.variation/2)*s.heightRange*2
	if h > s.baseHeight {
		h = s.baseHeight + (h-s.baseHeight)*s.peakBoost
	}
	return clampElevation(h)
}

// #endregion cells

// #region shape

func deriveShape(p Params) shape {
	switch p.MetricMode {
	case ModeUncertainty:
		u := 1 - unitOr(p.AverageConfidence, 0.5)
		return shape{
			baseHeight:  0.3 + u*0.4,
			heightRange: 0.3 + u*0.4,
			complexity:  1 + u*2,
			variation:   0.4 + u*0.5,
			peakBoost:   1 + u*0.4,
		}
	case ModeAffect:
		i := unitOr(p.Intensity, 0.5)
		return shape{
			baseHeight:  0.3 + i*0.4,
			heightRange: 0.35 + i*0.4,
			complexity:  1 + i*1.5,
			variation:   0.4 + i*0.5,
			peakBoost:   1 + i*0.6,
		}
	default:
		return shape{
			baseHeight:  0.5,
			heightRange: 0.5,
			complexity:  1.5,
			variation:   0.6,
			peakBoost:   1.2,
		}
	}
}

// unitOr clamps v into [0, 1], substituting fallback for non-finite input.
func unitOr(v, fallback float64) float64 {
	if !field.Finite(v) {
		return fallback
	}
	return math.Max(0, math.Min(1, v))
}

func clampElevation(h float64) float64 {
	if math.IsNaN(h) || h < minElevation {
		return minElevation
	}
	if h > maxElevation {
		return maxElevation
	}
	return h
}

// #endregion shape
