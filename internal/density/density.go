// Package density folds many trajectories into one data-derived elevation field.
package density

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/convo-terrain/internal/field"
)

const (
	kernelRadius   = 2
	neighbourScale = 0.5
)

// #region point

// Point is one path sample in unit-square coordinates with the intensity to splat.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
}

// #endregion point

// #region partial

// Partial holds un-normalized value and weight sums. Partials built from
// disjoint path chunks merge by cell-wise addition.
type Partial struct {
	Size    int
	Values  []float64
	Weights []float64
}

// NewPartial allocates an empty partial for a size×size grid.
func NewPartial(size int) Partial {
	if size <= 0 {
		return Partial{}
	}
	return Partial{
		Size:    size,
		Values:  make([]float64, size*size),
		Weights: make([]float64, size*size),
	}
}

// Splat adds one point to the partial. Non-finite points are skipped and
// reported false; negative intensities are clamped to 0.
func (p *Partial) Splat(pt Point) bool {
	if p.Size == 0 {
		return false
	}
	if !field.Finite(pt.X) || !field.Finite(pt.Y) || !field.Finite(pt.Intensity) {
		return false
	}
	v := math.Max(0, pt.Intensity)
	span := float64(p.Size - 1)
	cx := int(math.Round(unit(pt.X) * span))
	cy := int(math.Round(unit(pt.Y) * span))

	for dy := -kernelRadius; dy <= kernelRadius; dy++ {
		for dx := -kernelRadius; dx <= kernelRadius; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= p.Size || y >= p.Size {
				continue
			}
			w := 1.0
			if dx != 0 || dy != 0 {
				d2 := float64(dx*dx + dy*dy)
				w = neighbourScale * math.Exp(-d2/(2*kernelRadius*kernelRadius))
			}
			i := y*p.Size + x
			p.Values[i] += v * w
			p.Weights[i] += w
		}
	}
	return true
}

// Merge adds other into p cell-wise. Partials of different sizes are ignored.
func (p *Partial) Merge(other Partial) {
	if other.Size != p.Size {
		return
	}
	for i := range p.Values {
		p.Values[i] += other.Values[i]
		p.Weights[i] += other.Weights[i]
	}
}

// Normalize divides values by weights, leaving zero-weight cells at zero,
// then box-blurs the interior.
func (p Partial) Normalize() field.Grid {
	g := field.New(p.Size)
	if g.Empty() {
		return g
	}
	for i, w := range p.Weights {
		if w > 0 {
			g.Cells[i] = p.Values[i] / w
		}
	}
	return blur(g)
}

// #endregion partial

// #region accumulate

// Accumulate splats every point of every path and returns the normalized,
// smoothed grid. Output is non-negative; no paths yields an all-zero grid.
func Accumulate(size int, paths [][]Point) field.Grid {
	p := NewPartial(size)
	for _, path := range paths {
		for _, pt := range path {
			p.Splat(pt)
		}
	}
	return p.Normalize()
}

// AccumulateParallel splits paths into chunks, builds one partial per chunk
// across at most workers goroutines, and merges them in chunk order before
// normalizing.
func AccumulateParallel(ctx context.Context, size int, paths [][]Point, workers int) (field.Grid, error) {
	if workers < 1 {
		workers = 1
	}
	if size <= 0 {
		return field.Grid{}, nil
	}
	chunk := max(1, (len(paths)+workers-1)/workers)
	nChunks := (len(paths) + chunk - 1) / chunk
	partials := make([]Partial, nChunks)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for c := 0; c < nChunks; c++ {
		start := c * chunk
		end := min(start+chunk, len(paths))
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			p := NewPartial(size)
			for _, path := range paths[start:end] {
				for _, pt := range path {
					p.Splat(pt)
				}
			}
			partials[c] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return field.Grid{}, err
	}
	if err := ctx.Err(); err != nil {
		return field.Grid{}, err
	}

	total := NewPartial(size)
	for _, p := range partials {
		total.Merge(p)
	}
	return total.Normalize(), nil
}

// #endregion accumulate

// #region blur

// blur applies a 3×3 box filter to interior cells. Border cells are copied unchanged.
func blur(g field.Grid) field.Grid {
	out := g.Clone()
	n := g.Size
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			var sum float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += g.At(x+dx, y+dy)
				}
			}
			out.Set(x, y, sum/9)
		}
	}
	return out
}

// #endregion blur

func unit(v float64) float64 { return math.Max(0, math.Min(1, v)) }
