package landscape

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/density"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
)

// #region batch

// BuildBatch builds every conversation concurrently, keeping input order,
// then folds the elevated paths into a density field.
func (b *Builder) BuildBatch(ctx context.Context, convs []conversation.Conversation) (Batch, error) {
	workers := max(1, b.Options.Workers)
	batch := Batch{
		RunID:   uuid.New().String(),
		Results: make([]Result, len(convs)),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, conv := range convs {
		eg.Go(func() error {
			res, err := b.build(egCtx, conv, batch.RunID, 1)
			if err != nil {
				return err
			}
			batch.Results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Batch{}, err
	}

	paths, skipped := densityPaths(batch.Results)
	if skipped > 0 {
		b.logger().Warn("skipped non-finite density points", slog.Int("count", skipped))
	}
	grid, err := density.AccumulateParallel(ctx, b.Options.DensitySize, paths, workers)
	if err != nil {
		return Batch{}, err
	}
	batch.Density = grid
	batch.DensityContours = contour.Generate(grid, b.Options.DensityContours)
	batch.Summary = Summarize(batch.Results)
	batch.Summary.SkippedPoints = skipped

	b.logger().Info("batch built",
		slog.String("run_id", batch.RunID),
		slog.Int("conversations", batch.Summary.Conversations),
		slog.Int("points", batch.Summary.Points))
	return batch, nil
}

// BuildBatch runs a batch with default collaborators.
func BuildBatch(ctx context.Context, convs []conversation.Conversation, opts Options) (Batch, error) {
	return NewBuilder(opts).BuildBatch(ctx, convs)
}

// #endregion batch

// #region summarize

// Summarize counts labels, tiers, points and validation failures.
func Summarize(results []Result) Summary {
	s := Summary{
		Conversations: len(results),
		Clusters:      make(map[cluster.Label]int),
		Tiers:         make(map[cluster.Tier]int),
	}
	for _, r := range results {
		s.Clusters[r.Decision.Label]++
		s.Tiers[r.Decision.Tier]++
		s.Points += len(r.Points)
		if r.Eval != nil && !r.Eval.Passed {
			s.EvalFailures++
		}
	}
	return s
}

// #endregion summarize

// #region helpers

func densityPaths(results []Result) ([][]density.Point, int) {
	paths := make([][]density.Point, 0, len(results))
	var skipped int
	for _, r := range results {
		path := make([]density.Point, 0, len(r.Points))
		for _, p := range r.Points {
			pt := density.Point{X: p.X, Y: p.Y, Intensity: p.Height()}
			if !field.Finite(pt.X) || !field.Finite(pt.Y) || !field.Finite(pt.Intensity) {
				skipped++
				continue
			}
			path = append(path, pt)
		}
		paths = append(paths, path)
	}
	return paths, skipped
}

// #endregion helpers
