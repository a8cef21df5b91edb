package landscape

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danielpatrickdp/convo-terrain/internal/affect"
	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
	"github.com/danielpatrickdp/convo-terrain/internal/contour"
	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/eval"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/logging"
	"github.com/danielpatrickdp/convo-terrain/internal/signals"
	"github.com/danielpatrickdp/convo-terrain/internal/terrain"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

// #region builder

// Builder runs the per-conversation pipeline. Producer, Classifier and
// Harness default to lexical signals, heuristic-only classification and the
// default eval bounds. LogDB, when set, receives one classification_log row
// per conversation.
type Builder struct {
	Options    Options
	Producer   *signals.Producer
	Classifier *cluster.Classifier
	Harness    *eval.EvalHarness
	Logger     *slog.Logger
	LogDB      *sql.DB
}

// NewBuilder returns a Builder with default collaborators.
func NewBuilder(opts Options) *Builder {
	logger := logging.For(logging.ComponentLandscape)
	return &Builder{
		Options:    opts,
		Producer:   signals.NewProducer(nil, signals.DefaultProducerConfig(), logger),
		Classifier: &cluster.Classifier{Logger: logger},
		Harness:    eval.NewEvalHarness(eval.DefaultEvalConfig()),
		Logger:     logger,
	}
}

// Build runs the pipeline for one conversation with default collaborators.
func Build(ctx context.Context, conv conversation.Conversation, opts Options) (Result, error) {
	return NewBuilder(opts).Build(ctx, conv)
}

// #endregion builder

// #region build

// Build derives the landscape for conv. Errors come only from context
// cancellation; malformed input degrades to defaults.
func (b *Builder) Build(ctx context.Context, conv conversation.Conversation) (Result, error) {
	return b.build(ctx, conv, "", b.Options.Workers)
}

func (b *Builder) build(ctx context.Context, conv conversation.Conversation, runID string, workers int) (Result, error) {
	opts := b.Options
	res := Result{ID: conv.ID, Seed: conversation.Seed(conv)}

	// 1. Per-message signals, filling PAD from the scorer where missing
	annotated, scores, tiers := b.producer().Annotate(ctx, conv)
	res.Tiers = tiers

	// 2. Path geometry
	res.Target = trajectory.TargetForClassification(conv.Classification)
	res.Coordinates = trajectory.Synthesize(scores, res.Target, opts.Trajectory)
	res.Intensities = affectIntensities(annotated, res.Coordinates)

	// 3. Backdrop terrain
	res.Params = terrain.Params{
		AverageConfidence: conv.Classification.AverageConfidence(),
		Intensity:         meanOr(res.Intensities, affect.DefaultIntensity),
		MetricMode:        opts.MetricMode,
	}
	var err error
	if workers > 1 {
		res.Heightmap, err = terrain.GenerateParallel(ctx, opts.TerrainSize, res.Seed, res.Params, workers)
		if err != nil {
			return Result{}, fmt.Errorf("generate heightmap: %w", err)
		}
	} else {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res.Heightmap = terrain.Generate(opts.TerrainSize, res.Seed, res.Params)
	}
	res.Contours = contour.Generate(res.Heightmap, opts.ContourCount)

	// 4. Elevation per point
	res.Points = affect.Elevate(annotated, res.Coordinates, res.Heightmap, opts.ElevationMode)

	// 5. Cluster
	res.Stats = cluster.ComputeStats(res.Intensities)
	res.Decision = b.classifier().Classify(conv, res.Stats)
	b.logClassification(runID, conv, res)

	// 6. Validate
	if opts.Validate && b.Harness != nil {
		r := b.Harness.Run(eval.Output{
			Heightmap:      res.Heightmap,
			Contours:       res.Contours,
			Coordinates:    res.Coordinates,
			ExpectedPoints: expectedPoints(len(conv.Messages), opts.Trajectory.Count),
		})
		res.Eval = &r
		if !r.Passed {
			b.logger().Warn("landscape failed validation",
				slog.String("conversation", conv.ID), slog.String("reason", r.Reason))
		}
	}
	return res, nil
}

// #endregion build

// #region helpers

// affectIntensities returns the affect reading under every path coordinate.
func affectIntensities(conv conversation.Conversation, coords []trajectory.Coordinate) []float64 {
	out := make([]float64, len(coords))
	n := len(conv.Messages)
	for i, c := range coords {
		var pad *conversation.PAD
		if n > 0 {
			pad = conv.Messages[c.Index%n].PAD
		}
		out[i] = affect.AffectElevation(pad, c.Expressiveness)
	}
	return out
}

func meanOr(vs []float64, fallback float64) float64 {
	var sum float64
	var n int
	for _, v := range vs {
		if field.Finite(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

func expectedPoints(messages, override int) int {
	if messages == 0 {
		return 0
	}
	if override > 0 {
		return override
	}
	return messages
}

func (b *Builder) logClassification(runID string, conv conversation.Conversation, res Result) {
	if b.LogDB == nil {
		return
	}
	rec := logging.ClassificationRecord{
		Variance:      res.Stats.Variance,
		PeakDensity:   res.Stats.PeakDensity,
		ValleyDensity: res.Stats.ValleyDensity,
		Pattern:       string(res.Decision.Features.Pattern),
		Purpose:       string(res.Decision.Features.Purpose),
		Functional:    res.Decision.Features.Functional,
		Structured:    res.Decision.Features.Structured,
		Messages:      len(conv.Messages),
	}
	stats, err := json.Marshal(rec)
	if err != nil {
		b.logger().Warn("marshal classification record", slog.String("error", err.Error()))
	}
	err = logging.LogClassification(b.LogDB, logging.ClassificationEntry{
		RunID:          runID,
		ConversationID: conv.ID,
		Label:          string(res.Decision.Label),
		Tier:           string(res.Decision.Tier),
		StatsJSON:      string(stats),
		Reason:         res.Decision.Rule,
	})
	if err != nil {
		b.logger().Warn("classification log write failed",
			slog.String("conversation", conv.ID), slog.String("error", err.Error()))
	}
}

func (b *Builder) producer() *signals.Producer {
	if b.Producer == nil {
		return signals.NewProducer(nil, signals.DefaultProducerConfig(), b.logger())
	}
	return b.Producer
}

func (b *Builder) classifier() *cluster.Classifier {
	if b.Classifier == nil {
		return &cluster.Classifier{Logger: b.logger()}
	}
	return b.Classifier
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// #endregion helpers
