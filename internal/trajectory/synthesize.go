package trajectory

import (
	"math"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
)

// #region target

// TargetFor maps the communication-function and structure axes into the
// [0.1, 0.9] coordinate band. Non-finite inputs map to the band centre.
func TargetFor(function, structure float64) Target {
	return Target{X: toBand(function), Y: toBand(structure)}
}

// TargetForClassification derives the target from a (possibly nil) classification.
func TargetForClassification(c *conversation.Classification) Target {
	return TargetFor(c.CommunicationFunction(), c.ConversationStructure())
}

func toBand(v float64) float64 {
	if !field.Finite(v) {
		v = 0.5
	}
	v = math.Max(0, math.Min(1, v))
	return bandLow + v*(bandHigh-bandLow)
}

// #endregion target

// #region margin

// MarginFor returns the edge margin for a path of n points.
func MarginFor(n int) float64 {
	if n > longThreshold {
		return marginLong
	}
	return marginShort
}

// #endregion margin

// #region synthesize

// Synthesize turns per-message scores into a drifting path that starts its
// reference point at (0.5, 0.5) and is pulled toward target.
//
// The result has one coordinate per score, or opts.Count coordinates when set,
// with score indices wrapping. Every coordinate is finite and lies within
// [margin, 1-margin]. Identical inputs produce identical paths.
func Synthesize(scores []FeatureScore, target Target, opts Options) []Coordinate {
	if len(scores) == 0 {
		return nil
	}
	opts = sanitizeOptions(opts)
	n := len(scores)
	if opts.Count > 0 {
		n = opts.Count
	}

	margin := MarginFor(n)
	tx := clampTo(finiteOr(target.X, originX), margin)
	ty := clampTo(finiteOr(target.Y, originY), margin)

	lengthScale := math.Min(maxLengthScale, 1+float64(n)/lengthScaleSpan)
	base := 1 / float64(n)

	x, y := originX, originY
	out := make([]Coordinate, 0, n)
	for i := 0; i < n; i++ {
		s := scores[i%len(scores)]
		expr := unitOr(s.Expressiveness)
		align := unitOr(s.Alignment)

		progress := (float64(i) + 0.5) / float64(n)
		step := base * lengthScale * (1 + 0.5*math.Sin(math.Pi*progress))
		pull := math.Min(maxPullFraction, step*opts.TargetPull)
		drift := opts.DriftWeight * opts.DriftScale * step

		dx := (tx-x)*pull + (expr-0.5)*drift
		// aligned messages drift toward the aligned (low) end of the structure axis
		dy := (ty-y)*pull + (0.5-align)*drift

		if field.Finite(dx) && field.Finite(dy) {
			x = clampTo(approach(x, tx, dx), margin)
			y = clampTo(approach(y, ty, dy), margin)
		}

		out = append(out, Coordinate{
			X:              x,
			Y:              y,
			Index:          i,
			Role:           s.Role,
			Expressiveness: expr,
			Alignment:      align,
			Margin:         margin,
		})
	}
	return out
}

// #endregion synthesize

// #region helpers

func sanitizeOptions(o Options) Options {
	d := DefaultOptions()
	if !field.Finite(o.TargetPull) || o.TargetPull <= 0 {
		o.TargetPull = d.TargetPull
	}
	if !field.Finite(o.DriftWeight) || o.DriftWeight <= 0 {
		o.DriftWeight = d.DriftWeight
	}
	if !field.Finite(o.DriftScale) || o.DriftScale <= 0 {
		o.DriftScale = d.DriftScale
	}
	if o.Count < 0 {
		o.Count = 0
	}
	return o
}

// approach moves cur by delta along one axis without reaching or crossing
// target. A step that would land on or past it stops maxPullFraction of the
// way there. Moving away from the target is unrestricted.
func approach(cur, target, delta float64) float64 {
	gap := target - cur
	next := cur + delta
	if gap != 0 && (target-next)*gap <= 0 {
		return cur + gap*maxPullFraction
	}
	return next
}

func unitOr(v float64) float64 {
	if !field.Finite(v) {
		return 0.5
	}
	return math.Max(0, math.Min(1, v))
}

func finiteOr(v, fallback float64) float64 {
	if !field.Finite(v) {
		return fallback
	}
	return v
}

func clampTo(v, margin float64) float64 {
	return math.Max(margin, math.Min(1-margin, v))
}

// #endregion helpers
