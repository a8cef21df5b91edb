package trajectory

import "github.com/danielpatrickdp/convo-terrain/internal/conversation"

// #region feature-score

// FeatureScore is the external scorer's reading of one message.
type FeatureScore struct {
	Role           conversation.Role `json:"role"`
	Expressiveness float64           `json:"expressiveness"`
	Alignment      float64           `json:"alignment"`
}

// #endregion feature-score

// #region target

// Target is the conversation-level attractor in unit-square coordinates.
type Target struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// #endregion target

// #region coordinate

// Coordinate is one geometry-only path point. It keeps the raw per-message
// analysis so downstream consumers can recolour without recomputing.
type Coordinate struct {
	X              float64           `json:"x"`
	Y              float64           `json:"y"`
	Index          int               `json:"index"`
	Role           conversation.Role `json:"role"`
	Expressiveness float64           `json:"expressiveness"`
	Alignment      float64           `json:"alignment"`
	Margin         float64           `json:"margin"`
}

// #endregion coordinate

// #region options

// Options holds tuning knobs for path synthesis.
type Options struct {
	Count       int     // explicit point count; 0 means one per message
	TargetPull  float64 // share of the remaining distance to the target covered per unit step
	DriftWeight float64 // drift multiplier relative to the base step
	DriftScale  float64 // base drift unit before weighting
}

// DefaultOptions returns the standard synthesis settings.
func DefaultOptions() Options {
	return Options{
		TargetPull:  0.6,
		DriftWeight: 5,
		DriftScale:  0.02,
	}
}

// #endregion options

// #region constants

const (
	originX = 0.5
	originY = 0.5

	bandLow  = 0.1
	bandHigh = 0.9

	marginShort     = 0.05
	marginLong      = 0.03
	longThreshold   = 30
	maxLengthScale  = 1.5
	lengthScaleSpan = 60.0
	maxPullFraction = 0.9
)

// #endregion constants
