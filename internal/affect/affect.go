package affect

import (
	"math"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
)

// DefaultIntensity is reported when no usable affect reading exists.
const DefaultIntensity = 0.5

// expressivenessFallbackWeight scales trajectory expressiveness when a message has no PAD.
const expressivenessFallbackWeight = 0.8

// #region intensity

// Intensity folds pleasure and arousal into a single [0,1] affect intensity.
// Arousal carries most of the weight; distance of pleasure from neutral adds the rest.
func Intensity(pleasure, arousal float64) float64 {
	if !finite(pleasure) || !finite(arousal) {
		return DefaultIntensity
	}
	p := clamp01(pleasure)
	a := clamp01(arousal)
	return clamp01(0.6*a + 0.4*math.Abs(p-0.5)*2)
}

// PADIntensity returns the supplied intensity when it is finite, otherwise
// the value derived from pleasure and arousal.
func PADIntensity(pad conversation.PAD) float64 {
	if pad.Intensity != nil && finite(*pad.Intensity) {
		return clamp01(*pad.Intensity)
	}
	return Intensity(pad.Pleasure, pad.Arousal)
}

// AffectElevation returns the PAD intensity when pad is present, else
// 0.8 × expressiveness.
func AffectElevation(pad *conversation.PAD, expressiveness float64) float64 {
	if pad != nil {
		return PADIntensity(*pad)
	}
	if !finite(expressiveness) {
		return expressivenessFallbackWeight * DefaultIntensity
	}
	return expressivenessFallbackWeight * clamp01(expressiveness)
}

// #endregion intensity

// #region authority

// powerBonus is total over PowerDynamics.
func powerBonus(p conversation.PowerDynamics) float64 {
	switch p {
	case conversation.PowerHumanLed:
		return 0.3
	case conversation.PowerBalanced:
		return 0.15
	default:
		return 0
	}
}

// roleWeight is total over HumanRole; unknown roles get a low nonzero weight.
func roleWeight(r conversation.HumanRole) float64 {
	switch r {
	case conversation.HumanDirector, conversation.HumanEvaluator:
		return 0.7
	case conversation.HumanProvider, conversation.HumanExpert:
		return 0.6
	case conversation.HumanSocialExpressor, conversation.HumanRelationalPeer, conversation.HumanCollaborator:
		return 0.3
	case conversation.HumanInformationSeeker, conversation.HumanDependent, conversation.HumanPassive:
		return 0
	default:
		return 0.2
	}
}

// AuthorityScore rates how much the human steers the conversation, in [0,1].
// A nil classification scores as an unknown role with no power bonus.
func AuthorityScore(c *conversation.Classification) float64 {
	return clamp01(powerBonus(c.Power()) + roleWeight(c.DominantHumanRole()))
}

// #endregion authority

// #region helpers

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// #endregion helpers
