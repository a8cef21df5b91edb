package conversation

import (
	"math"
	"sort"
)

// DefaultConfidence is reported whenever the classifier gave no confidence.
const DefaultConfidence = 0.5

// #region message-accessors

// Speaker returns the normalized role of the message author.
func (m Message) Speaker() Role { return ParseRole(string(m.Role)) }

// #endregion message-accessors

// #region dimension-accessors

// category returns the dimension's category or "" for a nil dimension.
func (d *Dimension) category() string {
	if d == nil {
		return ""
	}
	return d.Category
}

// Pattern returns the interaction pattern, PatternUnknown when absent.
func (c *Classification) Pattern() InteractionPattern {
	if c == nil {
		return PatternUnknown
	}
	return ParseInteractionPattern(c.InteractionPattern.category())
}

// Purpose returns the conversation purpose, PurposeUnknown when absent.
func (c *Classification) Purpose() Purpose {
	if c == nil {
		return PurposeUnknown
	}
	return ParsePurpose(c.ConversationPurpose.category())
}

// Power returns the power dynamics, PowerUnknown when absent.
func (c *Classification) Power() PowerDynamics {
	if c == nil {
		return PowerUnknown
	}
	return ParsePowerDynamics(c.PowerDynamics.category())
}

// #endregion dimension-accessors

// #region role-accessors

// DominantHumanRole returns the highest-mass human role, HumanUnknown when absent.
func (c *Classification) DominantHumanRole() HumanRole {
	if c == nil {
		return HumanUnknown
	}
	name, ok := c.HumanRole.dominant()
	if !ok {
		return HumanUnknown
	}
	return ParseHumanRole(name)
}

// DominantAIRole returns the highest-mass AI role, AIUnknown when absent.
func (c *Classification) DominantAIRole() AIRole {
	if c == nil {
		return AIUnknown
	}
	name, ok := c.AIRole.dominant()
	if !ok {
		return AIUnknown
	}
	return ParseAIRole(name)
}

// RoleConfidence returns the human-role confidence, DefaultConfidence when absent.
func (c *Classification) RoleConfidence() float64 {
	if c == nil || c.HumanRole == nil || c.HumanRole.Confidence == nil {
		return DefaultConfidence
	}
	return clamp01(*c.HumanRole.Confidence, DefaultConfidence)
}

// HumanMass sums the distribution mass of human roles matching pred.
func (c *Classification) HumanMass(pred func(HumanRole) bool) float64 {
	if c == nil || c.HumanRole == nil {
		return 0
	}
	var total float64
	for name, w := range c.HumanRole.Distribution {
		if pred(ParseHumanRole(name)) && w > 0 && !math.IsInf(w, 0) {
			total += w
		}
	}
	return total
}

// AIMass sums the distribution mass of AI roles matching pred.
func (c *Classification) AIMass(pred func(AIRole) bool) float64 {
	if c == nil || c.AIRole == nil {
		return 0
	}
	var total float64
	for name, w := range c.AIRole.Distribution {
		if pred(ParseAIRole(name)) && w > 0 && !math.IsInf(w, 0) {
			total += w
		}
	}
	return total
}

// dominant returns the role with the largest mass. Ties resolve to the
// lexically smallest name so the result is stable across map iteration.
func (r *RoleDistribution) dominant() (string, bool) {
	if r == nil || len(r.Distribution) == 0 {
		return "", false
	}
	names := make([]string, 0, len(r.Distribution))
	for name := range r.Distribution {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestW := "", math.Inf(-1)
	for _, name := range names {
		w := r.Distribution[name]
		if math.IsNaN(w) {
			continue
		}
		if w > bestW {
			best, bestW = name, w
		}
	}
	return best, best != ""
}

// #endregion role-accessors

// #region confidence

// AverageConfidence averages every confidence the classifier reported.
// Returns DefaultConfidence when none are present.
func (c *Classification) AverageConfidence() float64 {
	if c == nil {
		return DefaultConfidence
	}
	var sum float64
	var n int
	add := func(p *float64) {
		if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
			return
		}
		sum += clamp01(*p, DefaultConfidence)
		n++
	}
	for _, d := range []*Dimension{c.InteractionPattern, c.PowerDynamics, c.EmotionalTone, c.EngagementStyle, c.ConversationPurpose} {
		if d != nil {
			add(d.Confidence)
		}
	}
	if c.HumanRole != nil {
		add(c.HumanRole.Confidence)
	}
	if c.AIRole != nil {
		add(c.AIRole.Confidence)
	}
	if n == 0 {
		return DefaultConfidence
	}
	return sum / float64(n)
}

// #endregion confidence

// #region axes

// CommunicationFunction places the conversation on the functional (0) to
// social (1) axis. Explicit values win; otherwise the expressive share of the
// human role mass is used, then a purpose lookup, then 0.5.
func (c *Classification) CommunicationFunction() float64 {
	if c == nil {
		return 0.5
	}
	if c.FunctionAxis != nil {
		return clamp01(*c.FunctionAxis, 0.5)
	}
	expressive := c.HumanMass(HumanRole.Expressive)
	instrumental := c.HumanMass(HumanRole.Instrumental)
	if expressive+instrumental > 0 {
		return expressive / (expressive + instrumental)
	}
	switch c.Purpose() {
	case PurposeInformationSeeking:
		return 0.2
	case PurposeProblemSolving:
		return 0.15
	case PurposeEntertainment:
		return 0.75
	case PurposeRelationshipBuilding:
		return 0.85
	case PurposeSelfExpression:
		return 0.8
	default:
		return 0.5
	}
}

// ConversationStructure places the conversation on the aligned (0) to
// divergent (1) axis, from an explicit value or the interaction pattern.
func (c *Classification) ConversationStructure() float64 {
	if c == nil {
		return 0.5
	}
	if c.StructureAxis != nil {
		return clamp01(*c.StructureAxis, 0.5)
	}
	switch c.Pattern() {
	case PatternQuestionAnswer:
		return 0.2
	case PatternAdvisory:
		return 0.3
	case PatternCollaborative:
		return 0.5
	case PatternCasualChat:
		return 0.6
	case PatternStorytelling:
		return 0.75
	case PatternDebate:
		return 0.85
	default:
		return 0.5
	}
}

// #endregion axes

// #region helpers

func clamp01(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return math.Max(0, math.Min(1, v))
}

// #endregion helpers
