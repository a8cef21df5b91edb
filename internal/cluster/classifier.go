package cluster

import (
	"log/slog"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
)

// #region types

// Tier names the stage of the waterfall that produced a label.
type Tier string

const (
	TierMetadata   Tier = "metadata"
	TierAssignment Tier = "assignment"
	TierHeuristic  Tier = "heuristic"
	TierDefault    Tier = "default"
)

// Lookup resolves precomputed assignments by conversation id.
type Lookup interface {
	Lookup(id string) (Label, bool)
}

// Features are the derived booleans the heuristic rules read.
type Features struct {
	Pattern    conversation.InteractionPattern `json:"pattern"`
	Purpose    conversation.Purpose            `json:"purpose"`
	Functional bool                            `json:"functional"`
	Structured bool                            `json:"structured"`
}

// Decision is a label plus where it came from.
type Decision struct {
	Label    Label    `json:"label"`
	Tier     Tier     `json:"tier"`
	Rule     string   `json:"rule,omitempty"`
	Features Features `json:"features"`
}

// Classifier runs the three-tier cluster waterfall. Assignments and Logger
// are optional.
type Classifier struct {
	Assignments Lookup
	Logger      *slog.Logger
}

// #endregion types

// #region classify

// Classify returns the conversation's label: its own metadata tag verbatim,
// then a precomputed assignment, then the heuristic rules.
func (c *Classifier) Classify(conv conversation.Conversation, stats Stats) Decision {
	if conv.Metadata.Cluster != "" {
		return Decision{Label: Label(conv.Metadata.Cluster), Tier: TierMetadata}
	}
	if c != nil && c.Assignments != nil && conv.ID != "" {
		if l, ok := c.Assignments.Lookup(conv.ID); ok {
			return Decision{Label: l, Tier: TierAssignment}
		}
	}
	if conv.Classification == nil {
		return Decision{Label: DefaultLabel, Tier: TierDefault, Rule: "no classification"}
	}

	f := DeriveFeatures(conv.Classification)
	label, rule := heuristic(f, stats)
	d := Decision{Label: label, Tier: TierHeuristic, Rule: rule, Features: f}
	if rule == "" {
		d.Tier = TierDefault
		d.Rule = "no rule matched"
	}
	c.logger().Debug("heuristic cluster",
		slog.String("conversation", conv.ID),
		slog.String("label", string(d.Label)),
		slog.String("rule", d.Rule))
	return d
}

// Determine is Classify over raw intensities, returning only the label.
func (c *Classifier) Determine(conv conversation.Conversation, intensities []float64) Label {
	return c.Classify(conv, ComputeStats(intensities)).Label
}

// DetermineCluster classifies without precomputed assignments.
func DetermineCluster(conv conversation.Conversation, intensities []float64) Label {
	var c Classifier
	return c.Determine(conv, intensities)
}

func (c *Classifier) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// #endregion classify

// #region heuristic

// DeriveFeatures computes the role-mass booleans. Without any human role
// mass, functional falls back to the communication-function axis.
func DeriveFeatures(cl *conversation.Classification) Features {
	instrumental := cl.HumanMass(conversation.HumanRole.Instrumental)
	expressive := cl.HumanMass(conversation.HumanRole.Expressive)
	functional := instrumental > expressive
	if instrumental == 0 && expressive == 0 {
		functional = cl.CommunicationFunction() < 0.5
	}
	return Features{
		Pattern:    cl.Pattern(),
		Purpose:    cl.Purpose(),
		Functional: functional,
		Structured: cl.AIMass(conversation.AIRole.Authoritative) > cl.AIMass(conversation.AIRole.Facilitative),
	}
}

// heuristic applies the ordered rule list. An empty rule means nothing matched.
func heuristic(f Features, s Stats) (Label, string) {
	qa := f.Pattern == conversation.PatternQuestionAnswer
	story := f.Pattern == conversation.PatternStorytelling
	collab := f.Pattern == conversation.PatternCollaborative

	switch {
	case s.Variance > 0.04 && s.PeakDensity > 0.3 && qa && f.Functional:
		return PeakVolatile, "volatile functional qa"
	case f.Purpose == conversation.PurposeEntertainment && story && !f.Functional:
		return SocialEntertainment, "social storytelling entertainment"
	case f.Purpose == conversation.PurposeRelationshipBuilding && !f.Functional:
		return SocialRelational, "social relationship building"
	case f.Purpose == conversation.PurposeSelfExpression && (story || s.Variance > 0.02):
		return Meandering, "narrative self expression"
	case f.Purpose == conversation.PurposeInformationSeeking && !f.Functional && (story || collab):
		return SocialInfoSeeking, "social narrative info seeking"
	case s.ValleyDensity > 0.3 && f.Functional && qa:
		return Valley, "calm functional qa"
	case f.Functional && f.Structured:
		return StraightPath, "functional structured"
	case !f.Functional:
		return SocialInfoSeeking, "non-functional"
	}
	return DefaultLabel, ""
}

// #endregion heuristic
