package conversation

import "strings"

// #region power-dynamics

// PowerDynamics describes who steers the conversation.
type PowerDynamics string

const (
	PowerHumanLed PowerDynamics = "human-led"
	PowerBalanced PowerDynamics = "balanced"
	PowerAILed    PowerDynamics = "ai-led"
	PowerUnknown  PowerDynamics = "unknown"
)

// ParsePowerDynamics maps a category string onto PowerDynamics.
func ParsePowerDynamics(s string) PowerDynamics {
	switch normalize(s) {
	case "human-led", "human-dominant", "user-led":
		return PowerHumanLed
	case "balanced", "symmetric", "equal":
		return PowerBalanced
	case "ai-led", "ai-dominant", "assistant-led":
		return PowerAILed
	default:
		return PowerUnknown
	}
}

// #endregion power-dynamics

// #region human-role

// HumanRole is the role the human plays in the exchange.
type HumanRole string

const (
	HumanDirector          HumanRole = "director"
	HumanEvaluator         HumanRole = "evaluator"
	HumanProvider          HumanRole = "provider"
	HumanExpert            HumanRole = "expert"
	HumanSocialExpressor   HumanRole = "social-expressor"
	HumanRelationalPeer    HumanRole = "relational-peer"
	HumanCollaborator      HumanRole = "collaborator"
	HumanInformationSeeker HumanRole = "information-seeker"
	HumanDependent         HumanRole = "dependent"
	HumanPassive           HumanRole = "passive"
	HumanUnknown           HumanRole = "unknown"
)

var humanRoles = map[string]HumanRole{
	"director":           HumanDirector,
	"evaluator":          HumanEvaluator,
	"provider":           HumanProvider,
	"expert":             HumanExpert,
	"social-expressor":   HumanSocialExpressor,
	"relational-peer":    HumanRelationalPeer,
	"collaborator":       HumanCollaborator,
	"information-seeker": HumanInformationSeeker,
	"seeker":             HumanInformationSeeker,
	"dependent":          HumanDependent,
	"passive":            HumanPassive,
}

// ParseHumanRole maps a role name onto HumanRole, HumanUnknown when unrecognised.
func ParseHumanRole(s string) HumanRole {
	if r, ok := humanRoles[normalize(s)]; ok {
		return r
	}
	return HumanUnknown
}

// Instrumental reports whether the role is task-oriented.
func (r HumanRole) Instrumental() bool {
	switch r {
	case HumanDirector, HumanEvaluator, HumanInformationSeeker, HumanProvider, HumanExpert:
		return true
	}
	return false
}

// Expressive reports whether the role is socially or emotionally oriented.
func (r HumanRole) Expressive() bool {
	switch r {
	case HumanSocialExpressor, HumanRelationalPeer:
		return true
	}
	return false
}

// #endregion human-role

// #region ai-role

// AIRole is the role the assistant plays in the exchange.
type AIRole string

const (
	AIExpert      AIRole = "expert"
	AIAdvisor     AIRole = "advisor"
	AIInstructor  AIRole = "instructor"
	AIFacilitator AIRole = "facilitator"
	AIReflector   AIRole = "reflector"
	AIPeer        AIRole = "peer"
	AIAffiliative AIRole = "affiliative"
	AIUnknown     AIRole = "unknown"
)

var aiRoles = map[string]AIRole{
	"expert":         AIExpert,
	"expert-system":  AIExpert,
	"advisor":        AIAdvisor,
	"instructor":     AIInstructor,
	"teacher":        AIInstructor,
	"facilitator":    AIFacilitator,
	"reflector":      AIReflector,
	"peer":           AIPeer,
	"co-constructor": AIPeer,
	"affiliative":    AIAffiliative,
	"companion":      AIAffiliative,
}

// ParseAIRole maps a role name onto AIRole, AIUnknown when unrecognised.
func ParseAIRole(s string) AIRole {
	if r, ok := aiRoles[normalize(s)]; ok {
		return r
	}
	return AIUnknown
}

// Authoritative reports whether the role signals authority.
func (r AIRole) Authoritative() bool {
	switch r {
	case AIExpert, AIAdvisor, AIInstructor:
		return true
	}
	return false
}

// Facilitative reports whether the role supports rather than directs.
func (r AIRole) Facilitative() bool {
	switch r {
	case AIFacilitator, AIReflector, AIPeer, AIAffiliative:
		return true
	}
	return false
}

// #endregion ai-role

// #region pattern

// InteractionPattern is the conversational shape.
type InteractionPattern string

const (
	PatternQuestionAnswer InteractionPattern = "question-answer"
	PatternStorytelling   InteractionPattern = "storytelling"
	PatternCollaborative  InteractionPattern = "collaborative"
	PatternAdvisory       InteractionPattern = "advisory"
	PatternCasualChat     InteractionPattern = "casual-chat"
	PatternDebate         InteractionPattern = "debate"
	PatternUnknown        InteractionPattern = "unknown"
)

// ParseInteractionPattern maps a category string onto InteractionPattern.
func ParseInteractionPattern(s string) InteractionPattern {
	switch normalize(s) {
	case "question-answer", "qa", "q-and-a", "question-and-answer":
		return PatternQuestionAnswer
	case "storytelling", "narrative":
		return PatternStorytelling
	case "collaborative", "collaboration", "co-creation":
		return PatternCollaborative
	case "advisory", "advice-seeking":
		return PatternAdvisory
	case "casual-chat", "casual", "chit-chat", "small-talk":
		return PatternCasualChat
	case "debate", "argumentative":
		return PatternDebate
	default:
		return PatternUnknown
	}
}

// #endregion pattern

// #region purpose

// Purpose is why the human started the conversation.
type Purpose string

const (
	PurposeInformationSeeking   Purpose = "information-seeking"
	PurposeProblemSolving       Purpose = "problem-solving"
	PurposeEntertainment        Purpose = "entertainment"
	PurposeRelationshipBuilding Purpose = "relationship-building"
	PurposeSelfExpression       Purpose = "self-expression"
	PurposeUnknown              Purpose = "unknown"
)

// ParsePurpose maps a category string onto Purpose.
func ParsePurpose(s string) Purpose {
	switch normalize(s) {
	case "information-seeking", "info-seeking", "information":
		return PurposeInformationSeeking
	case "problem-solving", "task-completion":
		return PurposeProblemSolving
	case "entertainment", "play", "fun":
		return PurposeEntertainment
	case "relationship-building", "relational", "companionship":
		return PurposeRelationshipBuilding
	case "self-expression", "venting", "emotional-support":
		return PurposeSelfExpression
	default:
		return PurposeUnknown
	}
}

// #endregion purpose

// #region helpers

// normalize lowercases and collapses spaces and underscores to hyphens.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}

// #endregion helpers
