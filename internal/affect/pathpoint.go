package affect

import (
	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/field"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

// #region mode

// Mode selects which derivation feeds the per-point elevation override.
type Mode string

const (
	ModeAffect    Mode = "affect"
	ModeAuthority Mode = "authority"
)

// ParseMode maps a mode name onto Mode. Anything but "authority" is affect.
func ParseMode(s string) Mode {
	if Mode(s) == ModeAuthority {
		return ModeAuthority
	}
	return ModeAffect
}

// #endregion mode

// #region path-point

// PathPoint is a trajectory coordinate placed on the landscape.
// Elevation is the backdrop height under the point; AffectElevationOverride,
// when set, replaces it for rendering and density accumulation.
type PathPoint struct {
	X                       float64                `json:"x"`
	Y                       float64                `json:"y"`
	Index                   int                    `json:"index"`
	Role                    conversation.Role      `json:"role"`
	Elevation               float64                `json:"elevation"`
	AffectElevationOverride *float64               `json:"affect_elevation_override,omitempty"`
	HumanRole               conversation.HumanRole `json:"human_role,omitempty"`
	AIRole                  conversation.AIRole    `json:"ai_role,omitempty"`
	RoleConfidence          *float64               `json:"role_confidence,omitempty"`
}

// Height returns the override when present, else the backdrop elevation.
func (p PathPoint) Height() float64 {
	if p.AffectElevationOverride != nil {
		return *p.AffectElevationOverride
	}
	return p.Elevation
}

// #endregion path-point

// #region elevate

// Elevate places coords on backdrop and attaches the mode's elevation override.
// An empty backdrop gives every point a neutral elevation of 0.5. Coordinates
// wrap onto messages by index, matching trajectory.Options.Count. In authority
// mode every point, whichever speaker, carries the conversation's AuthorityScore.
func Elevate(conv conversation.Conversation, coords []trajectory.Coordinate, backdrop field.Grid, mode Mode) []PathPoint {
	if len(coords) == 0 {
		return nil
	}

	var authority float64
	if mode == ModeAuthority {
		authority = AuthorityScore(conv.Classification)
	}

	var (
		human   conversation.HumanRole
		ai      conversation.AIRole
		roleCnf *float64
	)
	if c := conv.Classification; c != nil {
		human = c.DominantHumanRole()
		ai = c.DominantAIRole()
		v := c.RoleConfidence()
		roleCnf = &v
	}

	out := make([]PathPoint, len(coords))
	for i, c := range coords {
		elev := DefaultIntensity
		if !backdrop.Empty() {
			elev = backdrop.Sample(c.X, c.Y)
		}

		var override float64
		switch mode {
		case ModeAuthority:
			override = authority
		default:
			var pad *conversation.PAD
			if n := len(conv.Messages); n > 0 {
				pad = conv.Messages[c.Index%n].PAD
			}
			override = AffectElevation(pad, c.Expressiveness)
		}

		out[i] = PathPoint{
			X:                       c.X,
			Y:                       c.Y,
			Index:                   c.Index,
			Role:                    c.Role,
			Elevation:               elev,
			AffectElevationOverride: &override,
			HumanRole:               human,
			AIRole:                  ai,
			RoleConfidence:          roleCnf,
		}
	}
	return out
}

// #endregion elevate
