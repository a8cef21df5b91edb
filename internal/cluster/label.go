package cluster

import (
	"log/slog"
	"strings"
	"unicode"
)

// #region label

// Label is one of the seven fixed behavioural archetypes.
type Label string

const (
	StraightPath        Label = "StraightPathStableFunctionalStructuredQAInfoSeeking"
	Valley              Label = "ValleyFunctionalStructuredQAInfoSeeking"
	SocialInfoSeeking   Label = "SocialEmergentNarrativeInfoSeeking"
	SocialEntertainment Label = "SocialEmergentNarrativeEntertainment"
	Meandering          Label = "MeanderingPathNarrativeSelfExpression"
	PeakVolatile        Label = "PeakVolatileFunctionalStructuredQAInfoSeeking"
	SocialRelational    Label = "SocialEmergentNarrativeRelational"
)

// DefaultLabel is the baseline archetype every fallback resolves to.
const DefaultLabel = StraightPath

// Labels lists every archetype in a stable order.
var Labels = []Label{
	StraightPath,
	Valley,
	SocialInfoSeeking,
	SocialEntertainment,
	Meandering,
	PeakVolatile,
	SocialRelational,
}

// Valid reports whether l is one of the seven archetypes.
func (l Label) Valid() bool {
	switch l {
	case StraightPath, Valley, SocialInfoSeeking, SocialEntertainment, Meandering, PeakVolatile, SocialRelational:
		return true
	}
	return false
}

// #endregion label

// #region parse

// fuzzyRules are checked in order against the squashed name; the first
// matching fragment wins. More specific fragments come first.
var fuzzyRules = []struct {
	fragment string
	label    Label
}{
	{"peak", PeakVolatile},
	{"volatile", PeakVolatile},
	{"valley", Valley},
	{"meander", Meandering},
	{"selfexpression", Meandering},
	{"entertain", SocialEntertainment},
	{"relational", SocialRelational},
	{"social", SocialInfoSeeking},
	{"emergent", SocialInfoSeeking},
	{"straight", StraightPath},
	{"stable", StraightPath},
}

// ParseLabel resolves a free-form cluster name such as "peak_volatile" or
// "Social Emergent: Entertainment" to a Label.
func ParseLabel(name string) (Label, bool) {
	if l := Label(strings.TrimSpace(name)); l.Valid() {
		return l, true
	}
	key := squash(name)
	if key == "" {
		return DefaultLabel, false
	}
	for _, l := range Labels {
		if squash(string(l)) == key {
			return l, true
		}
	}
	for _, r := range fuzzyRules {
		if strings.Contains(key, r.fragment) {
			return r.label, true
		}
	}
	return DefaultLabel, false
}

// NormalizeLabel is ParseLabel with a logged warning on fallback.
func NormalizeLabel(name string, logger *slog.Logger) Label {
	l, ok := ParseLabel(name)
	if !ok {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("unknown cluster name, using default",
			slog.String("name", name),
			slog.String("default", string(DefaultLabel)))
	}
	return l
}

// squash lowercases and keeps only letters and digits.
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// #endregion parse
