package signals

import (
	"context"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
)

// #region scorer-interface

// Scorer abstracts the external message scorer so Producer can be tested without gRPC.
type Scorer interface {
	Score(ctx context.Context, req Request) (Reading, error)
}

// Request is one message plus its recent history.
type Request struct {
	ConversationID string
	Index          int
	Role           conversation.Role
	Content        string
	History        []string // earlier message contents, oldest first
}

// Reading is the scorer's answer for one message. PAD is optional.
type Reading struct {
	Expressiveness float64
	Alignment      float64
	PAD            *conversation.PAD
}

// #endregion scorer-interface

// #region config

// Tier names which source produced a message's scores.
type Tier string

const (
	TierScorer  Tier = "scorer"
	TierLexical Tier = "lexical"
)

// ProducerConfig holds tuning knobs for signal computation.
type ProducerConfig struct {
	HistoryWindow   int     // prior messages sent to the scorer
	FullLengthWords int     // token count at which length stops damping diversity
	DiversityWeight float64 // share of expressiveness from lexical diversity
	EmphasisWeight  float64 // share from punctuation and capitals
	AffectWeight    float64 // share from affect vocabulary
}

// DefaultProducerConfig returns sensible defaults.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		HistoryWindow:   6,
		FullLengthWords: 20,
		DiversityWeight: 0.35,
		EmphasisWeight:  0.4,
		AffectWeight:    0.25,
	}
}

// #endregion config
