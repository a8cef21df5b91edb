package signals

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
	"github.com/danielpatrickdp/convo-terrain/internal/trajectory"
)

const neutralScore = 0.5

// #region producer

// Producer computes per-message expressiveness and alignment.
type Producer struct {
	scorer Scorer
	config ProducerConfig
	logger *slog.Logger
}

// NewProducer creates a Producer. scorer may be nil (lexical heuristics only).
func NewProducer(scorer Scorer, config ProducerConfig, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{scorer: scorer, config: config, logger: logger}
}

// #endregion producer

// #region produce

// Produce returns one FeatureScore per message.
func (p *Producer) Produce(ctx context.Context, conv conversation.Conversation) []trajectory.FeatureScore {
	_, scores, _ := p.Annotate(ctx, conv)
	return scores
}

// Annotate scores every message and returns a copy of conv whose messages
// without PAD carry the scorer's PAD reading when one was given, alongside
// the scores and the tier used per message.
func (p *Producer) Annotate(ctx context.Context, conv conversation.Conversation) (conversation.Conversation, []trajectory.FeatureScore, []Tier) {
	if len(conv.Messages) == 0 {
		return conv, nil, nil
	}
	out := conv
	out.Messages = make([]conversation.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)

	scores := make([]trajectory.FeatureScore, len(conv.Messages))
	tiers := make([]Tier, len(conv.Messages))
	vocab := make(map[string]float64)

	for i, m := range conv.Messages {
		role := m.Speaker()
		tokens := tokenize(m.Content)
		terms := contentTerms(m.Content)

		// Tier 1: external scorer
		if r, ok := p.external(ctx, conv, i); ok {
			scores[i] = trajectory.FeatureScore{Role: role, Expressiveness: r.Expressiveness, Alignment: r.Alignment}
			tiers[i] = TierScorer
			if out.Messages[i].PAD == nil && r.PAD != nil {
				pad := *r.PAD
				out.Messages[i].PAD = &pad
			}
		} else {
			// Tier 2: lexical heuristics
			scores[i] = trajectory.FeatureScore{
				Role:           role,
				Expressiveness: p.expressiveness(m.Content, tokens),
				Alignment:      alignment(terms, vocab),
			}
			tiers[i] = TierLexical
		}

		for _, t := range terms {
			vocab[t]++
		}
	}
	return out, scores, tiers
}

// external asks the scorer about message i. It reports false when there is
// no scorer, the call fails, or the reading is not finite.
func (p *Producer) external(ctx context.Context, conv conversation.Conversation, i int) (Reading, bool) {
	if p.scorer == nil {
		return Reading{}, false
	}
	start := max(0, i-p.config.HistoryWindow)
	history := make([]string, 0, i-start)
	for _, m := range conv.Messages[start:i] {
		history = append(history, m.Content)
	}
	m := conv.Messages[i]
	r, err := p.scorer.Score(ctx, Request{
		ConversationID: conv.ID,
		Index:          i,
		Role:           m.Speaker(),
		Content:        m.Content,
		History:        history,
	})
	if err != nil {
		p.logger.Debug("scorer failed, using lexical signals",
			slog.String("conversation", conv.ID), slog.Int("index", i), slog.String("error", err.Error()))
		return Reading{}, false
	}
	if !finite(r.Expressiveness) || !finite(r.Alignment) {
		p.logger.Debug("scorer returned non-finite reading, using lexical signals",
			slog.String("conversation", conv.ID), slog.Int("index", i))
		return Reading{}, false
	}
	r.Expressiveness = clamp(r.Expressiveness)
	r.Alignment = clamp(r.Alignment)
	return r, true
}

// #endregion produce

// #region expressiveness

var affectWords = map[string]struct{}{
	"love": {}, "hate": {}, "feel": {}, "feeling": {}, "happy": {}, "sad": {},
	"wow": {}, "amazing": {}, "awful": {}, "excited": {}, "sorry": {}, "thanks": {},
	"lol": {}, "haha": {}, "afraid": {}, "angry": {}, "wonderful": {}, "terrible": {},
}

// expressiveness blends lexical diversity (damped for short texts),
// emphasis and affect vocabulary. Empty text is neutral.
func (p *Producer) expressiveness(content string, tokens []string) float64 {
	if len(tokens) == 0 {
		return neutralScore
	}
	unique := make(map[string]struct{}, len(tokens))
	var affect int
	for _, t := range tokens {
		unique[t] = struct{}{}
		if _, ok := affectWords[strings.Trim(t, ".,!?;:\"'()")]; ok {
			affect++
		}
	}
	diversity := float64(len(unique)) / float64(len(tokens))
	full := max(1, p.config.FullLengthWords)
	lengthFactor := math.Min(1, float64(len(tokens))/float64(full))

	return clamp(p.config.DiversityWeight*diversity*lengthFactor +
		p.config.EmphasisWeight*emphasis(content) +
		p.config.AffectWeight*math.Min(1, float64(affect)/3))
}

// emphasis scores exclamation marks, question marks and shouted words.
func emphasis(content string) float64 {
	var exclaim, question, caps float64
	for _, r := range content {
		switch r {
		case '!':
			exclaim++
		case '?':
			question++
		}
	}
	for _, w := range strings.Fields(content) {
		if len(w) > 1 && isShouted(w) {
			caps++
		}
	}
	return math.Min(1, (exclaim+0.5*question+caps)/3)
}

func isShouted(w string) bool {
	var letters int
	for _, r := range w {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

// #endregion expressiveness

// #region alignment

// alignment is the cosine similarity between the message's content-term
// vector and the running vocabulary of earlier messages. The opening message,
// or one with no content terms, is neutral.
func alignment(tokens []string, vocab map[string]float64) float64 {
	if len(vocab) == 0 || len(tokens) == 0 {
		return neutralScore
	}
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	terms := make([]string, 0, len(vocab)+len(tf))
	for t := range vocab {
		terms = append(terms, t)
	}
	for t := range tf {
		if _, ok := vocab[t]; !ok {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)

	a := make([]float64, len(terms))
	b := make([]float64, len(terms))
	for i, t := range terms {
		a[i] = tf[t]
		b[i] = vocab[t]
	}
	return clamp(cosineSimilarity(a, b))
}

// #endregion alignment

// #region helpers

// tokenize splits text into lowercase whitespace-delimited tokens.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// cosineSimilarity computes cosine similarity between two vectors.
// Returns 0 for zero-length or mismatched vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// #endregion helpers
