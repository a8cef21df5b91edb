package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// #region role

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole normalizes a speaker label. Anything not recognised as the
// assistant is treated as the user.
func ParseRole(s string) Role {
	switch normalize(s) {
	case "assistant", "ai", "model", "bot":
		return RoleAssistant
	default:
		return RoleUser
	}
}

// #endregion role

// #region pad

// PAD is a Pleasure–Arousal–Dominance affect reading for one message.
// Intensity is the PAD engine's own reading when it supplies one. When nil,
// the affect package derives intensity from pleasure and arousal.
type PAD struct {
	Pleasure  float64  `json:"pleasure"`
	Arousal   float64  `json:"arousal"`
	Dominance float64  `json:"dominance"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// #endregion pad

// #region message

// Message is a single conversational turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	PAD     *PAD   `json:"pad,omitempty"`
}

// #endregion message

// #region conversation

// Metadata carries optional per-conversation annotations.
type Metadata struct {
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// Conversation is a transcript plus its optional classification.
type Conversation struct {
	ID             string          `json:"id"`
	Messages       []Message       `json:"messages"`
	Classification *Classification `json:"classification,omitempty"`
	Metadata       Metadata        `json:"metadata,omitempty"`
}

// #endregion conversation

// #region classification

// Dimension is one categorical label with the classifier's confidence.
// It decodes from either a bare string or {"category", "confidence"}.
type Dimension struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// UnmarshalJSON accepts "question-answer" as well as the object form.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode dimension: %w", err)
		}
		d.Category = s
		d.Confidence = nil
		return nil
	}
	type plain Dimension
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode dimension: %w", err)
	}
	*d = Dimension(p)
	return nil
}

// RoleDistribution is a probability mass over role names.
type RoleDistribution struct {
	Distribution map[string]float64 `json:"distribution"`
	Confidence   *float64           `json:"confidence,omitempty"`
}

// Classification is the external classifier's output for a conversation.
// Every field is optional; accessors in accessors.go supply defaults.
type Classification struct {
	InteractionPattern  *Dimension        `json:"interactionPattern,omitempty"`
	PowerDynamics       *Dimension        `json:"powerDynamics,omitempty"`
	EmotionalTone       *Dimension        `json:"emotionalTone,omitempty"`
	EngagementStyle     *Dimension        `json:"engagementStyle,omitempty"`
	ConversationPurpose *Dimension        `json:"conversationPurpose,omitempty"`
	HumanRole           *RoleDistribution `json:"humanRole,omitempty"`
	AIRole              *RoleDistribution `json:"aiRole,omitempty"`

	// Explicit axis overrides; derived from the fields above when absent.
	FunctionAxis  *float64 `json:"communicationFunction,omitempty"`
	StructureAxis *float64 `json:"conversationStructure,omitempty"`
}

// #endregion classification
