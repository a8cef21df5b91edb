package landscape

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/danielpatrickdp/convo-terrain/internal/conversation"
)

// #region schema

//go:embed schema.json
var schemaData []byte

const schemaName = "conversations.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(schemaData)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaName)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// #endregion schema

// #region loader

// conversationFile is the wrapped fixture form.
type conversationFile struct {
	Conversations []conversation.Conversation `json:"conversations"`
}

// LoadConversations reads a fixture file holding either a bare array of
// conversations or {"conversations": [...]}.
func LoadConversations(path string) ([]conversation.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conversations %s: %w", path, err)
	}
	convs, err := DecodeConversations(data)
	if err != nil {
		return nil, fmt.Errorf("load conversations %s: %w", path, err)
	}
	return convs, nil
}

// DecodeConversations validates data against the fixture schema and decodes it.
func DecodeConversations(data []byte) ([]conversation.Conversation, error) {
	if err := ValidateConversations(data); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var convs []conversation.Conversation
		if err := json.Unmarshal(trimmed, &convs); err != nil {
			return nil, fmt.Errorf("decode conversations: %w", err)
		}
		return convs, nil
	}
	var f conversationFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	return f.Conversations, nil
}

// ValidateConversations checks raw fixture JSON against the embedded schema.
func ValidateConversations(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("parse conversations: %w", err)
	}
	if err := s.Validate(instance); err != nil {
		return fmt.Errorf("validate conversations: %w", err)
	}
	return nil
}

// #endregion loader
