package assignments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads an assignment table from a YAML or JSON file, chosen by extension.
type FileSource struct {
	Path string
}

// Load implements Source.
func (f FileSource) Load(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read assignments: %w", err)
	}
	return DecodeTable(data, filepath.Ext(f.Path))
}

// DecodeTable parses raw table bytes. ext selects YAML for .yaml/.yml and JSON otherwise.
func DecodeTable(data []byte, ext string) (Table, error) {
	var t Table
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse assignments yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse assignments json: %w", err)
		}
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}
