package assignments

import (
	"context"
	"log/slog"
	"sort"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
)

// #region record
// Record is one precomputed assignment entry. Fields beyond the id are
// carried for display only.
type Record struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Table maps a free-form cluster name to the conversations assigned to it.
type Table map[string][]Record
// #endregion record

// #region source
// Source produces an assignment table, typically from a file or database.
type Source interface {
	Load(ctx context.Context) (Table, error)
}
// #endregion source

// #region resolve
// Resolve normalizes every cluster name and flattens the table into an
// id → label map. Names are visited in sorted order so a conversation listed
// under several clusters always resolves to the same label.
func (t Table) Resolve(logger *slog.Logger) map[string]cluster.Label {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]cluster.Label)
	for _, name := range names {
		label := cluster.NormalizeLabel(name, logger)
		for _, r := range t[name] {
			if r.ID == "" {
				continue
			}
			if _, dup := out[r.ID]; dup {
				continue
			}
			out[r.ID] = label
		}
	}
	return out
}

// Assignment is one resolved id → label row.
type Assignment struct {
	ConversationID string        `json:"conversation_id"`
	ClusterName    string        `json:"cluster_name"`
	Label          cluster.Label `json:"label"`
}
// #endregion resolve
