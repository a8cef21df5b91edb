package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danielpatrickdp/convo-terrain/internal/format"
	"github.com/danielpatrickdp/convo-terrain/internal/landscape"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// tableMode reports whether the output flag asks for a table and which kind.
func tableMode() (format.Mode, bool) {
	switch rootFlags.output {
	case "table", "ascii":
		return format.ASCII, true
	case "markdown", "md":
		return format.Markdown, true
	}
	return format.ASCII, false
}

// writeResults prints the per-conversation table when a table is requested,
// otherwise the JSON projection.
func writeResults(w io.Writer, results []landscape.Result, project func(landscape.Result) any) error {
	if m, ok := tableMode(); ok {
		_, err := fmt.Fprint(w, format.ResultsTable(results, m))
		return err
	}
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = project(r)
	}
	return writeJSON(w, out)
}
