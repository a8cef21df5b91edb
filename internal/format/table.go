// Package format renders landscape summaries as terminal or Markdown tables.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects the table renderer.
type Mode int

const (
	ASCII    Mode = iota // box-drawing terminal table
	Markdown             // GitHub-flavoured Markdown
)

// ParseMode maps "markdown"/"md" to Markdown; anything else is ASCII.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return Markdown
	default:
		return ASCII
	}
}

// Table accumulates rows and renders them in one Mode.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns an empty table rendering in m.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

func (t *Table) Row(vals ...any) {
	t.writer.AppendRow(table.Row(vals))
}

func (t *Table) Footer(vals ...any) {
	t.writer.AppendFooter(table.Row(vals))
}

// AlignRight right-aligns the given 1-based columns.
func (t *Table) AlignRight(cols ...int) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, n := range cols {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight}
	}
	t.writer.SetColumnConfigs(cfgs)
}

func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// Percent formats part/total as "12.5%", or "-" when total is zero.
func Percent(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}
