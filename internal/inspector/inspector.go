// Package inspector walks a parsed value tree and reports its structure as
// one record per node, in document order.
package inspector

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jsontree-cli/jsontree/internal/value"
)

// Record describes one node of a document.
type Record struct {
	// Path is a JSONPath-style locator, e.g. $.users[0].name.
	Path string
	// Kind is the JSON type name of the node.
	Kind string
	// Children is the item or member count for containers, zero for scalars.
	Children int
	Depth    int
}

// Summary aggregates document-wide statistics.
type Summary struct {
	TotalNodes int
	MaxDepth   int
	Counts     map[string]int // nodes per kind name
}

// Inspect returns one record per node, depth-first in document order.
func Inspect(root *value.Value) []Record {
	var records []Record
	walk(root, "$", 0, &records)
	return records
}

func walk(v *value.Value, path string, depth int, records *[]Record) {
	rec := Record{
		Path:  path,
		Kind:  v.Kind().String(),
		Depth: depth,
	}
	switch v.Kind() {
	case value.Sequence, value.Mapping:
		rec.Children = v.Len()
	}
	*records = append(*records, rec)

	switch v.Kind() {
	case value.Sequence:
		for i, item := range v.Items() {
			walk(item, fmt.Sprintf("%s[%d]", path, i), depth+1, records)
		}
	case value.Mapping:
		for _, m := range v.Members() {
			walk(m.Value, fmt.Sprintf("%s.%s", path, m.Key), depth+1, records)
		}
	}
}

// Summarize computes aggregate statistics from inspection records.
func Summarize(records []Record) Summary {
	s := Summary{Counts: make(map[string]int)}
	for _, r := range records {
		s.TotalNodes++
		if r.Depth > s.MaxDepth {
			s.MaxDepth = r.Depth
		}
		s.Counts[r.Kind]++
	}
	return s
}

// RenderTable writes the records as a table to w.
func RenderTable(w io.Writer, records []Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"PATH", "TYPE", "CHILDREN", "DEPTH"})
	for _, r := range records {
		children := ""
		if r.Kind == "array" || r.Kind == "object" {
			children = fmt.Sprintf("%d", r.Children)
		}
		t.AppendRow(table.Row{r.Path, r.Kind, children, r.Depth})
	}
	sum := Summarize(records)
	t.AppendFooter(table.Row{"nodes", sum.TotalNodes, "max depth", sum.MaxDepth})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderPlain writes one "path type" line per record to w, for piping into
// other tools.
func RenderPlain(w io.Writer, records []Record) {
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\n", r.Path, r.Kind)
	}
}
