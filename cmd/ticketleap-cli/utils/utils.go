package utils

import (
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// RenderMap prints a two column table of m sorted by key. Most lookups
// in the admin panel come back as name to uuid maps, this keeps their
// output stable between runs.
func RenderMap(keyHeader, valueHeader string, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	t := NewTable()
	t.AppendHeader(table.Row{keyHeader, valueHeader})
	for _, k := range keys {
		t.AppendRow(table.Row{k, m[k]})
	}
	t.Render()
}
