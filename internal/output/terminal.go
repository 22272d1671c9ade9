package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// TerminalWidth returns the terminal width for w, or defaultTermWidth if w is
// not a terminal or the width cannot be determined.
func TerminalWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // file descriptors fit in int
			return width
		}
	}
	return defaultTermWidth
}

// NewGroupedWrappingTable returns a tablewriter that merges repeated values in
// the first column, separates groups with a line, and wraps content to fit
// the terminal. minWidth and overhead behave as in NewWrappingTable.
func NewGroupedWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	maxColWidth := max(minWidth, TerminalWidth(w)-overhead)
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.On},
			},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{MergeMode: tw.MergeHierarchical, AutoWrap: tw.WrapNormal},
				ColMaxWidths: tw.CellWidth{Global: maxColWidth},
			},
		}),
	)
}

// NewWrappingTable returns a tablewriter that wraps cell content to fit the
// terminal. minWidth is the floor for the computed column max width;
// overhead is what borders, padding, and fixed columns consume.
func NewWrappingTable(w io.Writer, minWidth, overhead int) *tablewriter.Table {
	maxColWidth := max(minWidth, TerminalWidth(w)-overhead)
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting:   tw.CellFormatting{AutoWrap: tw.WrapNormal},
				ColMaxWidths: tw.CellWidth{Global: maxColWidth},
			},
		}),
	)
}

// Field is one labelled value of a result.
type Field struct {
	Label string
	Value string
}

// WriteFieldTable renders fields as a two-column Field/Value table, skipping
// empty values.
func WriteFieldTable(w io.Writer, fields []Field) error {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		rows = append(rows, []string{f.Label, Clean(f.Value)})
	}
	if len(rows) == 0 {
		return nil
	}
	tbl := NewWrappingTable(w, 20, 20)
	tbl.Header([]string{"Field", "Value"})
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// WriteFieldLines renders fields as "label: value" lines, skipping empty values.
func WriteFieldLines(w io.Writer, fields []Field) error {
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Label, Clean(f.Value)); err != nil {
			return err
		}
	}
	return nil
}
