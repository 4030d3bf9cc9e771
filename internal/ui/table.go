package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table collects rows and renders them in aligned columns on Flush.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{out: out, headers: headers}
}

// Row appends a row. Values are formatted with %v; missing trailing
// columns render empty.
func (t *Table) Row(values ...any) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) {
			row[i] = fmt.Sprintf("%v", values[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Flush renders the header and all collected rows.
func (t *Table) Flush() error {
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.headers, "\t")); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
