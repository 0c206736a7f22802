// Package dataset provides a small immutable in-memory table for CSV data:
// named string columns, string cells, no type coercion. Typing and recoding
// happen downstream in the domain package.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table holds rows of string cells under an ordered set of column names.
// A Table is never mutated after construction; Project returns a new Table.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// SchemaError reports required columns absent from a table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// New builds a Table from a header and data rows. Rows shorter than the
// header are padded with empty cells; longer rows are truncated.
func New(columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	fitted := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(columns) {
			fitted[i] = row
			continue
		}
		r := make([]string, len(columns))
		copy(r, row)
		fitted[i] = r
	}

	return &Table{columns: columns, index: index, rows: fitted}
}

// ReadCSV parses CSV data whose first record is the header row. Surrounding
// whitespace is trimmed from every cell, header cells included.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := all[1:]
	for _, row := range rows {
		for j, cell := range row {
			row[j] = strings.TrimSpace(cell)
		}
	}

	return New(header, rows), nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Value returns the cell at row i under the named column, or the empty
// string when the column does not exist.
func (t *Table) Value(i int, column string) string {
	j, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.rows[i][j]
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Project returns a new table containing exactly the requested columns in
// the requested order, row order unchanged. It fails fast with a
// *SchemaError naming every absent column, so a malformed export is caught
// before any row is touched.
func (t *Table) Project(columns ...string) (*Table, error) {
	var missing []string
	indices := make([]int, 0, len(columns))
	for _, c := range columns {
		j, ok := t.index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		indices = append(indices, j)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		r := make([]string, len(indices))
		for k, j := range indices {
			r[k] = row[j]
		}
		rows[i] = r
	}

	names := make([]string, len(columns))
	copy(names, columns)
	return New(names, rows), nil
}
