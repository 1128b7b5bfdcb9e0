// Package dataset defines the in-memory tabular model the diagnostic engine
// reads. A Frame holds raw string cells exactly as parsed from the source
// file; typing and coercion are the engine's job, not the frame's. Frames are
// never mutated after construction - treatment operations build new frames.
package dataset

import "strings"

// Column is one named, ordered sequence of raw cell values.
type Column struct {
	Name  string
	Cells []string
}

// Frame is an ordered sequence of named columns of equal length.
type Frame struct {
	cols    []Column
	missing TokenSet
	rows    int
}

// NewFrame constructs a frame from columns. Shorter columns are padded with
// empty cells so every column has the same length. The missing token set
// defaults to DefaultMissingTokens when nil.
func NewFrame(cols []Column, missing TokenSet) *Frame {
	if missing == nil {
		missing = DefaultMissingTokens()
	}
	rows := 0
	for _, c := range cols {
		if len(c.Cells) > rows {
			rows = len(c.Cells)
		}
	}
	owned := make([]Column, len(cols))
	for i, c := range cols {
		cells := make([]string, rows)
		copy(cells, c.Cells)
		owned[i] = Column{Name: c.Name, Cells: cells}
	}
	return &Frame{cols: owned, missing: missing, rows: rows}
}

// RowCount returns the number of data rows.
func (f *Frame) RowCount() int { return f.rows }

// ColumnCount returns the number of columns.
func (f *Frame) ColumnCount() int { return len(f.cols) }

// ColumnNames returns column names in declaration order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.Column(name)
	return ok
}

// Columns returns a copy of the column list. Cell slices are shared; callers
// must not write to them.
func (f *Frame) Columns() []Column {
	out := make([]Column, len(f.cols))
	copy(out, f.cols)
	return out
}

// Row returns the cells of row i in column order.
func (f *Frame) Row(i int) []string {
	row := make([]string, len(f.cols))
	for j, c := range f.cols {
		row[j] = c.Cells[i]
	}
	return row
}

// MissingTokens returns the frame's missing token set.
func (f *Frame) MissingTokens() TokenSet { return f.missing }

// IsMissing reports whether a cell value counts as missing.
func (f *Frame) IsMissing(v string) bool { return f.missing.Contains(v) }

// NonMissing returns the non-missing cells of a column, order preserved.
func (f *Frame) NonMissing(name string) []string {
	col, ok := f.Column(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(col.Cells))
	for _, v := range col.Cells {
		if !f.missing.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount returns the number of missing cells in a column.
func (f *Frame) MissingCount(name string) int {
	col, ok := f.Column(name)
	if !ok {
		return 0
	}
	n := 0
	for _, v := range col.Cells {
		if f.missing.Contains(v) {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct non-missing values in a column.
func (f *Frame) UniqueCount(name string) int {
	col, ok := f.Column(name)
	if !ok {
		return 0
	}
	seen := make(map[string]struct{})
	for _, v := range col.Cells {
		if !f.missing.Contains(v) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// MissingIndicator returns the column's missingness as a 0/1 vector,
// one entry per row.
func (f *Frame) MissingIndicator(name string) []float64 {
	col, ok := f.Column(name)
	if !ok {
		return nil
	}
	out := make([]float64, len(col.Cells))
	for i, v := range col.Cells {
		if f.missing.Contains(v) {
			out[i] = 1
		}
	}
	return out
}

// rowKey joins a row's cells with a separator that cannot appear in csv cells.
func (f *Frame) rowKey(i int) string {
	return strings.Join(f.Row(i), "\x1f")
}

// DuplicateRowCount counts rows whose full cell sequence repeats an earlier
// row, matching whole-row equality semantics.
func (f *Frame) DuplicateRowCount() int {
	seen := make(map[string]struct{}, f.rows)
	dups := 0
	for i := 0; i < f.rows; i++ {
		key := f.rowKey(i)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
