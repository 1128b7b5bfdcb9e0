// Package cleaning applies the fixed vocabulary of dataset treatments. Every
// operation is pure: it takes a frame and returns a new frame plus an audit
// of what changed, leaving the input untouched.
package cleaning

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"datacraft/domain/core"
	"datacraft/domain/dataset"
)

// Audit records the effect of one cleaning operation.
type Audit struct {
	Operation    string `json:"operation"`
	Column       string `json:"column,omitempty"`
	RowsBefore   int    `json:"rows_before"`
	RowsAfter    int    `json:"rows_after"`
	CellsChanged int    `json:"cells_changed"`
	Skipped      bool   `json:"skipped,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

// ScaleMethod selects the scaling transform.
type ScaleMethod string

const (
	ScaleStandard ScaleMethod = "standard"
	ScaleMinMax   ScaleMethod = "minmax"
)

// DropDuplicateRows removes every row whose cells exactly match an earlier row.
func DropDuplicateRows(f *dataset.Frame) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: "drop_duplicate_rows", RowsBefore: f.RowCount()}

	keep := make([]int, 0, f.RowCount())
	seen := make(map[string]struct{}, f.RowCount())
	for i := 0; i < f.RowCount(); i++ {
		key := strings.Join(f.Row(i), "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	out := selectRows(f, keep)
	audit.RowsAfter = out.RowCount()
	return out, audit, nil
}

// DropNARows removes rows with a missing value in the named column, or in any
// column when the name is empty.
func DropNARows(f *dataset.Frame, column string) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: "drop_na_rows", Column: column, RowsBefore: f.RowCount()}

	var cols []dataset.Column
	if column == "" {
		cols = f.Columns()
	} else {
		col, ok := f.Column(column)
		if !ok {
			return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
		}
		cols = []dataset.Column{col}
	}

	keep := make([]int, 0, f.RowCount())
	for i := 0; i < f.RowCount(); i++ {
		missing := false
		for _, col := range cols {
			if f.IsMissing(col.Cells[i]) {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, i)
		}
	}

	out := selectRows(f, keep)
	audit.RowsAfter = out.RowCount()
	return out, audit, nil
}

// ImputeMean fills missing cells with the column mean.
func ImputeMean(f *dataset.Frame, column string) (*dataset.Frame, Audit, error) {
	return imputeNumeric(f, column, "impute_mean", stats.Mean)
}

// ImputeMedian fills missing cells with the column median.
func ImputeMedian(f *dataset.Frame, column string) (*dataset.Frame, Audit, error) {
	return imputeNumeric(f, column, "impute_median", stats.Median)
}

func imputeNumeric(f *dataset.Frame, column, op string, statistic func(stats.Float64Data) (float64, error)) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: op, Column: column, RowsBefore: f.RowCount(), RowsAfter: f.RowCount()}

	col, ok := f.Column(column)
	if !ok {
		return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
	}

	values := numericValues(f, col)
	if len(values) == 0 {
		return nil, audit, core.NewColumnError(column, core.ErrNotNumeric)
	}

	fill, err := statistic(values)
	if err != nil {
		return nil, audit, core.NewColumnError(column, core.ErrInsufficientData)
	}

	out, changed := fillMissing(f, column, formatNumber(fill))
	audit.CellsChanged = changed
	audit.Detail = fmt.Sprintf("filled with %s", formatNumber(fill))
	return out, audit, nil
}

// ImputeMode fills missing cells with the most frequent value. Ties break
// toward the value seen first.
func ImputeMode(f *dataset.Frame, column string) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: "impute_mode", Column: column, RowsBefore: f.RowCount(), RowsAfter: f.RowCount()}

	col, ok := f.Column(column)
	if !ok {
		return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range col.Cells {
		if f.IsMissing(v) {
			continue
		}
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return nil, audit, core.NewColumnError(column, core.ErrInsufficientData)
	}

	mode := ""
	for v := range counts {
		if mode == "" || counts[v] > counts[mode] ||
			(counts[v] == counts[mode] && firstSeen[v] < firstSeen[mode]) {
			mode = v
		}
	}

	out, changed := fillMissing(f, column, mode)
	audit.CellsChanged = changed
	audit.Detail = fmt.Sprintf("filled with %q", mode)
	return out, audit, nil
}

// ImputeConstant fills missing cells with the given value.
func ImputeConstant(f *dataset.Frame, column, value string) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: "impute_constant", Column: column, RowsBefore: f.RowCount(), RowsAfter: f.RowCount()}

	if !f.HasColumn(column) {
		return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
	}
	if f.IsMissing(value) {
		return nil, audit, fmt.Errorf("%w: fill value %q is itself a missing token", core.ErrInvalidParams, value)
	}

	out, changed := fillMissing(f, column, value)
	audit.CellsChanged = changed
	audit.Detail = fmt.Sprintf("filled with %q", value)
	return out, audit, nil
}

// Scale appends a scaled copy of a numeric column as <column>_<method>_scaled.
// The source column must be fully numeric with no missing cells. When the
// derived column already exists the frame comes back unchanged with a skipped
// audit.
func Scale(f *dataset.Frame, column string, method ScaleMethod) (*dataset.Frame, Audit, error) {
	op := "standard_scale"
	if method == ScaleMinMax {
		op = "minmax_scale"
	}
	audit := Audit{Operation: op, Column: column, RowsBefore: f.RowCount(), RowsAfter: f.RowCount()}

	col, ok := f.Column(column)
	if !ok {
		return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
	}

	derived := fmt.Sprintf("%s_%s_scaled", column, method)
	if f.HasColumn(derived) {
		audit.Skipped = true
		audit.Detail = fmt.Sprintf("column %q already exists", derived)
		return f, audit, nil
	}

	values := make([]float64, len(col.Cells))
	for i, v := range col.Cells {
		if f.IsMissing(v) {
			return nil, audit, core.NewColumnError(column, core.ErrHasMissing)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			return nil, audit, core.NewColumnError(column, core.ErrNotNumeric)
		}
		values[i] = parsed
	}

	scaled, err := scaleValues(values, method)
	if err != nil {
		return nil, audit, core.NewColumnError(column, err)
	}

	cells := make([]string, len(scaled))
	for i, v := range scaled {
		cells[i] = formatNumber(v)
	}

	cols := f.Columns()
	cols = append(cols, dataset.Column{Name: derived, Cells: cells})
	audit.CellsChanged = len(cells)
	audit.Detail = fmt.Sprintf("added column %q", derived)
	return dataset.NewFrame(cols, f.MissingTokens()), audit, nil
}

func scaleValues(values []float64, method ScaleMethod) ([]float64, error) {
	out := make([]float64, len(values))
	switch method {
	case ScaleStandard:
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, core.ErrInsufficientData
		}
		sd := 0.0
		if len(values) > 1 {
			sd, err = stats.StandardDeviationSample(values)
			if err != nil {
				return nil, core.ErrInsufficientData
			}
		}
		for i, v := range values {
			if sd == 0 {
				out[i] = 0
				continue
			}
			out[i] = (v - mean) / sd
		}
	case ScaleMinMax:
		min, err := stats.Min(values)
		if err != nil {
			return nil, core.ErrInsufficientData
		}
		max, _ := stats.Max(values)
		span := max - min
		for i, v := range values {
			if span == 0 {
				out[i] = 0
				continue
			}
			out[i] = (v - min) / span
		}
	default:
		return nil, fmt.Errorf("%w: unknown scale method %q", core.ErrInvalidParams, method)
	}
	return out, nil
}

// DeleteColumn removes a column from the frame.
func DeleteColumn(f *dataset.Frame, column string) (*dataset.Frame, Audit, error) {
	audit := Audit{Operation: "delete_column", Column: column, RowsBefore: f.RowCount(), RowsAfter: f.RowCount()}

	if !f.HasColumn(column) {
		return nil, audit, core.NewColumnError(column, core.ErrColumnNotFound)
	}

	cols := make([]dataset.Column, 0, f.ColumnCount()-1)
	for _, col := range f.Columns() {
		if col.Name != column {
			cols = append(cols, col)
		}
	}
	audit.Detail = fmt.Sprintf("removed column %q", column)
	return dataset.NewFrame(cols, f.MissingTokens()), audit, nil
}

// selectRows builds a new frame from the rows at the given indices, in order.
func selectRows(f *dataset.Frame, indices []int) *dataset.Frame {
	sort.Ints(indices)
	cols := make([]dataset.Column, 0, f.ColumnCount())
	for _, col := range f.Columns() {
		cells := make([]string, 0, len(indices))
		for _, i := range indices {
			cells = append(cells, col.Cells[i])
		}
		cols = append(cols, dataset.Column{Name: col.Name, Cells: cells})
	}
	return dataset.NewFrame(cols, f.MissingTokens())
}

func fillMissing(f *dataset.Frame, column, value string) (*dataset.Frame, int) {
	changed := 0
	cols := f.Columns()
	for ci := range cols {
		if cols[ci].Name != column {
			continue
		}
		cells := make([]string, len(cols[ci].Cells))
		copy(cells, cols[ci].Cells)
		for i, v := range cells {
			if f.IsMissing(v) {
				cells[i] = value
				changed++
			}
		}
		cols[ci].Cells = cells
	}
	return dataset.NewFrame(cols, f.MissingTokens()), changed
}

func numericValues(f *dataset.Frame, col dataset.Column) stats.Float64Data {
	values := make([]float64, 0, len(col.Cells))
	for _, v := range col.Cells {
		if f.IsMissing(v) {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			continue
		}
		values = append(values, parsed)
	}
	return values
}

// formatNumber renders a float the way the original cells would carry it,
// without trailing zero noise.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
