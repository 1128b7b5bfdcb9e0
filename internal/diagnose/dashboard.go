package diagnose

import (
	"fmt"
	"math"
	"strings"
	"time"

	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
)

// FileMeta carries the filesystem facts the dashboard card needs.
type FileMeta struct {
	Name     string
	SizeByte int64
	ModTime  time.Time
}

// ComputeDashboard builds the per-file health card: missing, duplicate and
// whitespace-inconsistency percentages folded into one quality score with a
// coarse RAW / CLEANING / CLEANED status.
func ComputeDashboard(frame *dataset.Frame, meta FileMeta) diagnostic.DashboardSummary {
	rows := frame.RowCount()
	cols := frame.ColumnCount()

	totalCells := rows * cols
	if totalCells == 0 {
		totalCells = 1
	}
	missingCells := 0
	for _, name := range frame.ColumnNames() {
		missingCells += frame.MissingCount(name)
	}
	missingPct := 100 * float64(missingCells) / float64(totalCells)

	duplicatePct := 0.0
	inconsistencyPct := 0.0
	if rows > 0 {
		duplicatePct = 100 * float64(frame.DuplicateRowCount()) / float64(rows)
		inconsistencyPct = 100 * float64(whitespaceInconsistentRows(frame)) / float64(rows)
	}

	quality := math.Max(0, 100-missingPct-duplicatePct-inconsistencyPct)

	status := diagnostic.StatusRaw
	if quality > 90 {
		status = diagnostic.StatusCleaned
	} else if quality > 60 {
		status = diagnostic.StatusCleaning
	}

	return diagnostic.DashboardSummary{
		ID:              meta.Name,
		Filename:        meta.Name,
		Size:            fmt.Sprintf("%.1fMB", float64(meta.SizeByte)/(1024*1024)),
		Rows:            rows,
		Columns:         cols,
		Status:          status,
		QualityScore:    int(math.Round(quality)),
		Missing:         int(math.Round(missingPct)),
		Duplicates:      int(math.Round(duplicatePct)),
		Inconsistencies: int(math.Round(inconsistencyPct)),
		LastModified:    meta.ModTime.Format("2006-01-02"),
	}
}

// whitespaceInconsistentRows counts rows with at least one non-missing cell
// carrying leading or trailing whitespace. Cells are kept untrimmed at load
// time precisely so this check sees the original values.
func whitespaceInconsistentRows(frame *dataset.Frame) int {
	rows := frame.RowCount()
	count := 0
	for i := 0; i < rows; i++ {
		for _, cell := range frame.Row(i) {
			if frame.IsMissing(cell) {
				continue
			}
			if strings.TrimSpace(cell) != cell {
				count++
				break
			}
		}
	}
	return count
}
