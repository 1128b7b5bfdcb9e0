package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"datacraft/adapters/excel"
	"datacraft/domain/core"
	domain "datacraft/domain/dataset"
	"datacraft/internal/errors"
)

// Rows flattens a frame back to raw rows, header first. Cells are written
// exactly as stored.
func Rows(f *domain.Frame) [][]string {
	rows := make([][]string, 0, f.RowCount()+1)
	rows = append(rows, f.ColumnNames())
	for i := 0; i < f.RowCount(); i++ {
		rows = append(rows, f.Row(i))
	}
	return rows
}

// WriteCSV serializes a frame as CSV.
func WriteCSV(w io.Writer, f *domain.Frame) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Rows(f)); err != nil {
		return errors.LoadFailed("failed to write csv", err)
	}
	writer.Flush()
	return writer.Error()
}

// Serialize renders a frame in the format implied by the file name, for
// writing a cleaned dataset back to where it was loaded from.
func Serialize(name string, f *domain.Frame) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		var buf bytes.Buffer
		if err := WriteCSV(&buf, f); err != nil {
			return nil, err
		}
		return &buf, nil
	case ".xlsx", ".xls":
		data, err := excel.Serialize(Rows(f))
		if err != nil {
			return nil, errors.LoadFailed("failed to write workbook", err)
		}
		return bytes.NewReader(data), nil
	default:
		return nil, errors.LoadFailed("unsupported file type", core.ErrUnsupportedFile)
	}
}
