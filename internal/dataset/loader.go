// Package dataset loads CSV and Excel files into frames for the diagnostic
// engine. Malformed records are skipped, short records padded, and cells kept
// untrimmed so downstream whitespace checks see the original values.
package dataset

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"datacraft/adapters/excel"
	"datacraft/domain/core"
	domain "datacraft/domain/dataset"
	"datacraft/internal/errors"
)

// Loader turns raw files into frames, applying the missing-token set.
type Loader struct {
	missing domain.TokenSet
}

// NewLoader creates a loader with the default missing tokens plus any
// caller-supplied extras.
func NewLoader(extraTokens ...string) *Loader {
	return &Loader{missing: domain.NewTokenSet(extraTokens...)}
}

// LoadFile dispatches on the file extension.
func (l *Loader) LoadFile(path string) (*domain.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.LoadFailed("failed to open csv file", err)
		}
		defer f.Close()
		return l.LoadCSV(f)
	case ".xlsx", ".xls":
		rows, err := excel.NewReader(path).ReadRows()
		if err != nil {
			return nil, errors.LoadFailed("failed to read workbook", err)
		}
		return l.fromRows(rows)
	default:
		return nil, errors.LoadFailed("unsupported file type", core.ErrUnsupportedFile)
	}
}

// LoadCSV parses CSV content. The first record is the header; records with
// more fields than the header are skipped, shorter ones padded with empty
// (missing) cells.
func (l *Loader) LoadCSV(r io.Reader) (*domain.Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.LoadFailed("failed to parse csv", err)
	}
	return l.fromRows(records)
}

// fromRows builds a frame from raw rows, header first.
func (l *Loader) fromRows(rows [][]string) (*domain.Frame, error) {
	if len(rows) == 0 {
		return nil, errors.LoadFailed("file is empty", core.ErrEmptyDataset)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) == 0 {
		return nil, errors.LoadFailed("file has no columns", core.ErrEmptyDataset)
	}

	cols := make([]domain.Column, len(header))
	for i, name := range header {
		cols[i] = domain.Column{Name: name, Cells: make([]string, 0, len(rows)-1)}
	}

	skipped := 0
	for _, record := range rows[1:] {
		if len(record) > len(header) {
			skipped++
			continue
		}
		for i := range header {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			cols[i].Cells = append(cols[i].Cells, cell)
		}
	}
	if skipped > 0 {
		log.Printf("[Loader] skipped %d malformed records (more fields than header)", skipped)
	}

	frame := domain.NewFrame(cols, l.missing)
	if frame.RowCount() == 0 {
		return nil, errors.LoadFailed("file has no data rows", core.ErrEmptyDataset)
	}
	return frame, nil
}
