// Package excel reads Excel workbooks into raw string rows for the dataset
// loader. Only the first sheet is consulted.
package excel

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xuri/excelize/v2"
)

// Reader opens one workbook and extracts its first sheet as raw rows.
type Reader struct {
	filePath string
}

// NewReader creates a reader for the given workbook path.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// ReadRows returns the first sheet as raw string rows, header row included.
// Cells come back exactly as excelize formats them; no trimming or coercion
// happens here.
func (r *Reader) ReadRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("excel file not found: %s", r.filePath)
	}

	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", r.filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	log.Printf("[ExcelReader] %s: sheet %q read in %.2fms (%d rows)",
		r.filePath, sheets[0], float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}
