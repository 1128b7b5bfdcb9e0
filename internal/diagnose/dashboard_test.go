package diagnose

import (
	"fmt"
	"testing"
	"time"

	"datacraft/domain/diagnostic"
)

func TestComputeDashboard_CleanData(t *testing.T) {
	frame := buildFrame(t, map[string][]string{
		"a": {"1", "2", "3", "4"},
		"b": {"w", "x", "y", "z"},
	}, []string{"a", "b"})

	meta := FileMeta{
		Name:     "clean.csv",
		SizeByte: 2 * 1024 * 1024,
		ModTime:  time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	summary := ComputeDashboard(frame, meta)

	if summary.QualityScore != 100 {
		t.Errorf("Expected quality 100, got %d", summary.QualityScore)
	}
	if summary.Status != diagnostic.StatusCleaned {
		t.Errorf("Expected CLEANED, got %s", summary.Status)
	}
	if summary.Size != "2.0MB" {
		t.Errorf("Expected 2.0MB, got %s", summary.Size)
	}
	if summary.LastModified != "2024-06-15" {
		t.Errorf("Expected 2024-06-15, got %s", summary.LastModified)
	}
	if summary.Rows != 4 || summary.Columns != 2 {
		t.Errorf("Unexpected shape: %d x %d", summary.Rows, summary.Columns)
	}
}

func TestComputeDashboard_QualitySubtractsEachSignal(t *testing.T) {
	// 10 rows, 1 column: 2 missing (20%), 1 duplicated row (10%),
	// 1 whitespace row (10%): quality 60 -> RAW. The two missing cells use
	// different tokens so they do not also count as duplicate rows.
	frame := buildFrame(t, map[string][]string{
		"v": {"a", "b", "c", "d", "e", "f", "f", " g", "", "NA"},
	}, []string{"v"})

	summary := ComputeDashboard(frame, FileMeta{Name: "messy.csv"})
	if summary.Missing != 20 {
		t.Errorf("Expected 20%% missing, got %d", summary.Missing)
	}
	if summary.Duplicates != 10 {
		t.Errorf("Expected 10%% duplicates, got %d", summary.Duplicates)
	}
	if summary.Inconsistencies != 10 {
		t.Errorf("Expected 10%% inconsistencies, got %d", summary.Inconsistencies)
	}
	if summary.QualityScore != 60 {
		t.Errorf("Expected quality 60, got %d", summary.QualityScore)
	}
	if summary.Status != diagnostic.StatusRaw {
		t.Errorf("Quality 60 is not above the CLEANING cutoff, got %s", summary.Status)
	}
}

func TestComputeDashboard_StatusBoundaries(t *testing.T) {
	// 100 rows, 2 columns, 35 missing cells and no duplicate rows:
	// quality 82.5 -> CLEANING.
	ids := make([]string, 100)
	vals := make([]string, 100)
	for i := range ids {
		ids[i] = fmt.Sprintf("row-%03d", i)
		if i < 35 {
			vals[i] = ""
		} else {
			vals[i] = fmt.Sprintf("v%d", i%20)
		}
	}
	frame := buildFrame(t, map[string][]string{"id": ids, "value": vals}, []string{"id", "value"})

	summary := ComputeDashboard(frame, FileMeta{Name: "mid.csv"})
	if summary.Status != diagnostic.StatusCleaning {
		t.Errorf("Quality %d should be CLEANING, got %s", summary.QualityScore, summary.Status)
	}
}

func TestComputeDashboard_QualityNeverNegative(t *testing.T) {
	frame := buildFrame(t, map[string][]string{
		"a": {"", "", "", ""},
		"b": {"", "", "", ""},
	}, []string{"a", "b"})

	summary := ComputeDashboard(frame, FileMeta{Name: "empty.csv"})
	if summary.QualityScore < 0 {
		t.Errorf("Quality must clamp at zero, got %d", summary.QualityScore)
	}
	if summary.Status != diagnostic.StatusRaw {
		t.Errorf("Expected RAW, got %s", summary.Status)
	}
}
