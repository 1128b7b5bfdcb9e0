package dataset

import (
	"testing"
)

func frameOf(t *testing.T, cols ...Column) *Frame {
	t.Helper()
	return NewFrame(cols, DefaultMissingTokens())
}

func TestNewFrame_PadsShortColumns(t *testing.T) {
	f := frameOf(t,
		Column{Name: "a", Cells: []string{"1", "2", "3"}},
		Column{Name: "b", Cells: []string{"x"}},
	)

	if f.RowCount() != 3 {
		t.Fatalf("Expected 3 rows, got %d", f.RowCount())
	}
	if got := f.Row(2); got[1] != "" {
		t.Errorf("Short column must pad with empty cells, got %q", got[1])
	}
	if f.MissingCount("b") != 2 {
		t.Errorf("Padded cells count as missing, got %d", f.MissingCount("b"))
	}
}

func TestFrame_MissingAndUniqueCounts(t *testing.T) {
	f := frameOf(t, Column{Name: "v", Cells: []string{"a", "b", "a", "NA", ""}})

	if f.MissingCount("v") != 2 {
		t.Errorf("Expected 2 missing, got %d", f.MissingCount("v"))
	}
	if f.UniqueCount("v") != 2 {
		t.Errorf("Unique counts exclude missing cells, got %d", f.UniqueCount("v"))
	}
	if got := f.NonMissing("v"); len(got) != 3 {
		t.Errorf("Expected 3 non-missing values, got %v", got)
	}
}

func TestFrame_MissingIndicator(t *testing.T) {
	f := frameOf(t, Column{Name: "v", Cells: []string{"1", "", "3", "null"}})

	ind := f.MissingIndicator("v")
	want := []float64{0, 1, 0, 1}
	for i := range want {
		if ind[i] != want[i] {
			t.Fatalf("Indicator mismatch at %d: got %v want %v", i, ind, want)
		}
	}

	if f.MissingIndicator("nope") != nil {
		t.Error("Unknown column should yield a nil indicator")
	}
}

func TestFrame_DuplicateRowCount(t *testing.T) {
	f := frameOf(t,
		Column{Name: "a", Cells: []string{"1", "1", "1", "2"}},
		Column{Name: "b", Cells: []string{"x", "x", "y", "x"}},
	)

	// Only the second ("1","x") duplicates an earlier row.
	if got := f.DuplicateRowCount(); got != 1 {
		t.Errorf("Expected 1 duplicate row, got %d", got)
	}
}

func TestFrame_DuplicateRowsNotFooledByJoinedCells(t *testing.T) {
	// ("ab","c") and ("a","bc") concatenate identically; the separator keeps
	// them distinct.
	f := frameOf(t,
		Column{Name: "a", Cells: []string{"ab", "a"}},
		Column{Name: "b", Cells: []string{"c", "bc"}},
	)

	if got := f.DuplicateRowCount(); got != 0 {
		t.Errorf("Expected no duplicates, got %d", got)
	}
}

func TestFrame_ColumnOrderPreserved(t *testing.T) {
	f := frameOf(t,
		Column{Name: "z", Cells: []string{"1"}},
		Column{Name: "a", Cells: []string{"2"}},
		Column{Name: "m", Cells: []string{"3"}},
	)

	names := f.ColumnNames()
	if names[0] != "z" || names[1] != "a" || names[2] != "m" {
		t.Errorf("Declaration order must be preserved, got %v", names)
	}
}

func TestTokenSet_ExactMatching(t *testing.T) {
	tokens := DefaultMissingTokens()

	if !tokens.Contains("NA") || !tokens.Contains("") {
		t.Error("Default tokens must include NA and the empty string")
	}
	if tokens.Contains(" NA") || tokens.Contains("na") {
		t.Error("Matching is exact: no trimming, no case folding")
	}
}
