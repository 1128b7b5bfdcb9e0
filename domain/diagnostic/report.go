// Package diagnostic defines the report produced by one profiling run. Field
// names are a wire contract: downstream consumers (the per-column
// recommendation flow and the cleaning-plan generator) deserialize these
// structures by exact JSON key.
package diagnostic

import (
	"encoding/json"

	"datacraft/domain/core"
)

// ColumnDiagnostic is the full diagnostic record for one column. Exactly one
// of the four profile pointers is non-nil, matching the inferred type;
// empty and identifier columns carry none.
type ColumnDiagnostic struct {
	ColumnName         string              `json:"column_name"`
	DataType           SemanticType        `json:"data_type"`
	MissingCount       int                 `json:"missing_count"`
	MissingPercentage  float64             `json:"missing_percentage"`
	UniqueCount        int                 `json:"unique_count"`
	UniqueRatio        float64             `json:"unique_ratio"`
	ConstantFlag       bool                `json:"constant_flag"`
	NumericProfile     *NumericProfile     `json:"numeric_profile,omitempty"`
	CategoricalProfile *CategoricalProfile `json:"categorical_profile,omitempty"`
	DatetimeProfile    *DatetimeProfile    `json:"datetime_profile,omitempty"`
	TextProfile        *TextProfile        `json:"text_profile,omitempty"`
	MNARIndicators     MNARIndicatorSet    `json:"mnar_indicators"`
	Temporal           TemporalProfile     `json:"temporal_profile"`
}

// DatasetSummary holds the dataset-level metrics computed once per run.
type DatasetSummary struct {
	RowCount                 int     `json:"row_count"`
	ColumnCount              int     `json:"column_count"`
	DuplicateRowCount        int     `json:"duplicate_row_count"`
	TotalMissingCells        int     `json:"total_missing_cells"`
	OverallMissingPercentage float64 `json:"overall_missing_percentage"`
	MaxMissingColumnPct      float64 `json:"max_missing_column_percentage"`
	RowsGt50PctNulls         int     `json:"rows_gt_50pct_nulls"`
}

// DiagnosticReport is the aggregate output of one profiling run. Column order
// matches the input dataset. The report carries no timestamps so that
// profiling an unmodified dataset twice yields byte-identical serializations.
type DiagnosticReport struct {
	DatasetID string             `json:"dataset_id"`
	Summary   DatasetSummary     `json:"summary"`
	Columns   []ColumnDiagnostic `json:"columns"`
}

// Fingerprint returns the content hash of the serialized report.
func (r *DiagnosticReport) Fingerprint() (core.Fingerprint, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return core.NewFingerprint(data), nil
}

// Column returns the diagnostic for a named column.
func (r *DiagnosticReport) Column(name string) (*ColumnDiagnostic, bool) {
	for i := range r.Columns {
		if r.Columns[i].ColumnName == name {
			return &r.Columns[i], true
		}
	}
	return nil, false
}

// DashboardSummary is the lightweight per-file health card shown on the
// dataset dashboard. Key casing matches what the dashboard client expects.
type DashboardSummary struct {
	ID              string `json:"id"`
	Filename        string `json:"filename"`
	Size            string `json:"size"`
	Rows            int    `json:"rows"`
	Columns         int    `json:"columns"`
	Status          string `json:"status"`
	QualityScore    int    `json:"qualityScore"`
	Missing         int    `json:"missing"`
	Duplicates      int    `json:"duplicates"`
	Inconsistencies int    `json:"inconsistencies"`
	LastModified    string `json:"lastModified"`
}

// Dashboard status values derived from the quality score.
const (
	StatusRaw      = "RAW"
	StatusCleaning = "CLEANING"
	StatusCleaned  = "CLEANED"
)
