// Package diagnose implements the diagnostic profiling engine: semantic type
// detection, type-conditioned column profiling, missing-data dependency
// detection and temporal stability analysis, aggregated into one report per
// dataset. The engine is a pure function of (frame, thresholds); it keeps no
// state between runs and never mutates its input.
package diagnose

// Thresholds holds the policy constants that steer classification and
// statistical decisions. They are policy, not structure: callers may override
// any of them per run.
type Thresholds struct {
	// DetectSampleSize caps how many non-missing values the type detector
	// examines. Detection over very large columns is therefore an
	// approximation of the full-column decision.
	DetectSampleSize int `json:"detect_sample_size"`

	// NumericMinRatio is the fraction of sampled values that must coerce to
	// a number for the column to classify as numeric.
	NumericMinRatio float64 `json:"numeric_min_ratio"`

	// IdentifierMinRatio is the unique ratio above which an integer-like or
	// high-cardinality column classifies as an identifier.
	IdentifierMinRatio float64 `json:"identifier_min_ratio"`

	// DatePatternMinRatio is the fraction of sampled values that must match
	// the structural date pattern before full parsing is attempted.
	DatePatternMinRatio float64 `json:"date_pattern_min_ratio"`

	// DateParseMinRatio is the fraction of sampled values that must fully
	// parse as dates for the column to classify as date.
	DateParseMinRatio float64 `json:"date_parse_min_ratio"`

	// CategoricalMaxRatio is the unique ratio below which a non-numeric,
	// non-date column classifies as categorical. Stricter bounds (down to
	// 0.05) are reachable by configuration.
	CategoricalMaxRatio float64 `json:"categorical_max_ratio"`

	// CategoricalMaxUnique is the absolute distinct-count floor: columns
	// with fewer distinct values than this classify as categorical
	// regardless of ratio.
	CategoricalMaxUnique int `json:"categorical_max_unique"`

	// MomentMinDistinct is the minimum number of distinct numeric values
	// required before skewness and kurtosis are reported.
	MomentMinDistinct int `json:"moment_min_distinct"`

	// TopCategories is the size of the categorical frequency head.
	TopCategories int `json:"top_categories"`

	// MNARMinAbsCorrelation is the |r| cutoff for reporting a missingness
	// association.
	MNARMinAbsCorrelation float64 `json:"mnar_min_abs_correlation"`

	// Parallelism controls optional per-column fan-out in the aggregator.
	// Values <= 1 run columns sequentially; any setting produces identical
	// reports.
	Parallelism int `json:"parallelism"`
}

// DefaultThresholds returns the engine defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DetectSampleSize:      1000,
		NumericMinRatio:       0.90,
		IdentifierMinRatio:    0.95,
		DatePatternMinRatio:   0.75,
		DateParseMinRatio:     0.80,
		CategoricalMaxRatio:   0.50,
		CategoricalMaxUnique:  50,
		MomentMinDistinct:     3,
		TopCategories:         5,
		MNARMinAbsCorrelation: 0.30,
		Parallelism:           1,
	}
}
