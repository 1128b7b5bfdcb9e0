package diagnostic

import "datacraft/domain/core"

// SemanticType is the inferred domain-level role of a column, distinct from
// its raw storage representation. Exactly one value per column.
type SemanticType string

const (
	TypeEmpty       SemanticType = "empty"
	TypeInteger     SemanticType = "integer"
	TypeFloat       SemanticType = "float"
	TypeIdentifier  SemanticType = "identifier"
	TypeCategorical SemanticType = "categorical"
	TypeDate        SemanticType = "date"
	TypeText        SemanticType = "text"
)

// IsNumeric reports whether the type carries numeric measurements.
// Identifiers are excluded: their magnitudes are labels, not quantities.
func (t SemanticType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// NumericProfile describes an integer or float column with at least one
// non-missing value. Skewness and kurtosis are nil when the column has two
// or fewer distinct values - the moments are unstable below that.
type NumericProfile struct {
	Mean              float64  `json:"mean"`
	Median            float64  `json:"median"`
	StdDev            float64  `json:"std_dev"`
	Min               float64  `json:"min"`
	Max               float64  `json:"max"`
	Skewness          *float64 `json:"skewness"`
	Kurtosis          *float64 `json:"kurtosis"`
	OutlierCount      int      `json:"outlier_count"`
	OutlierPercentage float64  `json:"outlier_percentage"`
}

// CategoryCount is one category and its frequency. The top-5 list keeps
// descending-frequency order, ties broken by first appearance.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoricalProfile describes a categorical column.
type CategoricalProfile struct {
	TopCategories          []CategoryCount `json:"top_5_categories"`
	MostFrequentPercentage float64         `json:"most_frequent_category_percentage"`
}

// DatetimeProfile describes a date column via its parsed extremes.
type DatetimeProfile struct {
	MinDate core.Timestamp `json:"min_date"`
	MaxDate core.Timestamp `json:"max_date"`
}

// TextProfile describes a free-text column. EmptyStringCount counts literal
// empty strings, which is only non-zero when the caller removed "" from the
// missing-token set.
type TextProfile struct {
	AvgLength        float64 `json:"avg_length"`
	EmptyStringCount int     `json:"empty_string_count"`
}

// MNARIndicatorSet maps other-column names to the Pearson correlation between
// this column's missingness indicator and their values. Only defined
// correlations with |r| above the configured threshold are present.
type MNARIndicatorSet map[string]float64

// TemporalProfile reports whether the dataset carries an implicit time axis
// and, if so, the column's lag-1 autocorrelation when reindexed by it.
// StabilityACF1 is nil whenever the coefficient cannot be computed.
type TemporalProfile struct {
	IsTimeSeries  bool     `json:"is_time_series"`
	StabilityACF1 *float64 `json:"temporal_stability_acf1"`
}
