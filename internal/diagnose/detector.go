package diagnose

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"datacraft/domain/diagnostic"
)

// TypeDetector infers the semantic type of a column from its non-missing raw
// values. Detection is deterministic: the same input always yields the same
// type. On columns larger than DetectSampleSize the decision is made on a
// prefix sample and is documented as an approximation.
type TypeDetector struct {
	th Thresholds
}

// NewTypeDetector creates a detector with the given thresholds.
func NewTypeDetector(th Thresholds) *TypeDetector {
	return &TypeDetector{th: th}
}

// datePattern is the cheap structural pre-filter for date-like strings:
// 1-4 digit fields separated by '-', '/', '.' or whitespace.
var datePattern = regexp.MustCompile(`^\d{1,4}[\s\-/.]\d{1,4}([\s\-/.]\d{1,4})?([\sT]\d{1,2}:\d{2}(:\d{2})?.*)?$`)

// dateFormats are tried in order during full parsing.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"02.01.2006",
	"2006.01.02",
}

// Detect classifies a column's non-missing values into exactly one
// SemanticType. Tie-breaks resolve toward the earlier branch:
// numeric > date > identifier > categorical > text.
func (d *TypeDetector) Detect(values []string) diagnostic.SemanticType {
	if len(values) == 0 {
		return diagnostic.TypeEmpty
	}

	sample := values
	if d.th.DetectSampleSize > 0 && len(sample) > d.th.DetectSampleSize {
		sample = sample[:d.th.DetectSampleSize]
	}

	if t, ok := d.detectNumeric(sample); ok {
		return t
	}
	if d.detectDate(sample) {
		return diagnostic.TypeDate
	}
	return d.detectFallback(values)
}

// detectNumeric classifies integer/float/identifier when enough of the
// sample coerces to numbers.
func (d *TypeDetector) detectNumeric(sample []string) (diagnostic.SemanticType, bool) {
	parsed := make([]float64, 0, len(sample))
	for _, v := range sample {
		if f, ok := parseNumeric(v); ok {
			parsed = append(parsed, f)
		}
	}
	if float64(len(parsed))/float64(len(sample)) <= d.th.NumericMinRatio {
		return "", false
	}

	allWhole := true
	distinct := make(map[float64]struct{}, len(parsed))
	for _, f := range parsed {
		if f != math.Trunc(f) {
			allWhole = false
		}
		distinct[f] = struct{}{}
	}

	if allWhole {
		uniqueRatio := float64(len(distinct)) / float64(len(parsed))
		if uniqueRatio > d.th.IdentifierMinRatio {
			return diagnostic.TypeIdentifier, true
		}
		return diagnostic.TypeInteger, true
	}
	return diagnostic.TypeFloat, true
}

// detectDate runs the structural pre-filter first and only pays for full
// parsing when enough of the sample looks date-shaped. Parse failures are
// non-matches, never errors; mixed-format columns that fail to parse at the
// required rate simply fall through.
func (d *TypeDetector) detectDate(sample []string) bool {
	shaped := 0
	for _, v := range sample {
		if datePattern.MatchString(strings.TrimSpace(v)) {
			shaped++
		}
	}
	if float64(shaped)/float64(len(sample)) < d.th.DatePatternMinRatio {
		return false
	}

	parsedCount := 0
	for _, v := range sample {
		if _, ok := parseDate(v); ok {
			parsedCount++
		}
	}
	return float64(parsedCount)/float64(len(sample)) > d.th.DateParseMinRatio
}

// detectFallback separates identifier, categorical and text by uniqueness
// over the full column.
func (d *TypeDetector) detectFallback(values []string) diagnostic.SemanticType {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	uniqueCount := len(seen)
	uniqueRatio := float64(uniqueCount) / float64(len(values))

	if uniqueRatio > d.th.IdentifierMinRatio {
		return diagnostic.TypeIdentifier
	}
	if uniqueRatio < d.th.CategoricalMaxRatio || uniqueCount < d.th.CategoricalMaxUnique {
		return diagnostic.TypeCategorical
	}
	return diagnostic.TypeText
}

// parseNumeric coerces a raw cell to a finite float64.
func parseNumeric(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// parseDate coerces a raw cell to a timestamp using the fixed format table.
func parseDate(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
