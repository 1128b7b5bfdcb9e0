package diagnose

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
)

// MissingnessAnalyzer detects statistical association between one column's
// missingness and the values of the dataset's numeric columns - a heuristic
// MNAR signal. Association, not causation: an entry means the event "target
// is missing" co-varies with the other column's magnitude.
//
// Known limitation: association
// with categorical columns is not tested (that would require a categorical
// association test such as chi-squared); only numeric columns participate.
type MissingnessAnalyzer struct {
	th Thresholds
}

// NewMissingnessAnalyzer creates an analyzer with the given thresholds.
func NewMissingnessAnalyzer(th Thresholds) *MissingnessAnalyzer {
	return &MissingnessAnalyzer{th: th}
}

// Analyze computes the MNAR indicator set for target. types carries the
// already-inferred semantic type of every column so numeric candidates are
// selected consistently with the rest of the report. A degenerate pair never
// aborts the analysis; it is simply omitted.
func (m *MissingnessAnalyzer) Analyze(frame *dataset.Frame, target string, types map[string]diagnostic.SemanticType) diagnostic.MNARIndicatorSet {
	indicators := make(diagnostic.MNARIndicatorSet)

	indicator := frame.MissingIndicator(target)
	if indicator == nil {
		return indicators
	}

	for _, other := range frame.ColumnNames() {
		if other == target {
			continue
		}
		if !m.numericCandidate(types[other]) {
			continue
		}
		if r, ok := m.pairCorrelation(frame, indicator, other); ok {
			indicators[other] = r
		}
	}
	return indicators
}

// numericCandidate reports whether a column's type makes it eligible for the
// correlation test. Identifier columns participate too: their raw values are
// numeric even though they carry no measurement profile.
func (m *MissingnessAnalyzer) numericCandidate(t diagnostic.SemanticType) bool {
	return t == diagnostic.TypeInteger || t == diagnostic.TypeFloat || t == diagnostic.TypeIdentifier
}

// pairCorrelation computes the Pearson correlation between the missingness
// indicator and one other column, pairwise over rows where the other column
// holds a parseable number.
func (m *MissingnessAnalyzer) pairCorrelation(frame *dataset.Frame, indicator []float64, other string) (r float64, ok bool) {
	// A panic inside the computation drops the pair, never the analysis.
	defer func() {
		if rec := recover(); rec != nil {
			r, ok = 0, false
		}
	}()

	col, found := frame.Column(other)
	if !found {
		return 0, false
	}

	xs := make([]float64, 0, len(col.Cells))
	ys := make([]float64, 0, len(col.Cells))
	distinct := make(map[float64]struct{})
	for i, cell := range col.Cells {
		if frame.IsMissing(cell) {
			continue
		}
		f, parsed := parseNumeric(cell)
		if !parsed {
			continue
		}
		xs = append(xs, indicator[i])
		ys = append(ys, f)
		distinct[f] = struct{}{}
	}

	// Constant columns and tiny overlaps have no defined correlation.
	if len(xs) < 2 || len(distinct) < 2 {
		return 0, false
	}

	corr := stat.Correlation(xs, ys, nil)
	if math.IsNaN(corr) || math.IsInf(corr, 0) {
		return 0, false
	}
	if math.Abs(corr) <= m.th.MNARMinAbsCorrelation {
		return 0, false
	}
	return round2(corr), true
}

// round2 rounds to two decimals, the precision the report carries for
// correlation coefficients.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
