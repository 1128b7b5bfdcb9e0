package diagnose

import (
	"math"
	"sort"
	"strings"
	"time"

	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
)

// TimeAxisResolver selects the column that serves as the dataset's implicit
// time axis. Implementations must be deterministic for a given column list.
type TimeAxisResolver interface {
	Resolve(columns []string) (string, bool)
}

// SubstringTimeAxis picks the first column, in declaration order, whose name
// contains "time" or "date" (case-insensitive). First-match selection is
// fragile when several time-like columns exist; callers that want
// reorder-stable selection should use LexicalTimeAxis.
type SubstringTimeAxis struct{}

// Resolve returns the first matching column in declaration order.
func (SubstringTimeAxis) Resolve(columns []string) (string, bool) {
	for _, name := range columns {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "time") || strings.Contains(lower, "date") {
			return name, true
		}
	}
	return "", false
}

// LexicalTimeAxis picks the lexically smallest matching column name, so the
// choice survives column reordering.
type LexicalTimeAxis struct{}

// Resolve returns the lexically smallest matching column.
func (LexicalTimeAxis) Resolve(columns []string) (string, bool) {
	candidates := make([]string, 0, len(columns))
	for _, name := range columns {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "time") || strings.Contains(lower, "date") {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return candidates[0], true
}

// TemporalAnalyzer measures a column's stability over the dataset's implicit
// time axis via lag-1 autocorrelation.
type TemporalAnalyzer struct {
	th       Thresholds
	resolver TimeAxisResolver
}

// NewTemporalAnalyzer creates an analyzer with the default first-match
// resolver.
func NewTemporalAnalyzer(th Thresholds) *TemporalAnalyzer {
	return &TemporalAnalyzer{th: th, resolver: SubstringTimeAxis{}}
}

// NewTemporalAnalyzerWithResolver creates an analyzer with a custom time-axis
// resolution strategy.
func NewTemporalAnalyzerWithResolver(th Thresholds, resolver TimeAxisResolver) *TemporalAnalyzer {
	return &TemporalAnalyzer{th: th, resolver: resolver}
}

// Analyze reindexes the target column by the parsed, sorted time axis and
// computes its lag-1 autocorrelation. Any failure inside the computation
// yields a nil coefficient rather than an error.
func (a *TemporalAnalyzer) Analyze(frame *dataset.Frame, target string) diagnostic.TemporalProfile {
	axisName, found := a.resolver.Resolve(frame.ColumnNames())
	if !found {
		return diagnostic.TemporalProfile{IsTimeSeries: false}
	}

	axis, ok := frame.Column(axisName)
	if !ok {
		return diagnostic.TemporalProfile{IsTimeSeries: false}
	}

	type point struct {
		at  time.Time
		row int
	}
	points := make([]point, 0, len(axis.Cells))
	for i, cell := range axis.Cells {
		if frame.IsMissing(cell) {
			continue
		}
		if t, parsed := parseDate(cell); parsed {
			points = append(points, point{at: t, row: i})
		}
	}
	if len(points) == 0 {
		return diagnostic.TemporalProfile{IsTimeSeries: false}
	}

	// Stable sort keeps row order for equal timestamps, so the reindexing
	// is deterministic.
	sort.SliceStable(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	col, ok := frame.Column(target)
	if !ok {
		return diagnostic.TemporalProfile{IsTimeSeries: true}
	}

	series := make([]float64, 0, len(points))
	distinct := make(map[float64]struct{})
	for _, p := range points {
		cell := col.Cells[p.row]
		if frame.IsMissing(cell) {
			continue
		}
		f, parsed := parseNumeric(cell)
		if !parsed {
			continue
		}
		series = append(series, f)
		distinct[f] = struct{}{}
	}

	profile := diagnostic.TemporalProfile{IsTimeSeries: true}
	if len(series) >= 2 && len(distinct) > 1 {
		if acf, ok := lag1ACF(series); ok {
			rounded := round2(acf)
			profile.StabilityACF1 = &rounded
		}
	}
	return profile
}

// lag1ACF computes the lag-1 autocorrelation with the full-series mean in
// both factors, the standard ACF estimator.
func lag1ACF(x []float64) (acf float64, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			acf, ok = 0, false
		}
	}()

	n := len(x)
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var num, denom float64
	for i := 0; i < n; i++ {
		d := x[i] - mean
		denom += d * d
		if i < n-1 {
			num += d * (x[i+1] - mean)
		}
	}
	if denom == 0 || math.IsNaN(denom) {
		return 0, false
	}

	acf = num / denom
	if math.IsNaN(acf) || math.IsInf(acf, 0) {
		return 0, false
	}
	// Clamp against floating point drift at the edges.
	if acf > 1 {
		acf = 1
	} else if acf < -1 {
		acf = -1
	}
	return acf, true
}
