package diagnose

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"datacraft/domain/core"
	"datacraft/domain/diagnostic"
)

// ColumnProfiler computes the type-conditioned profile variant for a column.
// It is a pure function of its inputs; empty and identifier columns yield no
// profile. Statistical degeneracy (zero variance, too few distinct values)
// resolves to nil fields, never errors.
type ColumnProfiler struct {
	th Thresholds
}

// NewColumnProfiler creates a profiler with the given thresholds.
func NewColumnProfiler(th Thresholds) *ColumnProfiler {
	return &ColumnProfiler{th: th}
}

// ProfileSet carries at most one populated profile variant.
type ProfileSet struct {
	Numeric     *diagnostic.NumericProfile
	Categorical *diagnostic.CategoricalProfile
	Datetime    *diagnostic.DatetimeProfile
	Text        *diagnostic.TextProfile
}

// Profile dispatches on the inferred type. values are the column's
// non-missing raw cells.
func (p *ColumnProfiler) Profile(values []string, t diagnostic.SemanticType) ProfileSet {
	switch t {
	case diagnostic.TypeInteger, diagnostic.TypeFloat:
		return ProfileSet{Numeric: p.profileNumeric(values)}
	case diagnostic.TypeCategorical:
		return ProfileSet{Categorical: p.profileCategorical(values)}
	case diagnostic.TypeDate:
		return ProfileSet{Datetime: p.profileDatetime(values)}
	case diagnostic.TypeText:
		return ProfileSet{Text: p.profileText(values)}
	default:
		// empty and identifier columns carry no profile variant
		return ProfileSet{}
	}
}

// profileNumeric computes descriptive statistics plus Tukey-fence outliers.
func (p *ColumnProfiler) profileNumeric(values []string) *diagnostic.NumericProfile {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := parseNumeric(v); ok {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return nil
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil
	}
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	stdDev := 0.0
	if len(data) > 1 {
		if sd, err := stats.StandardDeviationSample(data); err == nil {
			stdDev = sd
		}
	}

	profile := &diagnostic.NumericProfile{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}

	distinct := make(map[float64]struct{}, len(data))
	for _, f := range data {
		distinct[f] = struct{}{}
	}
	if len(distinct) >= p.th.MomentMinDistinct && stdDev > 0 {
		skew := stat.Skew(data, nil)
		kurt := stat.ExKurtosis(data, nil)
		profile.Skewness = &skew
		profile.Kurtosis = &kurt
	}

	profile.OutlierCount, profile.OutlierPercentage = tukeyOutliers(data)
	return profile
}

// tukeyOutliers counts values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Columns
// too small for stable quartiles report zero outliers.
func tukeyOutliers(data []float64) (int, float64) {
	q1, err1 := stats.Percentile(data, 25)
	q3, err2 := stats.Percentile(data, 75)
	if err1 != nil || err2 != nil {
		return 0, 0
	}

	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count, 100 * float64(count) / float64(len(data))
}

// profileCategorical builds the frequency head. Ties keep first-seen order.
func (p *ColumnProfiler) profileCategorical(values []string) *diagnostic.CategoricalProfile {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[string]int, len(values))
	firstSeen := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	top := p.th.TopCategories
	if top <= 0 || top > len(order) {
		top = len(order)
	}
	head := make([]diagnostic.CategoryCount, 0, top)
	for _, cat := range order[:top] {
		head = append(head, diagnostic.CategoryCount{Category: cat, Count: counts[cat]})
	}

	return &diagnostic.CategoricalProfile{
		TopCategories:          head,
		MostFrequentPercentage: 100 * float64(counts[order[0]]) / float64(len(values)),
	}
}

// profileDatetime reports the parsed extremes. Cells that fail to parse are
// skipped; a date column that somehow parses nowhere yields no profile.
func (p *ColumnProfiler) profileDatetime(values []string) *diagnostic.DatetimeProfile {
	var minT, maxT *core.Timestamp
	for _, v := range values {
		t, ok := parseDate(v)
		if !ok {
			continue
		}
		ts := core.NewTimestamp(t)
		if minT == nil || ts.Before(*minT) {
			tmp := ts
			minT = &tmp
		}
		if maxT == nil || ts.After(*maxT) {
			tmp := ts
			maxT = &tmp
		}
	}
	if minT == nil {
		return nil
	}
	return &diagnostic.DatetimeProfile{MinDate: *minT, MaxDate: *maxT}
}

// profileText reports average length and literal empty strings.
func (p *ColumnProfiler) profileText(values []string) *diagnostic.TextProfile {
	if len(values) == 0 {
		return nil
	}
	totalLen := 0
	empty := 0
	for _, v := range values {
		totalLen += len(v)
		if v == "" {
			empty++
		}
	}
	return &diagnostic.TextProfile{
		AvgLength:        float64(totalLen) / float64(len(values)),
		EmptyStringCount: empty,
	}
}
