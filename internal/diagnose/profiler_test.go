package diagnose

import (
	"fmt"
	"math"
	"testing"

	"datacraft/domain/diagnostic"
)

func TestColumnProfiler_NumericBasics(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	values := []string{"1", "2", "3", "4", "5"}
	set := profiler.Profile(values, diagnostic.TypeInteger)
	if set.Numeric == nil {
		t.Fatal("Expected a numeric profile")
	}

	p := set.Numeric
	if p.Mean != 3 {
		t.Errorf("Expected mean 3, got %v", p.Mean)
	}
	if p.Median != 3 {
		t.Errorf("Expected median 3, got %v", p.Median)
	}
	if p.Min != 1 || p.Max != 5 {
		t.Errorf("Expected min 1 max 5, got %v %v", p.Min, p.Max)
	}
	if math.Abs(p.StdDev-1.5811) > 0.001 {
		t.Errorf("Expected sample std dev ~1.5811, got %v", p.StdDev)
	}
	if p.Skewness == nil || math.Abs(*p.Skewness) > 0.001 {
		t.Errorf("Expected zero skewness for symmetric data, got %v", p.Skewness)
	}
}

func TestColumnProfiler_SkewedData(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	// Heavy right tail.
	values := make([]string, 0, 101)
	for i := 0; i < 100; i++ {
		values = append(values, fmt.Sprintf("%d", i%10))
	}
	values = append(values, "1000")

	set := profiler.Profile(values, diagnostic.TypeInteger)
	if set.Numeric == nil || set.Numeric.Skewness == nil {
		t.Fatal("Expected skewness to be computed")
	}
	if *set.Numeric.Skewness <= 0.8 {
		t.Errorf("Expected strong positive skew, got %v", *set.Numeric.Skewness)
	}
	if set.Numeric.OutlierCount == 0 {
		t.Error("Expected the injected extreme value to count as an outlier")
	}
}

func TestColumnProfiler_ConstantColumnHasNoMoments(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	values := []string{"7", "7", "7", "7"}
	set := profiler.Profile(values, diagnostic.TypeInteger)
	if set.Numeric == nil {
		t.Fatal("Expected a numeric profile")
	}
	if set.Numeric.StdDev != 0 {
		t.Errorf("Expected zero std dev, got %v", set.Numeric.StdDev)
	}
	if set.Numeric.Skewness != nil || set.Numeric.Kurtosis != nil {
		t.Error("Skewness and kurtosis must be nil for a constant column")
	}
}

func TestColumnProfiler_TwoDistinctValuesHaveNoMoments(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	set := profiler.Profile([]string{"1", "2", "1", "2"}, diagnostic.TypeInteger)
	if set.Numeric == nil {
		t.Fatal("Expected a numeric profile")
	}
	if set.Numeric.Skewness != nil {
		t.Error("Fewer distinct values than the moment floor must yield nil skewness")
	}
}

func TestColumnProfiler_SingleValue(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	set := profiler.Profile([]string{"42"}, diagnostic.TypeInteger)
	if set.Numeric == nil {
		t.Fatal("Expected a numeric profile for a single value")
	}
	p := set.Numeric
	if p.Mean != 42 || p.Median != 42 || p.Min != 42 || p.Max != 42 {
		t.Errorf("Single-value stats wrong: %+v", p)
	}
	if p.StdDev != 0 {
		t.Errorf("Expected zero std dev for single value, got %v", p.StdDev)
	}
	if p.OutlierCount != 0 {
		t.Errorf("Expected no outliers for single value, got %d", p.OutlierCount)
	}
}

func TestColumnProfiler_CategoricalTopFive(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	values := []string{}
	freq := map[string]int{"a": 10, "b": 8, "c": 6, "d": 4, "e": 2, "f": 1, "g": 1}
	for _, cat := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		for i := 0; i < freq[cat]; i++ {
			values = append(values, cat)
		}
	}

	set := profiler.Profile(values, diagnostic.TypeCategorical)
	if set.Categorical == nil {
		t.Fatal("Expected a categorical profile")
	}

	p := set.Categorical
	if len(p.TopCategories) != 5 {
		t.Fatalf("Expected 5 top categories, got %d", len(p.TopCategories))
	}
	if p.TopCategories[0].Category != "a" || p.TopCategories[0].Count != 10 {
		t.Errorf("Expected a=10 first, got %+v", p.TopCategories[0])
	}
	if p.TopCategories[4].Category != "e" {
		t.Errorf("Expected e fifth, got %+v", p.TopCategories[4])
	}

	wantPct := 100 * 10.0 / 32.0
	if math.Abs(p.MostFrequentPercentage-wantPct) > 0.001 {
		t.Errorf("Expected most frequent pct %v, got %v", wantPct, p.MostFrequentPercentage)
	}
}

func TestColumnProfiler_CategoricalTiesKeepFirstSeenOrder(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	set := profiler.Profile([]string{"x", "y", "x", "y", "z"}, diagnostic.TypeCategorical)
	if set.Categorical == nil {
		t.Fatal("Expected a categorical profile")
	}
	top := set.Categorical.TopCategories
	if top[0].Category != "x" || top[1].Category != "y" {
		t.Errorf("Tied categories must keep first-seen order, got %+v", top)
	}
}

func TestColumnProfiler_DatetimeExtremes(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	values := []string{"2024-03-15", "2024-01-01", "2024-12-31", "2024-06-30"}
	set := profiler.Profile(values, diagnostic.TypeDate)
	if set.Datetime == nil {
		t.Fatal("Expected a datetime profile")
	}
	if got := set.Datetime.MinDate.String(); got[:10] != "2024-01-01" {
		t.Errorf("Expected min date 2024-01-01, got %s", got)
	}
	if got := set.Datetime.MaxDate.String(); got[:10] != "2024-12-31" {
		t.Errorf("Expected max date 2024-12-31, got %s", got)
	}
}

func TestColumnProfiler_TextAverages(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	set := profiler.Profile([]string{"ab", "cdef", ""}, diagnostic.TypeText)
	if set.Text == nil {
		t.Fatal("Expected a text profile")
	}
	if set.Text.AvgLength != 2 {
		t.Errorf("Expected avg length 2, got %v", set.Text.AvgLength)
	}
	if set.Text.EmptyStringCount != 1 {
		t.Errorf("Expected 1 empty string, got %d", set.Text.EmptyStringCount)
	}
}

func TestColumnProfiler_IdentifierAndEmptyHaveNoProfile(t *testing.T) {
	profiler := NewColumnProfiler(DefaultThresholds())

	set := profiler.Profile([]string{"1", "2", "3"}, diagnostic.TypeIdentifier)
	if set.Numeric != nil || set.Categorical != nil || set.Datetime != nil || set.Text != nil {
		t.Error("Identifier columns must carry no profile variant")
	}

	set = profiler.Profile(nil, diagnostic.TypeEmpty)
	if set.Numeric != nil || set.Categorical != nil || set.Datetime != nil || set.Text != nil {
		t.Error("Empty columns must carry no profile variant")
	}
}
