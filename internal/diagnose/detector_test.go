package diagnose

import (
	"fmt"
	"testing"

	"datacraft/domain/diagnostic"
)

func TestTypeDetector_SequentialIntegersAreIdentifier(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := make([]string, 1000)
	for i := range values {
		values[i] = fmt.Sprintf("%d", i)
	}

	if got := detector.Detect(values); got != diagnostic.TypeIdentifier {
		t.Fatalf("Expected identifier for 1000 sequential integers, got %s", got)
	}
}

func TestTypeDetector_RepeatedIntegersAreInteger(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := make([]string, 200)
	for i := range values {
		values[i] = fmt.Sprintf("%d", i%10)
	}

	if got := detector.Detect(values); got != diagnostic.TypeInteger {
		t.Fatalf("Expected integer for repeated whole numbers, got %s", got)
	}
}

func TestTypeDetector_Floats(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := []string{"1.5", "2.25", "3.75", "4.5", "1.5", "2.25", "9.125", "0.5", "1.5", "2.0"}
	if got := detector.Detect(values); got != diagnostic.TypeFloat {
		t.Fatalf("Expected float, got %s", got)
	}
}

func TestTypeDetector_ISODatesAreDate(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := make([]string, 100)
	for i := range values {
		values[i] = fmt.Sprintf("2024-01-%02d", (i%28)+1)
	}

	if got := detector.Detect(values); got != diagnostic.TypeDate {
		t.Fatalf("Expected date for ISO date strings, got %s", got)
	}
}

func TestTypeDetector_DateColumnNamedValuesNotRequired(t *testing.T) {
	// Detection uses only values; a column of ISO timestamps classifies as
	// date no matter what the column is called.
	detector := NewTypeDetector(DefaultThresholds())

	values := []string{
		"2023-05-01T10:00:00Z", "2023-05-02T11:30:00Z", "2023-05-03T09:15:00Z",
		"2023-05-04T14:45:00Z", "2023-05-05T16:20:00Z",
	}
	if got := detector.Detect(values); got != diagnostic.TypeDate {
		t.Fatalf("Expected date for RFC3339 timestamps, got %s", got)
	}
}

func TestTypeDetector_LowCardinalityStringsAreCategorical(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := make([]string, 300)
	labels := []string{"red", "green", "blue"}
	for i := range values {
		values[i] = labels[i%3]
	}

	if got := detector.Detect(values); got != diagnostic.TypeCategorical {
		t.Fatalf("Expected categorical, got %s", got)
	}
}

func TestTypeDetector_UniqueStringsAreIdentifier(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	values := make([]string, 200)
	for i := range values {
		values[i] = fmt.Sprintf("user-%04d", i)
	}

	if got := detector.Detect(values); got != diagnostic.TypeIdentifier {
		t.Fatalf("Expected identifier for all-unique strings, got %s", got)
	}
}

func TestTypeDetector_FreeTextIsText(t *testing.T) {
	th := DefaultThresholds()
	detector := NewTypeDetector(th)

	// Many distinct values, but with enough repetition to stay under the
	// identifier ratio and over the categorical boundary.
	values := make([]string, 400)
	for i := range values {
		values[i] = fmt.Sprintf("note about order %d", i%250)
	}

	if got := detector.Detect(values); got != diagnostic.TypeText {
		t.Fatalf("Expected text, got %s", got)
	}
}

func TestTypeDetector_EmptyInput(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())
	if got := detector.Detect(nil); got != diagnostic.TypeEmpty {
		t.Fatalf("Expected empty for no values, got %s", got)
	}
}

func TestTypeDetector_MostlyNumericWithNoise(t *testing.T) {
	detector := NewTypeDetector(DefaultThresholds())

	// 95% parseable floats, 5% junk: stays numeric.
	values := make([]string, 100)
	for i := range values {
		if i%20 == 0 {
			values[i] = "n/a?"
		} else {
			values[i] = fmt.Sprintf("%d.5", i)
		}
	}

	if got := detector.Detect(values); got != diagnostic.TypeFloat {
		t.Fatalf("Expected float for mostly-numeric column, got %s", got)
	}
}

func TestTypeDetector_SamplingCapsWork(t *testing.T) {
	th := DefaultThresholds()
	th.DetectSampleSize = 100
	detector := NewTypeDetector(th)

	// Numeric in the sampled prefix, junk afterwards: prefix decides.
	values := make([]string, 500)
	for i := range values {
		if i < 100 {
			values[i] = fmt.Sprintf("%d.25", i)
		} else {
			values[i] = "not a number"
		}
	}

	if got := detector.Detect(values); got != diagnostic.TypeFloat {
		t.Fatalf("Expected prefix sample to classify as float, got %s", got)
	}
}

func TestParseNumeric_RejectsNonFinite(t *testing.T) {
	for _, v := range []string{"Inf", "-Inf", "NaN", "+Inf"} {
		if _, ok := parseNumeric(v); ok {
			t.Errorf("parseNumeric(%q) should reject non-finite values", v)
		}
	}
	if f, ok := parseNumeric(" 42.5 "); !ok || f != 42.5 {
		t.Errorf("parseNumeric should trim whitespace, got %v %v", f, ok)
	}
}
