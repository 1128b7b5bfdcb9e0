package diagnose

import (
	"testing"

	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
	"datacraft/internal/testkit"
)

func typesFor(frame *dataset.Frame, detector *TypeDetector) map[string]diagnostic.SemanticType {
	types := make(map[string]diagnostic.SemanticType)
	for _, name := range frame.ColumnNames() {
		types[name] = detector.Detect(frame.NonMissing(name))
	}
	return types
}

// buildFrame assembles a frame with the default missing tokens, keeping the
// given column order.
func buildFrame(t *testing.T, cols map[string][]string, order []string) *dataset.Frame {
	t.Helper()
	built := make([]dataset.Column, 0, len(order))
	for _, name := range order {
		built = append(built, dataset.Column{Name: name, Cells: cols[name]})
	}
	return dataset.NewFrame(built, dataset.DefaultMissingTokens())
}

func TestMissingnessAnalyzer_EngineeredMNAR(t *testing.T) {
	gen := testkit.NewGenerator(testkit.DefaultGeneratorConfig())
	frame := gen.MNARPair()

	th := DefaultThresholds()
	analyzer := NewMissingnessAnalyzer(th)
	types := typesFor(frame, NewTypeDetector(th))

	indicators := analyzer.Analyze(frame, "companion", types)
	r, ok := indicators["driver"]
	if !ok {
		t.Fatal("Expected the driver column to be flagged as an MNAR indicator")
	}
	if r <= 0.3 {
		t.Errorf("Expected correlation above the threshold, got %v", r)
	}
}

func TestMissingnessAnalyzer_IndependentMissingnessNotFlagged(t *testing.T) {
	gen := testkit.NewGenerator(testkit.DefaultGeneratorConfig())
	frame := gen.IndependentPair()

	th := DefaultThresholds()
	analyzer := NewMissingnessAnalyzer(th)
	types := typesFor(frame, NewTypeDetector(th))

	indicators := analyzer.Analyze(frame, "b", types)
	if len(indicators) != 0 {
		t.Errorf("Random missingness should produce no indicators, got %v", indicators)
	}
}

func TestMissingnessAnalyzer_ConstantColumnIgnored(t *testing.T) {
	frame := buildFrame(t, map[string][]string{
		"target":   {"1", "", "3", "", "5"},
		"constant": {"9", "9", "9", "9", "9"},
	}, []string{"target", "constant"})

	th := DefaultThresholds()
	analyzer := NewMissingnessAnalyzer(th)
	types := typesFor(frame, NewTypeDetector(th))

	indicators := analyzer.Analyze(frame, "target", types)
	if _, ok := indicators["constant"]; ok {
		t.Error("A constant column has no defined correlation and must be omitted")
	}
}

func TestMissingnessAnalyzer_FullyObservedTarget(t *testing.T) {
	frame := buildFrame(t, map[string][]string{
		"target": {"1", "2", "3", "4"},
		"other":  {"10", "20", "30", "40"},
	}, []string{"target", "other"})

	th := DefaultThresholds()
	analyzer := NewMissingnessAnalyzer(th)
	types := typesFor(frame, NewTypeDetector(th))

	// The indicator vector is all zeros; correlation is undefined and the
	// set stays empty.
	indicators := analyzer.Analyze(frame, "target", types)
	if len(indicators) != 0 {
		t.Errorf("Fully observed target should have no indicators, got %v", indicators)
	}
}

func TestMissingnessAnalyzer_ResultIsRounded(t *testing.T) {
	gen := testkit.NewGenerator(testkit.DefaultGeneratorConfig())
	frame := gen.MNARPair()

	th := DefaultThresholds()
	analyzer := NewMissingnessAnalyzer(th)
	types := typesFor(frame, NewTypeDetector(th))

	indicators := analyzer.Analyze(frame, "companion", types)
	for name, r := range indicators {
		if r != round2(r) {
			t.Errorf("Indicator %s not rounded to two decimals: %v", name, r)
		}
	}
}
