package recommend

import (
	"context"
	"strings"
	"testing"

	"datacraft/domain/diagnostic"
	"datacraft/ports"
)

func floatPtr(f float64) *float64 { return &f }

func TestRecommendColumn_HighMissingDropsColumn(t *testing.T) {
	rec, err := NewRecommender().RecommendColumn(context.Background(), diagnostic.ColumnDiagnostic{
		ColumnName:        "sparse",
		DataType:          diagnostic.TypeFloat,
		MissingCount:      80,
		MissingPercentage: 80,
		MNARIndicators:    diagnostic.MNARIndicatorSet{},
	})
	if err != nil {
		t.Fatalf("RecommendColumn failed: %v", err)
	}
	if rec.Recommendation != string(ports.TaskDeleteColumn) {
		t.Errorf("Expected delete_column above the missing ceiling, got %s", rec.Recommendation)
	}
}

func TestRecommendColumn_SkewedNumericGetsMedian(t *testing.T) {
	rec, err := NewRecommender().RecommendColumn(context.Background(), diagnostic.ColumnDiagnostic{
		ColumnName:        "amount",
		DataType:          diagnostic.TypeFloat,
		MissingCount:      5,
		MissingPercentage: 5,
		NumericProfile:    &diagnostic.NumericProfile{Skewness: floatPtr(2.4)},
		MNARIndicators:    diagnostic.MNARIndicatorSet{},
	})
	if err != nil {
		t.Fatalf("RecommendColumn failed: %v", err)
	}
	if rec.Recommendation != string(ports.TaskImputeMedian) {
		t.Errorf("Expected impute_median for skewed numeric, got %s", rec.Recommendation)
	}
	if rec.RationaleHTML == "" || !strings.Contains(rec.RationaleHTML, "<") {
		t.Error("Expected rendered HTML rationale")
	}
}

func TestRecommendColumn_MNARWarns(t *testing.T) {
	rec, err := NewRecommender().RecommendColumn(context.Background(), diagnostic.ColumnDiagnostic{
		ColumnName:        "income",
		DataType:          diagnostic.TypeFloat,
		MissingCount:      10,
		MissingPercentage: 10,
		MNARIndicators:    diagnostic.MNARIndicatorSet{"age": 0.52},
	})
	if err != nil {
		t.Fatalf("RecommendColumn failed: %v", err)
	}
	if rec.Warning == "" || !strings.Contains(rec.Warning, "age") {
		t.Errorf("Expected an MNAR warning naming the covariate, got %q", rec.Warning)
	}
}

func TestRecommendColumn_CategoricalGetsMode(t *testing.T) {
	rec, err := NewRecommender().RecommendColumn(context.Background(), diagnostic.ColumnDiagnostic{
		ColumnName:        "segment",
		DataType:          diagnostic.TypeCategorical,
		MissingCount:      20,
		MissingPercentage: 20,
		MNARIndicators:    diagnostic.MNARIndicatorSet{},
	})
	if err != nil {
		t.Fatalf("RecommendColumn failed: %v", err)
	}
	if rec.Recommendation != string(ports.TaskImputeMode) {
		t.Errorf("Expected impute_mode for categorical, got %s", rec.Recommendation)
	}
}

func TestSuggestPlans_ThreeNamedPlans(t *testing.T) {
	report := &diagnostic.DiagnosticReport{
		DatasetID: "sales.csv",
		Summary:   diagnostic.DatasetSummary{RowCount: 100, ColumnCount: 2, DuplicateRowCount: 3},
		Columns: []diagnostic.ColumnDiagnostic{
			{
				ColumnName:        "amount",
				DataType:          diagnostic.TypeFloat,
				MissingCount:      4,
				MissingPercentage: 4,
				MNARIndicators:    diagnostic.MNARIndicatorSet{},
			},
			{
				ColumnName:     "segment",
				DataType:       diagnostic.TypeCategorical,
				MNARIndicators: diagnostic.MNARIndicatorSet{},
			},
		},
	}

	plans, err := NewRecommender().SuggestPlans(context.Background(), report)
	if err != nil {
		t.Fatalf("SuggestPlans failed: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("Expected exactly 3 plans, got %d", len(plans))
	}

	cleaningOps := map[ports.TaskType]bool{
		ports.TaskDropDuplicateRows: true, ports.TaskDropNARows: true,
		ports.TaskImputeMedian: true, ports.TaskImputeMean: true,
		ports.TaskImputeMode: true, ports.TaskImputeConstant: true,
		ports.TaskStandardScale: true, ports.TaskMinMaxScale: true,
		ports.TaskDeleteColumn: true,
	}
	for _, plan := range plans {
		if plan.Name == "" || plan.Rationale == "" {
			t.Errorf("Plan missing name or rationale: %+v", plan)
		}
		for _, step := range plan.Steps {
			if !cleaningOps[step.Op] {
				t.Errorf("Plan %s uses op outside the cleaning vocabulary: %s", plan.Name, step.Op)
			}
		}
	}

	// Every plan starts by dropping the duplicates the report found.
	for _, plan := range plans {
		if len(plan.Steps) == 0 || plan.Steps[0].Op != ports.TaskDropDuplicateRows {
			t.Errorf("Plan %s should open with drop_duplicate_rows", plan.Name)
		}
	}

	// The model-prep plan scales the numeric column.
	var modelPrep *ports.CleaningPlan
	for i := range plans {
		if plans[i].Name == "model_prep" {
			modelPrep = &plans[i]
		}
	}
	if modelPrep == nil {
		t.Fatal("Expected a model_prep plan")
	}
	scaled := false
	for _, step := range modelPrep.Steps {
		if (step.Op == ports.TaskStandardScale || step.Op == ports.TaskMinMaxScale) && step.Column == "amount" {
			scaled = true
		}
	}
	if !scaled {
		t.Error("model_prep plan should scale the amount column")
	}
}
