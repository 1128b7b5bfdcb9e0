package ports

import (
	"context"

	"datacraft/domain/diagnostic"
)

// Recommendation is the expert-style advice for handling one column's
// missing data. RationaleHTML is the rendered form of the markdown rationale
// for dashboard display.
type Recommendation struct {
	Recommendation   string   `json:"recommendation"`
	ReasoningSummary string   `json:"reasoning_summary"`
	Assumptions      []string `json:"assumptions"`
	Warning          string   `json:"warning,omitempty"`
	RationaleHTML    string   `json:"rationale_html,omitempty"`
}

// PlanStep is one operation in a cleaning plan. Op is restricted to the
// cleaning TaskType vocabulary.
type PlanStep struct {
	Op     TaskType               `json:"op"`
	Column string                 `json:"column,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// CleaningPlan is one alternative sequence of treatments for a dataset.
type CleaningPlan struct {
	Name      string     `json:"name"`
	Rationale string     `json:"rationale"`
	Steps     []PlanStep `json:"steps"`
}

// Recommender consumes diagnostic reports and proposes cleaning actions.
// Implementations may be rule-based or LLM-backed; the engine only produces
// the report they read.
type Recommender interface {
	// RecommendColumn proposes how to handle one column's missing data.
	RecommendColumn(ctx context.Context, column diagnostic.ColumnDiagnostic) (Recommendation, error)

	// SuggestPlans proposes three alternative cleaning plans for the whole
	// report, expressed in the fixed operation vocabulary.
	SuggestPlans(ctx context.Context, report *diagnostic.DiagnosticReport) ([]CleaningPlan, error)
}
