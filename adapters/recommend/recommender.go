// Package recommend turns diagnostic reports into cleaning advice using
// fixed rules over the profiled signals: missing rate, semantic type,
// skewness, MNAR correlations and temporal stability.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datacraft/domain/diagnostic"
	"datacraft/ports"
)

// Thresholds the rules pivot on. Mirrors the advice a practitioner gives
// when reading the same report by hand.
const (
	dropColumnMissingPct = 60.0
	dropRowsMissingPct   = 5.0
	skewedThreshold      = 1.0
	unstableACF          = 0.8
)

// Recommender implements ports.Recommender with deterministic rules.
type Recommender struct{}

func NewRecommender() *Recommender {
	return &Recommender{}
}

// RecommendColumn proposes how to handle one column's missing data.
func (r *Recommender) RecommendColumn(ctx context.Context, col diagnostic.ColumnDiagnostic) (ports.Recommendation, error) {
	rec := ports.Recommendation{}

	mnar := strongestIndicator(col.MNARIndicators)
	if mnar != "" {
		rec.Warning = fmt.Sprintf(
			"missingness in %q correlates with %q; values are unlikely to be missing at random",
			col.ColumnName, mnar)
	}

	switch {
	case col.MissingCount == 0:
		rec.Recommendation = "no_action"
		rec.ReasoningSummary = fmt.Sprintf("%q has no missing values.", col.ColumnName)

	case col.MissingPercentage > dropColumnMissingPct:
		rec.Recommendation = string(ports.TaskDeleteColumn)
		rec.ReasoningSummary = fmt.Sprintf(
			"%.1f%% of %q is missing; imputing that much data would fabricate most of the column.",
			col.MissingPercentage, col.ColumnName)
		rec.Assumptions = []string{"the column is not required downstream"}

	case col.DataType.IsNumeric() && mnar != "":
		rec.Recommendation = string(ports.TaskImputeMedian)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is numeric with structured missingness; median imputation limits the bias mean imputation would add.",
			col.ColumnName)
		rec.Assumptions = []string{
			"the median is representative of the unobserved values",
			fmt.Sprintf("the dependence on %q is tolerable for the analysis", mnar),
		}

	case col.DataType.IsNumeric() && isSkewed(col.NumericProfile):
		rec.Recommendation = string(ports.TaskImputeMedian)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is skewed (skewness %.2f); the median resists the tail the mean would chase.",
			col.ColumnName, *col.NumericProfile.Skewness)
		rec.Assumptions = []string{"values are missing at random"}

	case col.DataType.IsNumeric():
		rec.Recommendation = string(ports.TaskImputeMean)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is numeric and roughly symmetric; mean imputation preserves the column average.",
			col.ColumnName)
		rec.Assumptions = []string{"values are missing at random"}

	case col.DataType == diagnostic.TypeCategorical:
		rec.Recommendation = string(ports.TaskImputeMode)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is categorical; the most frequent category is the only defensible single-value fill.",
			col.ColumnName)
		rec.Assumptions = []string{"the modal category is not an artifact of collection"}

	case col.MissingPercentage <= dropRowsMissingPct:
		rec.Recommendation = string(ports.TaskDropNARows)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is %s with only %.1f%% missing; dropping those rows costs little data.",
			col.ColumnName, col.DataType, col.MissingPercentage)

	default:
		rec.Recommendation = string(ports.TaskImputeConstant)
		rec.ReasoningSummary = fmt.Sprintf(
			"%q is %s; fill with an explicit placeholder so missingness stays visible.",
			col.ColumnName, col.DataType)
		rec.Assumptions = []string{"downstream consumers treat the placeholder as a category"}
	}

	rec.RationaleHTML = renderHTML(rationaleMarkdown(col, rec))
	return rec, nil
}

// SuggestPlans proposes three alternative cleaning plans for the report.
func (r *Recommender) SuggestPlans(ctx context.Context, report *diagnostic.DiagnosticReport) ([]ports.CleaningPlan, error) {
	conservative := ports.CleaningPlan{
		Name:      "conservative",
		Rationale: "Remove only what is provably redundant. Keeps every observed value.",
	}
	aggressive := ports.CleaningPlan{
		Name:      "aggressive",
		Rationale: "Resolve all missingness so every column is complete, accepting imputation bias.",
	}
	modelPrep := ports.CleaningPlan{
		Name:      "model_prep",
		Rationale: "Complete and scale numeric columns for estimators that assume centered inputs.",
	}

	if report.Summary.DuplicateRowCount > 0 {
		step := ports.PlanStep{Op: ports.TaskDropDuplicateRows}
		conservative.Steps = append(conservative.Steps, step)
		aggressive.Steps = append(aggressive.Steps, step)
		modelPrep.Steps = append(modelPrep.Steps, step)
	}

	for _, col := range report.Columns {
		if col.MissingCount > 0 {
			if col.MissingPercentage <= dropRowsMissingPct {
				conservative.Steps = append(conservative.Steps,
					ports.PlanStep{Op: ports.TaskDropNARows, Column: col.ColumnName})
			}

			aggressive.Steps = append(aggressive.Steps, imputeStep(col))
			modelPrep.Steps = append(modelPrep.Steps, imputeStep(col))
		}

		if col.DataType.IsNumeric() {
			op := ports.TaskStandardScale
			if isSkewed(col.NumericProfile) {
				op = ports.TaskMinMaxScale
			}
			modelPrep.Steps = append(modelPrep.Steps,
				ports.PlanStep{Op: op, Column: col.ColumnName})
		}
	}

	return []ports.CleaningPlan{conservative, aggressive, modelPrep}, nil
}

func imputeStep(col diagnostic.ColumnDiagnostic) ports.PlanStep {
	switch {
	case col.MissingPercentage > dropColumnMissingPct:
		return ports.PlanStep{Op: ports.TaskDeleteColumn, Column: col.ColumnName}
	case col.DataType.IsNumeric() && isSkewed(col.NumericProfile):
		return ports.PlanStep{Op: ports.TaskImputeMedian, Column: col.ColumnName}
	case col.DataType.IsNumeric():
		return ports.PlanStep{Op: ports.TaskImputeMean, Column: col.ColumnName}
	case col.DataType == diagnostic.TypeCategorical:
		return ports.PlanStep{Op: ports.TaskImputeMode, Column: col.ColumnName}
	default:
		return ports.PlanStep{
			Op:     ports.TaskImputeConstant,
			Column: col.ColumnName,
			Params: map[string]interface{}{"value": "UNKNOWN"},
		}
	}
}

func isSkewed(p *diagnostic.NumericProfile) bool {
	return p != nil && p.Skewness != nil && math.Abs(*p.Skewness) > skewedThreshold
}

// strongestIndicator returns the covariate with the largest absolute MNAR
// correlation, or "" when none was flagged.
func strongestIndicator(set diagnostic.MNARIndicatorSet) string {
	best, bestAbs := "", 0.0
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if abs := math.Abs(set[name]); abs > bestAbs {
			best, bestAbs = name, abs
		}
	}
	return best
}

func rationaleMarkdown(col diagnostic.ColumnDiagnostic, rec ports.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Handling missing data in `%s`\n\n", col.ColumnName)
	fmt.Fprintf(&b, "**Recommendation:** `%s`\n\n", rec.Recommendation)
	fmt.Fprintf(&b, "%s\n", rec.ReasoningSummary)
	if len(rec.Assumptions) > 0 {
		b.WriteString("\n**Assumptions**\n\n")
		for _, a := range rec.Assumptions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	if rec.Warning != "" {
		fmt.Fprintf(&b, "\n> **Warning:** %s\n", rec.Warning)
	}
	if col.Temporal.IsTimeSeries && col.Temporal.StabilityACF1 != nil && *col.Temporal.StabilityACF1 > unstableACF {
		fmt.Fprintf(&b, "\n> Column shows strong autocorrelation (lag-1 ACF %.2f); interpolation along the time axis may beat global fills.\n",
			*col.Temporal.StabilityACF1)
	}
	return b.String()
}

// renderHTML converts the markdown rationale for dashboard display. Parser
// instances are single use, so one is built per call.
func renderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}

var _ ports.Recommender = (*Recommender)(nil)
