package diagnose

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"datacraft/domain/core"
	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
)

// Aggregator runs the full diagnostic pipeline over a frame: dataset-level
// metrics once, then detector, profiler, missingness and temporal analysis
// per column, assembled into one ordered report.
type Aggregator struct {
	th       Thresholds
	detector *TypeDetector
	profiler *ColumnProfiler
	missing  *MissingnessAnalyzer
	temporal *TemporalAnalyzer
}

// NewAggregator wires the engine with the default time-axis resolver.
func NewAggregator(th Thresholds) *Aggregator {
	return NewAggregatorWithResolver(th, SubstringTimeAxis{})
}

// NewAggregatorWithResolver wires the engine with a custom time-axis
// resolution strategy.
func NewAggregatorWithResolver(th Thresholds, resolver TimeAxisResolver) *Aggregator {
	return &Aggregator{
		th:       th,
		detector: NewTypeDetector(th),
		profiler: NewColumnProfiler(th),
		missing:  NewMissingnessAnalyzer(th),
		temporal: NewTemporalAnalyzerWithResolver(th, resolver),
	}
}

// Run profiles every column and returns the assembled report. A dataset with
// zero rows or zero columns returns core.ErrEmptyDataset; a failure isolated
// to one column never aborts the run.
func (a *Aggregator) Run(ctx context.Context, datasetID string, frame *dataset.Frame) (*diagnostic.DiagnosticReport, error) {
	if frame == nil || frame.RowCount() == 0 || frame.ColumnCount() == 0 {
		return nil, core.ErrEmptyDataset
	}

	names := frame.ColumnNames()

	// Detect every type up front; the missingness pass needs the full map to
	// pick its numeric candidates.
	types := make(map[string]diagnostic.SemanticType, len(names))
	for _, name := range names {
		types[name] = a.detector.Detect(frame.NonMissing(name))
	}

	columns := make([]diagnostic.ColumnDiagnostic, len(names))
	if a.th.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.th.Parallelism)
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				columns[i] = a.profileColumn(frame, name, types)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			columns[i] = a.profileColumn(frame, name, types)
		}
	}

	return &diagnostic.DiagnosticReport{
		DatasetID: datasetID,
		Summary:   a.summarize(frame),
		Columns:   columns,
	}, nil
}

// profileColumn produces one column's diagnostic. The recover boundary keeps
// a failing sub-profile from taking the run down: the column is still emitted
// with its basic missingness and uniqueness stats.
func (a *Aggregator) profileColumn(frame *dataset.Frame, name string, types map[string]diagnostic.SemanticType) (diag diagnostic.ColumnDiagnostic) {
	diag = a.baseDiagnostic(frame, name, types[name])

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Diagnose] column %q: sub-profile failed, emitting basics only: %v", name, rec)
			diag.NumericProfile = nil
			diag.CategoricalProfile = nil
			diag.DatetimeProfile = nil
			diag.TextProfile = nil
			if diag.MNARIndicators == nil {
				diag.MNARIndicators = diagnostic.MNARIndicatorSet{}
			}
		}
	}()

	values := frame.NonMissing(name)
	set := a.profiler.Profile(values, diag.DataType)
	diag.NumericProfile = set.Numeric
	diag.CategoricalProfile = set.Categorical
	diag.DatetimeProfile = set.Datetime
	diag.TextProfile = set.Text

	diag.MNARIndicators = a.missing.Analyze(frame, name, types)
	diag.Temporal = a.temporal.Analyze(frame, name)
	return diag
}

// baseDiagnostic computes the stats every column gets even when profiling
// fails. Denominators guard the one-row and zero-row edges; no percentage
// computation here can divide by zero.
func (a *Aggregator) baseDiagnostic(frame *dataset.Frame, name string, t diagnostic.SemanticType) diagnostic.ColumnDiagnostic {
	rows := frame.RowCount()
	missingCount := frame.MissingCount(name)
	uniqueCount := frame.UniqueCount(name)

	missingPct := 0.0
	uniqueRatio := 0.0
	if rows > 0 {
		missingPct = 100 * float64(missingCount) / float64(rows)
		uniqueRatio = float64(uniqueCount) / float64(rows)
	}

	return diagnostic.ColumnDiagnostic{
		ColumnName:        name,
		DataType:          t,
		MissingCount:      missingCount,
		MissingPercentage: missingPct,
		UniqueCount:       uniqueCount,
		UniqueRatio:       uniqueRatio,
		ConstantFlag:      uniqueCount == 1,
		MNARIndicators:    diagnostic.MNARIndicatorSet{},
	}
}

// summarize computes the dataset-level metrics in one pass over the frame.
func (a *Aggregator) summarize(frame *dataset.Frame) diagnostic.DatasetSummary {
	rows := frame.RowCount()
	cols := frame.ColumnCount()

	totalMissing := 0
	maxColPct := 0.0
	for _, name := range frame.ColumnNames() {
		mc := frame.MissingCount(name)
		totalMissing += mc
		pct := 100 * float64(mc) / float64(rows)
		if pct > maxColPct {
			maxColPct = pct
		}
	}

	overallPct := 0.0
	if rows > 0 && cols > 0 {
		overallPct = 100 * float64(totalMissing) / float64(rows*cols)
	}

	rowsGt50 := 0
	for i := 0; i < rows; i++ {
		nulls := 0
		for _, cell := range frame.Row(i) {
			if frame.IsMissing(cell) {
				nulls++
			}
		}
		if float64(nulls) > 0.5*float64(cols) {
			rowsGt50++
		}
	}

	return diagnostic.DatasetSummary{
		RowCount:                 rows,
		ColumnCount:              cols,
		DuplicateRowCount:        frame.DuplicateRowCount(),
		TotalMissingCells:        totalMissing,
		OverallMissingPercentage: overallPct,
		MaxMissingColumnPct:      maxColPct,
		RowsGt50PctNulls:         rowsGt50,
	}
}

// Describe returns a short human-readable line for logs.
func Describe(report *diagnostic.DiagnosticReport) string {
	return fmt.Sprintf("%d rows x %d columns, %.1f%% missing",
		report.Summary.RowCount, report.Summary.ColumnCount,
		report.Summary.OverallMissingPercentage)
}
