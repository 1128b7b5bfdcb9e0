package app

import (
	"context"
	"log"

	"datacraft/domain/diagnostic"
	loader "datacraft/internal/dataset"
	"datacraft/internal/diagnose"
	"datacraft/ports"
)

// Statistics bundles a full diagnostic report with the cleaning advice
// derived from it. This is the payload the statistics endpoint polls for.
type Statistics struct {
	Report          *diagnostic.DiagnosticReport    `json:"report"`
	Recommendations map[string]ports.Recommendation `json:"recommendations"`
	Plans           []ports.CleaningPlan            `json:"plans"`
}

// StatisticsService runs the engine and the recommender for one dataset.
type StatisticsService struct {
	storage     ports.FileStorage
	loader      *loader.Loader
	aggregator  *diagnose.Aggregator
	recommender ports.Recommender
	reports     ports.ReportRepository
}

func NewStatisticsService(storage ports.FileStorage, ld *loader.Loader, agg *diagnose.Aggregator, rec ports.Recommender, reports ports.ReportRepository) *StatisticsService {
	return &StatisticsService{storage: storage, loader: ld, aggregator: agg, recommender: rec, reports: reports}
}

// Generate profiles the dataset and attaches a recommendation per column
// with missing data plus three whole-dataset cleaning plans.
func (s *StatisticsService) Generate(ctx context.Context, datasetName string) (*Statistics, error) {
	frame, err := s.loader.LoadFile(s.storage.Path(datasetName))
	if err != nil {
		return nil, err
	}

	report, err := s.aggregator.Run(ctx, datasetName, frame)
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			log.Printf("[StatisticsService] failed to persist report for %q: %v", datasetName, err)
		}
	}

	stats := &Statistics{
		Report:          report,
		Recommendations: make(map[string]ports.Recommendation),
	}

	for _, col := range report.Columns {
		if col.MissingCount == 0 {
			continue
		}
		rec, err := s.recommender.RecommendColumn(ctx, col)
		if err != nil {
			log.Printf("[StatisticsService] recommendation failed for %q: %v", col.ColumnName, err)
			continue
		}
		stats.Recommendations[col.ColumnName] = rec
	}

	plans, err := s.recommender.SuggestPlans(ctx, report)
	if err != nil {
		log.Printf("[StatisticsService] plan generation failed for %q: %v", datasetName, err)
	} else {
		stats.Plans = plans
	}
	return stats, nil
}
