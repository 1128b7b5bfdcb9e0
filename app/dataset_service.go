// Package app wires the diagnostic engine, cleaning operations and storage
// behind the operations the API exposes. Services hold no state of their own
// beyond the injected ports.
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"datacraft/domain/core"
	"datacraft/domain/dataset"
	"datacraft/domain/diagnostic"
	"datacraft/internal/cleaning"
	loader "datacraft/internal/dataset"
	"datacraft/internal/diagnose"
	"datacraft/internal/errors"
	"datacraft/ports"
)

// DatasetService orchestrates upload, listing and dashboard synchronization
// for stored dataset files.
type DatasetService struct {
	storage ports.FileStorage
	loader  *loader.Loader
	cache   ports.SummaryCache
	reports ports.ReportRepository
}

func NewDatasetService(storage ports.FileStorage, ld *loader.Loader, cache ports.SummaryCache, reports ports.ReportRepository) *DatasetService {
	return &DatasetService{storage: storage, loader: ld, cache: cache, reports: reports}
}

// Upload stores a new dataset file and returns the name it was stored under.
func (s *DatasetService) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	stored, err := s.storage.Store(ctx, r, filename)
	if err != nil {
		return "", errors.Wrap(err, "failed to store upload")
	}
	log.Printf("[DatasetService] stored upload %q as %q", filename, stored)
	return stored, nil
}

// List enumerates the stored dataset files.
func (s *DatasetService) List(ctx context.Context) ([]ports.FileInfo, error) {
	return s.storage.List(ctx)
}

// Delete removes a dataset file along with its cached summary and report.
func (s *DatasetService) Delete(ctx context.Context, name string) error {
	if err := s.storage.Delete(ctx, name); err != nil {
		return err
	}
	s.cache.Delete(name)
	if s.reports != nil {
		if err := s.reports.Delete(ctx, name); err != nil {
			log.Printf("[DatasetService] failed to delete report for %q: %v", name, err)
		}
	}
	return nil
}

// DashboardSummaries reconciles the summary cache against the stored files
// and returns one card per dataset. Summaries for new or changed files are
// recomputed; entries for deleted files are evicted.
func (s *DatasetService) DashboardSummaries(ctx context.Context) ([]diagnostic.DashboardSummary, error) {
	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(files))
	out := make([]diagnostic.DashboardSummary, 0, len(files))
	for _, file := range files {
		present[file.Name] = true

		cached, ok := s.cache.Get(file.Name)
		if ok && cached.LastModified == file.ModTime.Format("2006-01-02") && cached.ID == file.Name {
			out = append(out, cached)
			continue
		}

		summary, err := s.computeSummary(ctx, file)
		if err != nil {
			log.Printf("[DatasetService] skipping dashboard card for %q: %v", file.Name, err)
			continue
		}
		s.cache.Put(file.Name, summary)
		out = append(out, summary)
	}

	var stale []string
	for _, key := range s.cache.Keys() {
		if !present[key] {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		s.cache.Delete(stale...)
		log.Printf("[DatasetService] evicted %d stale dashboard entries", len(stale))
	}
	return out, nil
}

// Invalidate drops the cached summary for a dataset, forcing recomputation on
// the next dashboard read. Cleaning tasks call this after writing the file.
func (s *DatasetService) Invalidate(name string) {
	s.cache.Delete(name)
}

func (s *DatasetService) computeSummary(ctx context.Context, file ports.FileInfo) (diagnostic.DashboardSummary, error) {
	frame, err := s.loader.LoadFile(s.storage.Path(file.Name))
	if err != nil {
		return diagnostic.DashboardSummary{}, fmt.Errorf("load %s: %w", file.Name, err)
	}
	return diagnose.ComputeDashboard(frame, diagnose.FileMeta{
		Name:     file.Name,
		SizeByte: file.Size,
		ModTime:  file.ModTime,
	}), nil
}

// TaskService executes submitted tasks: diagnosis runs the profiling engine,
// cleaning tasks rewrite the stored file.
type TaskService struct {
	storage    ports.FileStorage
	loader     *loader.Loader
	aggregator *diagnose.Aggregator
	reports    ports.ReportRepository
	datasets   *DatasetService
	statistics *StatisticsService
}

func NewTaskService(storage ports.FileStorage, ld *loader.Loader, agg *diagnose.Aggregator, reports ports.ReportRepository, datasets *DatasetService, stats *StatisticsService) *TaskService {
	return &TaskService{storage: storage, loader: ld, aggregator: agg, reports: reports, datasets: datasets, statistics: stats}
}

// Handle is the queue's task handler.
func (s *TaskService) Handle(ctx context.Context, task ports.Task) (interface{}, error) {
	switch {
	case task.Type == ports.TaskDiagnosis:
		return s.runDiagnosis(ctx, task.DatasetName)
	case task.Type == ports.TaskStatistics:
		return s.statistics.Generate(ctx, task.DatasetName)
	case task.Type.IsCleaning():
		return s.runCleaning(ctx, task)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTask, task.Type)
	}
}

func (s *TaskService) runDiagnosis(ctx context.Context, datasetName string) (interface{}, error) {
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
			log.Printf("[TaskService] failed to persist report for %q: %v", datasetName, err)
		}
	}
	return report, nil
}

func (s *TaskService) runCleaning(ctx context.Context, task ports.Task) (interface{}, error) {
	frame, err := s.loader.LoadFile(s.storage.Path(task.DatasetName))
	if err != nil {
		return nil, err
	}

	cleaned, audit, err := applyCleaning(frame, task)
	if err != nil {
		return nil, err
	}

	payload, err := loader.Serialize(task.DatasetName, cleaned)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Replace(ctx, task.DatasetName, payload); err != nil {
		return nil, errors.Wrap(err, "failed to write cleaned file")
	}

	s.datasets.Invalidate(task.DatasetName)
	log.Printf("[TaskService] %s on %q: %d -> %d rows, %d cells changed",
		audit.Operation, task.DatasetName, audit.RowsBefore, audit.RowsAfter, audit.CellsChanged)
	return audit, nil
}

func applyCleaning(frame *dataset.Frame, task ports.Task) (*dataset.Frame, cleaning.Audit, error) {
	switch task.Type {
	case ports.TaskDropDuplicateRows:
		return cleaning.DropDuplicateRows(frame)
	case ports.TaskDropNARows:
		return cleaning.DropNARows(frame, task.ColumnName)
	case ports.TaskImputeMean:
		return cleaning.ImputeMean(frame, task.ColumnName)
	case ports.TaskImputeMedian:
		return cleaning.ImputeMedian(frame, task.ColumnName)
	case ports.TaskImputeMode:
		return cleaning.ImputeMode(frame, task.ColumnName)
	case ports.TaskImputeConstant:
		value, ok := task.Params["value"].(string)
		if !ok {
			return nil, cleaning.Audit{}, fmt.Errorf("%w: impute_constant requires a string \"value\" param", core.ErrInvalidParams)
		}
		return cleaning.ImputeConstant(frame, task.ColumnName, value)
	case ports.TaskStandardScale:
		return cleaning.Scale(frame, task.ColumnName, cleaning.ScaleStandard)
	case ports.TaskMinMaxScale:
		return cleaning.Scale(frame, task.ColumnName, cleaning.ScaleMinMax)
	case ports.TaskDeleteColumn:
		return cleaning.DeleteColumn(frame, task.ColumnName)
	default:
		return nil, cleaning.Audit{}, fmt.Errorf("%w: %q", core.ErrUnknownTask, task.Type)
	}
}
