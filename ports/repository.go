// Package ports defines the interfaces behind which the engine's external
// collaborators live: persistence, job dispatch, caching, file storage and
// the recommendation layer. The diagnostic core depends only on these
// interfaces, never on the adapters.
package ports

import (
	"context"

	"datacraft/domain/core"
	"datacraft/domain/diagnostic"
)

// ReportRepository persists diagnostic reports.
type ReportRepository interface {
	// Save stores a report, replacing any previous report for the dataset.
	Save(ctx context.Context, report *diagnostic.DiagnosticReport) error

	// Get returns the stored report for a dataset, or core.ErrReportNotFound.
	Get(ctx context.Context, datasetID string) (*diagnostic.DiagnosticReport, error)

	// Fingerprint returns the stored report's content hash, or
	// core.ErrReportNotFound.
	Fingerprint(ctx context.Context, datasetID string) (core.Fingerprint, error)

	// Delete removes a dataset's report. Deleting a missing report is a no-op.
	Delete(ctx context.Context, datasetID string) error
}
