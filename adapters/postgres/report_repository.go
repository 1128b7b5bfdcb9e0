// Package postgres persists diagnostic reports in PostgreSQL. Reports are
// stored as a single JSONB payload per dataset so the schema never lags the
// report shape.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datacraft/domain/core"
	"datacraft/domain/diagnostic"
	"datacraft/ports"
)

const reportSchema = `
CREATE TABLE IF NOT EXISTS diagnostic_reports (
	dataset_id  TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	payload     JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository and ensures its schema
func NewReportRepository(db *sqlx.DB) (ports.ReportRepository, error) {
	if _, err := db.Exec(reportSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure reports schema: %w", err)
	}
	return &reportRepository{db: db}, nil
}

// Save upserts the report for a dataset
func (r *reportRepository) Save(ctx context.Context, report *diagnostic.DiagnosticReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fp, err := report.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint report: %w", err)
	}

	query := `INSERT INTO diagnostic_reports (dataset_id, fingerprint, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (dataset_id) DO UPDATE
		SET fingerprint = EXCLUDED.fingerprint, payload = EXCLUDED.payload, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, report.DatasetID, fp.String(), payload); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get retrieves the report for a dataset
func (r *reportRepository) Get(ctx context.Context, datasetID string) (*diagnostic.DiagnosticReport, error) {
	var payload []byte
	query := `SELECT payload FROM diagnostic_reports WHERE dataset_id = $1`

	err := r.db.QueryRowContext(ctx, query, datasetID).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report diagnostic.DiagnosticReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Fingerprint returns the stored report's content hash
func (r *reportRepository) Fingerprint(ctx context.Context, datasetID string) (core.Fingerprint, error) {
	var fp string
	query := `SELECT fingerprint FROM diagnostic_reports WHERE dataset_id = $1`

	err := r.db.QueryRowContext(ctx, query, datasetID).Scan(&fp)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", core.ErrReportNotFound
		}
		return "", fmt.Errorf("failed to get fingerprint: %w", err)
	}
	return core.Fingerprint(fp), nil
}

// Delete removes a dataset's report
func (r *reportRepository) Delete(ctx context.Context, datasetID string) error {
	query := `DELETE FROM diagnostic_reports WHERE dataset_id = $1`
	if _, err := r.db.ExecContext(ctx, query, datasetID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
