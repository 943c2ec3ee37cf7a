package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/database"
	"go.uber.org/zap"
)

const reportColumns = `
	id, project_id, location, date, weather, manpower, equipment_hours,
	materials_used, progress_updates, risks_issues, photo_uri,
	photo_file_name, signature, submitted_at, status, reporter_name,
	summary, full_report_text, reviewer_comment, created_at, updated_at`

// ReportRepository implements port.ReportRepository on SQLite.
type ReportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB, logger *zap.Logger) port.ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new report record.
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (
			id, project_id, location, date, weather, manpower,
			equipment_hours, materials_used, progress_updates, risks_issues,
			photo_uri, photo_file_name, signature, submitted_at, status,
			reporter_name, summary, full_report_text, reviewer_comment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		report.ID,
		report.ProjectID,
		report.Location,
		report.Date,
		report.Weather,
		report.Manpower,
		report.EquipmentHours,
		report.MaterialsUsed,
		report.ProgressUpdates,
		report.RisksIssues,
		report.PhotoURI,
		report.PhotoFileName,
		report.Signature,
		report.SubmittedAt,
		report.Status,
		report.ReporterName,
		report.Summary,
		report.FullReportText,
		report.ReviewerComment,
	)
	if err != nil {
		r.logger.Error("Failed to create report", zap.String("id", report.ID), zap.Error(err))
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by its opaque identifier. An absent id yields
// entity.ErrReportNotFound, never a nil record.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	report, err := scanReport(r.executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", entity.ErrReportNotFound, id)
	}
	if err != nil {
		r.logger.Error("Failed to get report", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// Save replaces the mutable fields of an existing report. An update that
// matches no row surfaces as ErrReportNotFound rather than succeeding
// silently.
func (r *ReportRepository) Save(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports SET
			project_id = ?, location = ?, date = ?, weather = ?,
			manpower = ?, equipment_hours = ?, materials_used = ?,
			progress_updates = ?, risks_issues = ?, photo_uri = ?,
			photo_file_name = ?, signature = ?, status = ?,
			reporter_name = ?, summary = ?, full_report_text = ?,
			reviewer_comment = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.executor(ctx).ExecContext(ctx, query,
		report.ProjectID,
		report.Location,
		report.Date,
		report.Weather,
		report.Manpower,
		report.EquipmentHours,
		report.MaterialsUsed,
		report.ProgressUpdates,
		report.RisksIssues,
		report.PhotoURI,
		report.PhotoFileName,
		report.Signature,
		report.Status,
		report.ReporterName,
		report.Summary,
		report.FullReportText,
		report.ReviewerComment,
		report.ID,
	)
	if err != nil {
		r.logger.Error("Failed to save report", zap.String("id", report.ID), zap.Error(err))
		return fmt.Errorf("failed to save report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", entity.ErrReportNotFound, report.ID)
	}

	return nil
}

// List retrieves reports with pagination, newest submissions first.
func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports
		ORDER BY submitted_at DESC
		LIMIT ? OFFSET ?`

	return r.queryReports(ctx, query, limit, offset)
}

// ListByReporter retrieves a reporter's own submissions.
func (r *ReportRepository) ListByReporter(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports
		WHERE reporter_name = ?
		ORDER BY submitted_at DESC
		LIMIT ? OFFSET ?`

	return r.queryReports(ctx, query, reporterName, limit, offset)
}

// ListPendingGeneration retrieves reports still missing generated text,
// oldest first so early submissions are served before new arrivals.
func (r *ReportRepository) ListPendingGeneration(ctx context.Context, limit int) ([]*entity.Report, error) {
	query := `SELECT ` + reportColumns + `
		FROM reports
		WHERE summary = '' OR full_report_text = ''
		ORDER BY submitted_at ASC
		LIMIT ?`

	return r.queryReports(ctx, query, limit)
}

func (r *ReportRepository) queryReports(ctx context.Context, query string, args ...interface{}) ([]*entity.Report, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query reports", zap.Error(err))
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row scanner) (*entity.Report, error) {
	var report entity.Report
	err := row.Scan(
		&report.ID,
		&report.ProjectID,
		&report.Location,
		&report.Date,
		&report.Weather,
		&report.Manpower,
		&report.EquipmentHours,
		&report.MaterialsUsed,
		&report.ProgressUpdates,
		&report.RisksIssues,
		&report.PhotoURI,
		&report.PhotoFileName,
		&report.Signature,
		&report.SubmittedAt,
		&report.Status,
		&report.ReporterName,
		&report.Summary,
		&report.FullReportText,
		&report.ReviewerComment,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) executor(ctx context.Context) database.Executor {
	if tx, ok := database.TxFrom(ctx); ok {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.ReportRepository = (*ReportRepository)(nil)
