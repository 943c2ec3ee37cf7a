package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/database"
	"go.uber.org/zap"
)

// NotificationRepository implements port.NotificationRepository on SQLite.
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new notification attempt.
func (r *NotificationRepository) Create(ctx context.Context, record *port.NotificationRecord) error {
	query := `
		INSERT INTO notifications (report_id, status, message, error_msg)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.executor(ctx).ExecContext(ctx, query,
		record.ReportID,
		record.Status,
		record.Message,
		record.ErrorMsg,
	)
	if err != nil {
		r.logger.Error("Failed to create notification", zap.String("report_id", record.ReportID), zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// GetByReportID retrieves the most recent notification attempt for a report.
func (r *NotificationRepository) GetByReportID(ctx context.Context, reportID string) (*port.NotificationRecord, error) {
	query := `
		SELECT id, report_id, status, message, error_msg, created_at, sent_at
		FROM notifications
		WHERE report_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	var record port.NotificationRecord
	var sentAt sql.NullTime

	err := r.executor(ctx).QueryRowContext(ctx, query, reportID).Scan(
		&record.ID,
		&record.ReportID,
		&record.Status,
		&record.Message,
		&record.ErrorMsg,
		&record.CreatedAt,
		&sentAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get notification", zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if sentAt.Valid {
		record.SentAt = &sentAt.Time
	}

	return &record, nil
}

// MarkSent records a successful delivery.
func (r *NotificationRepository) MarkSent(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET status = 'SENT', sent_at = ? WHERE id = ?`

	_, err := r.executor(ctx).ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to mark notification sent", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}

// MarkFailed records a delivery failure.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id int64, errorMsg string) error {
	query := `UPDATE notifications SET status = 'FAILED', error_msg = ? WHERE id = ?`

	_, err := r.executor(ctx).ExecContext(ctx, query, errorMsg, id)
	if err != nil {
		r.logger.Error("Failed to mark notification failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}

	return nil
}

func (r *NotificationRepository) executor(ctx context.Context) database.Executor {
	if tx, ok := database.TxFrom(ctx); ok {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
