package port

import (
	"context"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
)

// ReportRepository defines persistence operations for Report. GetByID and
// Save return entity.ErrReportNotFound for an absent id; a silent no-op
// would hide bugs at the call site.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Save(ctx context.Context, report *entity.Report) error
	List(ctx context.Context, limit, offset int) ([]*entity.Report, error)
	ListByReporter(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error)

	// ListPendingGeneration returns reports still missing their generated
	// summary or full narrative, oldest first.
	ListPendingGeneration(ctx context.Context, limit int) ([]*entity.Report, error)
}

// NotificationRecord is one attempt to inform a report's stakeholder of a
// terminal status.
type NotificationRecord struct {
	ID        int64
	ReportID  string
	Status    string // PENDING, SENT, FAILED
	Message   string
	ErrorMsg  string
	CreatedAt time.Time
	SentAt    *time.Time
}

// NotificationRepository defines persistence operations for notification
// attempts.
type NotificationRepository interface {
	Create(ctx context.Context, record *NotificationRecord) error
	GetByReportID(ctx context.Context, reportID string) (*NotificationRecord, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errorMsg string) error
}

// TransactionManager handles database transactions.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
