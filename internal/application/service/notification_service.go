package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
)

// ErrReportNotTerminal is returned when a stakeholder notification is
// requested for a report that is still in review.
var ErrReportNotTerminal = errors.New("report is not in a terminal status")

// NotificationService informs a report's stakeholder once the report
// reaches a terminal status. Fire-and-forget: the caller gets a
// success/failure acknowledgment and nothing else.
type NotificationService interface {
	NotifyStakeholder(ctx context.Context, reportID string) error
}

type notificationServiceImpl struct {
	reports       port.ReportRepository
	notifications port.NotificationRepository
	sender        port.MessageSender
	txManager     port.TransactionManager
	recipient     string
	logger        Logger
}

// NewNotificationService creates a new NotificationService. recipient is
// the stakeholder address the messaging collaborator expects.
func NewNotificationService(
	reports port.ReportRepository,
	notifications port.NotificationRepository,
	sender port.MessageSender,
	txManager port.TransactionManager,
	recipient string,
	logger Logger,
) NotificationService {
	return &notificationServiceImpl{
		reports:       reports,
		notifications: notifications,
		sender:        sender,
		txManager:     txManager,
		recipient:     recipient,
		logger:        logger,
	}
}

// NotifyStakeholder records and sends a terminal-status notification.
func (s *notificationServiceImpl) NotifyStakeholder(ctx context.Context, reportID string) error {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		s.logger.Error("Failed to get report for notification", "error", err, "report_id", reportID)
		return err
	}

	if !workflow.State(report.Status).IsTerminal() {
		return fmt.Errorf("%w: %s is %s", ErrReportNotTerminal, reportID, report.Status)
	}

	message := s.buildMessage(report.ID, report.Status, report.ReviewerComment)

	record := &port.NotificationRecord{
		ReportID:  reportID,
		Status:    "PENDING",
		Message:   message,
		CreatedAt: time.Now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.notifications.Create(txCtx, record); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}

		if err := s.sender.SendMessage(txCtx, s.recipient, message); err != nil {
			if markErr := s.notifications.MarkFailed(txCtx, record.ID, err.Error()); markErr != nil {
				s.logger.Error("Failed to mark notification failed", "error", markErr, "report_id", reportID)
			}
			return fmt.Errorf("send message: %w", err)
		}

		if err := s.notifications.MarkSent(txCtx, record.ID); err != nil {
			return fmt.Errorf("mark notification sent: %w", err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to notify stakeholder", "error", err, "report_id", reportID)
		return err
	}

	s.logger.Info("Stakeholder notified",
		"report_id", reportID,
		"status", report.Status,
		"notification_id", record.ID)

	return nil
}

func (s *notificationServiceImpl) buildMessage(id, status, comment string) string {
	message := fmt.Sprintf("Daily report %s has been %s.", id, status)
	if comment != "" {
		message += fmt.Sprintf(" Reviewer comment: %s", comment)
	}
	return message
}
