package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/session"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrCommentLocked is returned when the comment field can no longer be
// edited for the report's current status.
var ErrCommentLocked = errors.New("reviewer comment is locked for this status")

// ReviewPolicy names the one configurable review rule. By default comment
// editing locks only once a report is Approved, leaving Rejected reports
// open for a trailing comment. Setting LockCommentsOnReject closes that
// asymmetry.
type ReviewPolicy struct {
	LockCommentsOnReject bool
}

// TransitionResult is the outcome of a successful reviewer action.
type TransitionResult struct {
	Report *entity.Report
	// Message is the user-visible confirmation naming the report and its
	// new status.
	Message string
}

// ReviewService owns the reviewer-side mutations: status transitions and
// comment updates. Both hold the session busy flag for the duration of the
// storage round trip.
type ReviewService interface {
	Transition(ctx context.Context, id string, target workflow.State, comment string) (*TransitionResult, error)
	UpdateComment(ctx context.Context, id string, comment string) (*entity.Report, error)
}

type reviewServiceImpl struct {
	reports port.ReportRepository
	session *session.Manager
	policy  ReviewPolicy
	logger  Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reports port.ReportRepository, sess *session.Manager, policy ReviewPolicy, logger Logger) ReviewService {
	return &reviewServiceImpl{
		reports: reports,
		session: sess,
		policy:  policy,
		logger:  logger,
	}
}

// Transition moves a report to the requested status and merges the reviewer
// comment. Disabled buttons in the UI are only the first line of defense;
// the transition is re-validated here against the state machine before
// anything is written.
func (s *reviewServiceImpl) Transition(ctx context.Context, id string, target workflow.State, comment string) (*TransitionResult, error) {
	trigger, ok := workflow.TriggerFor(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a reviewer-reachable status", workflow.ErrTransitionRejected, target)
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load report for transition", "error", err, "report_id", id)
		return nil, err
	}

	// Repeating the transition that produced the current status is a no-op
	// success: status stays, the existing comment is left untouched.
	if workflow.State(report.Status) == target {
		s.logger.Info("Transition repeated, nothing to do", "report_id", id, "status", report.Status)
		return &TransitionResult{
			Report:  report,
			Message: fmt.Sprintf("Report %s is already %s.", id, strings.ToLower(string(target))),
		}, nil
	}

	machine := workflow.NewReportMachine(workflow.State(report.Status))
	if err := machine.Fire(ctx, trigger); err != nil {
		s.logger.Error("Transition rejected", "report_id", id, "from", report.Status, "trigger", trigger.String())
		return nil, err
	}

	updated := report.Clone()
	updated.Status = machine.State().String()
	if comment != "" && !s.commentLocked(workflow.State(report.Status)) {
		updated.ReviewerComment = comment
	}
	updated.UpdatedAt = time.Now()

	// The busy flag brackets the storage round trip and is guaranteed to
	// clear on the error path; a failed save leaves the stored report at
	// its prior status.
	err = s.session.WithBusy(func() error {
		return s.reports.Save(ctx, updated)
	})
	if err != nil {
		s.logger.Error("Failed to persist transition", "error", err, "report_id", id, "target", string(target))
		return nil, err
	}

	s.logger.Info("Report status updated",
		"report_id", id,
		"from", report.Status,
		"to", updated.Status)

	return &TransitionResult{
		Report:  updated,
		Message: fmt.Sprintf("Report %s has been marked as %s.", id, strings.ToLower(updated.Status)),
	}, nil
}

// UpdateComment replaces the reviewer comment without touching status.
// An empty comment is a no-op: a blank input never erases an existing
// comment.
func (s *reviewServiceImpl) UpdateComment(ctx context.Context, id string, comment string) (*entity.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load report for comment update", "error", err, "report_id", id)
		return nil, err
	}

	if comment == "" {
		return report, nil
	}

	if s.commentLocked(workflow.State(report.Status)) {
		return nil, fmt.Errorf("%w: status %s", ErrCommentLocked, report.Status)
	}

	updated := report.Clone()
	updated.ReviewerComment = comment
	updated.UpdatedAt = time.Now()

	err = s.session.WithBusy(func() error {
		return s.reports.Save(ctx, updated)
	})
	if err != nil {
		s.logger.Error("Failed to persist comment", "error", err, "report_id", id)
		return nil, err
	}

	s.logger.Info("Reviewer comment updated", "report_id", id)
	return updated, nil
}

func (s *reviewServiceImpl) commentLocked(state workflow.State) bool {
	switch state {
	case workflow.StateApproved:
		return true
	case workflow.StateRejected:
		return s.policy.LockCommentsOnReject
	default:
		return false
	}
}
