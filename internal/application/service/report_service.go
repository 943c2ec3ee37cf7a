package service

import (
	"context"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/geo"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
)

// notAvailable is how views render an absent narrative field.
const notAvailable = "N/A"

// LocationView is the location field plus a map link when the text embeds
// coordinates. Plain-text locations carry no link.
type LocationView struct {
	Text   string `json:"text"`
	MapURL string `json:"map_url,omitempty"`
}

// ReportDetail is the field-by-field read model both role views share.
// Narrative fields are verbatim, absent ones rendered as "N/A".
type ReportDetail struct {
	ID              string       `json:"id"`
	ProjectID       string       `json:"project_id"`
	Location        LocationView `json:"location"`
	Date            string       `json:"date"`
	Weather         string       `json:"weather"`
	Manpower        string       `json:"manpower"`
	EquipmentHours  string       `json:"equipment_hours"`
	MaterialsUsed   string       `json:"materials_used"`
	ProgressUpdates string       `json:"progress_updates"`
	RisksIssues     string       `json:"risks_issues"`
	PhotoURI        string       `json:"photo_uri,omitempty"`
	PhotoFileName   string       `json:"photo_file_name,omitempty"`
	Signature       string       `json:"signature"`
	SubmittedAt     string       `json:"submitted_at"`
	Status          string       `json:"status"`
	ReporterName    string       `json:"reporter_name"`
	Summary         string       `json:"summary,omitempty"`
	FullReportText  string       `json:"full_report_text,omitempty"`
}

// ActionView is one reviewer action and whether it applies to the current
// status.
type ActionView struct {
	Action  string `json:"action"`
	Target  string `json:"target_status"`
	Enabled bool   `json:"enabled"`
}

// ReviewerView is the reviewer's read model: all fields plus the three
// transition actions and the comment affordance.
type ReviewerView struct {
	ReportDetail
	ReviewerComment string       `json:"reviewer_comment"`
	CommentEditable bool         `json:"comment_editable"`
	Actions         []ActionView `json:"actions"`
}

// ReporterView is the read-only reporter model: the same fields minus all
// reviewer affordances, with the reviewer comment visible when present.
type ReporterView struct {
	ReportDetail
	ReviewerComment string `json:"reviewer_comment,omitempty"`
}

// ReportService builds the role-scoped read models.
type ReportService interface {
	GetReport(ctx context.Context, id string) (*entity.Report, error)
	GetReviewerView(ctx context.Context, id string) (*ReviewerView, error)
	GetReporterView(ctx context.Context, id string) (*ReporterView, error)
	ListReports(ctx context.Context, limit, offset int) ([]*entity.Report, error)
	ListReportsByReporter(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error)
}

type reportServiceImpl struct {
	reports port.ReportRepository
	policy  ReviewPolicy
	logger  Logger
}

// NewReportService creates a new ReportService.
func NewReportService(reports port.ReportRepository, policy ReviewPolicy, logger Logger) ReportService {
	return &reportServiceImpl{
		reports: reports,
		policy:  policy,
		logger:  logger,
	}
}

func (s *reportServiceImpl) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get report", "error", err, "report_id", id)
		return nil, err
	}
	return report, nil
}

func (s *reportServiceImpl) GetReviewerView(ctx context.Context, id string) (*ReviewerView, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	state := workflow.State(report.Status)
	machine := workflow.NewReportMachine(state)

	view := &ReviewerView{
		ReportDetail:    toDetail(report),
		ReviewerComment: report.ReviewerComment,
		CommentEditable: !s.commentLocked(state),
		Actions: []ActionView{
			{Action: "mark_reviewed", Target: workflow.StateReviewed.String(), Enabled: machine.CanFire(workflow.TriggerMarkReviewed)},
			{Action: "approve", Target: workflow.StateApproved.String(), Enabled: machine.CanFire(workflow.TriggerApprove)},
			{Action: "reject", Target: workflow.StateRejected.String(), Enabled: machine.CanFire(workflow.TriggerReject)},
		},
	}

	return view, nil
}

func (s *reportServiceImpl) GetReporterView(ctx context.Context, id string) (*ReporterView, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ReporterView{
		ReportDetail:    toDetail(report),
		ReviewerComment: report.ReviewerComment,
	}, nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	reports, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list reports", "error", err)
		return nil, err
	}
	return reports, nil
}

func (s *reportServiceImpl) ListReportsByReporter(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error) {
	reports, err := s.reports.ListByReporter(ctx, reporterName, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list reports by reporter", "error", err, "reporter", reporterName)
		return nil, err
	}
	return reports, nil
}

func (s *reportServiceImpl) commentLocked(state workflow.State) bool {
	switch state {
	case workflow.StateApproved:
		return true
	case workflow.StateRejected:
		return s.policy.LockCommentsOnReject
	default:
		return false
	}
}

func toDetail(report *entity.Report) ReportDetail {
	detail := ReportDetail{
		ID:              report.ID,
		ProjectID:       report.ProjectID,
		Location:        LocationView{Text: report.Location},
		Date:            report.Date.Format(time.RFC3339),
		Weather:         orNA(report.Weather),
		Manpower:        orNA(report.Manpower),
		EquipmentHours:  orNA(report.EquipmentHours),
		MaterialsUsed:   orNA(report.MaterialsUsed),
		ProgressUpdates: orNA(report.ProgressUpdates),
		RisksIssues:     orNA(report.RisksIssues),
		Signature:       report.Signature,
		SubmittedAt:     report.SubmittedAt.Format(time.RFC3339),
		Status:          report.Status,
		ReporterName:    report.ReporterName,
		Summary:         report.Summary,
		FullReportText:  report.FullReportText,
	}

	if coords, ok := geo.Parse(report.Location); ok {
		detail.Location.MapURL = coords.MapURL()
	}

	// The filename is only resolved for reports that carry a photo.
	if report.HasPhoto() {
		detail.PhotoURI = report.PhotoURI
		detail.PhotoFileName = report.PhotoFileName
	}

	return detail
}

func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}
