package service

import (
	"context"
	"errors"
	"testing"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
)

func TestGetReviewerView(t *testing.T) {
	report := submittedReport("R1")
	report.ReviewerComment = ""
	repo := newMockReportRepo(report)
	svc := NewReportService(repo, ReviewPolicy{}, testLogger{})

	view, err := svc.GetReviewerView(context.Background(), "R1")
	if err != nil {
		t.Fatalf("GetReviewerView error: %v", err)
	}

	if view.Location.MapURL != "https://www.google.com/maps?q=34.0522,-118.2437" {
		t.Errorf("map URL = %q", view.Location.MapURL)
	}
	if !view.CommentEditable {
		t.Error("comment should be editable for a submitted report")
	}

	enabled := map[string]bool{}
	for _, a := range view.Actions {
		enabled[a.Action] = a.Enabled
	}
	if !enabled["mark_reviewed"] || !enabled["approve"] || !enabled["reject"] {
		t.Errorf("all three actions should apply to Submitted, got %v", enabled)
	}
}

func TestGetReviewerView_ActionsDisabledByStatus(t *testing.T) {
	tests := []struct {
		status          string
		markReviewed    bool
		approve, reject bool
		commentEditable bool
	}{
		{"Submitted", true, true, true, true},
		{"Reviewed", false, true, true, true},
		{"Approved", false, false, false, false},
		// Comment stays open on Rejected: the default policy locks it
		// only once Approved.
		{"Rejected", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			report := submittedReport("R2")
			report.Status = tt.status
			repo := newMockReportRepo(report)
			svc := NewReportService(repo, ReviewPolicy{}, testLogger{})

			view, err := svc.GetReviewerView(context.Background(), "R2")
			if err != nil {
				t.Fatalf("GetReviewerView error: %v", err)
			}

			got := map[string]bool{}
			for _, a := range view.Actions {
				got[a.Action] = a.Enabled
			}
			if got["mark_reviewed"] != tt.markReviewed || got["approve"] != tt.approve || got["reject"] != tt.reject {
				t.Errorf("actions = %v", got)
			}
			if view.CommentEditable != tt.commentEditable {
				t.Errorf("comment_editable = %v, want %v", view.CommentEditable, tt.commentEditable)
			}
		})
	}
}

func TestGetReporterView(t *testing.T) {
	report := submittedReport("R2")
	report.Status = workflow.StateApproved.String()
	report.ReviewerComment = "Good progress, John."
	report.Manpower = ""
	report.RisksIssues = ""
	repo := newMockReportRepo(report)
	svc := NewReportService(repo, ReviewPolicy{}, testLogger{})

	view, err := svc.GetReporterView(context.Background(), "R2")
	if err != nil {
		t.Fatalf("GetReporterView error: %v", err)
	}

	if view.ReviewerComment != "Good progress, John." {
		t.Errorf("reviewer comment = %q", view.ReviewerComment)
	}
	if view.Manpower != "N/A" || view.RisksIssues != "N/A" {
		t.Errorf("absent narratives should render as N/A, got %q / %q", view.Manpower, view.RisksIssues)
	}
	if view.Weather != "Sunny, 20°C" {
		t.Errorf("present narrative should be verbatim, got %q", view.Weather)
	}
}

func TestGetReporterView_PlainLocationHasNoMapLink(t *testing.T) {
	report := submittedReport("R3")
	report.Location = "Site B, Near River Crossing Point X"
	repo := newMockReportRepo(report)
	svc := NewReportService(repo, ReviewPolicy{}, testLogger{})

	view, err := svc.GetReporterView(context.Background(), "R3")
	if err != nil {
		t.Fatalf("GetReporterView error: %v", err)
	}
	if view.Location.MapURL != "" {
		t.Errorf("plain-text location should carry no map link, got %q", view.Location.MapURL)
	}
	if view.Location.Text != "Site B, Near River Crossing Point X" {
		t.Errorf("location text = %q", view.Location.Text)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	svc := NewReportService(newMockReportRepo(), ReviewPolicy{}, testLogger{})

	_, err := svc.GetReport(context.Background(), "unknown")
	if !errors.Is(err, entity.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestViews_NoPhotoNeverResolvesFilename(t *testing.T) {
	report := submittedReport("R4")
	report.PhotoURI = ""
	report.PhotoFileName = "stale.jpg" // must not leak into the view
	repo := newMockReportRepo(report)
	svc := NewReportService(repo, ReviewPolicy{}, testLogger{})

	view, err := svc.GetReporterView(context.Background(), "R4")
	if err != nil {
		t.Fatalf("GetReporterView error: %v", err)
	}
	if view.PhotoURI != "" || view.PhotoFileName != "" {
		t.Errorf("photo fields should be empty, got %q / %q", view.PhotoURI, view.PhotoFileName)
	}
}
