package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/service"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/session"
	"github.com/EGUS74/SSS-Construction-Reports/internal/attachment"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
	"github.com/EGUS74/SSS-Construction-Reports/internal/export"
)

type mockReportService struct {
	getReport       func(ctx context.Context, id string) (*entity.Report, error)
	getReviewerView func(ctx context.Context, id string) (*service.ReviewerView, error)
	getReporterView func(ctx context.Context, id string) (*service.ReporterView, error)
	listReports     func(ctx context.Context, limit, offset int) ([]*entity.Report, error)
	listByReporter  func(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error)
}

func (m *mockReportService) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	return m.getReport(ctx, id)
}

func (m *mockReportService) GetReviewerView(ctx context.Context, id string) (*service.ReviewerView, error) {
	return m.getReviewerView(ctx, id)
}

func (m *mockReportService) GetReporterView(ctx context.Context, id string) (*service.ReporterView, error) {
	return m.getReporterView(ctx, id)
}

func (m *mockReportService) ListReports(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	return m.listReports(ctx, limit, offset)
}

func (m *mockReportService) ListReportsByReporter(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error) {
	return m.listByReporter(ctx, reporterName, limit, offset)
}

type mockReviewService struct {
	transition    func(ctx context.Context, id string, target workflow.State, comment string) (*service.TransitionResult, error)
	updateComment func(ctx context.Context, id string, comment string) (*entity.Report, error)
}

func (m *mockReviewService) Transition(ctx context.Context, id string, target workflow.State, comment string) (*service.TransitionResult, error) {
	return m.transition(ctx, id, target, comment)
}

func (m *mockReviewService) UpdateComment(ctx context.Context, id string, comment string) (*entity.Report, error) {
	return m.updateComment(ctx, id, comment)
}

type mockNotificationService struct {
	notify func(ctx context.Context, reportID string) error
}

func (m *mockNotificationService) NotifyStakeholder(ctx context.Context, reportID string) error {
	return m.notify(ctx, reportID)
}

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

func testReport(id string) *entity.Report {
	now := time.Date(2023, 3, 15, 17, 30, 0, 0, time.UTC)
	return &entity.Report{
		ID:           id,
		ProjectID:    "PJ-1024",
		Location:     "Sector 7G",
		Date:         now,
		SubmittedAt:  now,
		Status:       string(workflow.StateSubmitted),
		ReporterName: "J. Alvarez",
	}
}

type serverFixture struct {
	server   *Server
	sessions *session.Manager
	reports  *mockReportService
	reviews  *mockReviewService
	notifier *mockNotificationService
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	reports := &mockReportService{
		getReport: func(ctx context.Context, id string) (*entity.Report, error) {
			return testReport(id), nil
		},
		getReviewerView: func(ctx context.Context, id string) (*service.ReviewerView, error) {
			return &service.ReviewerView{}, nil
		},
		getReporterView: func(ctx context.Context, id string) (*service.ReporterView, error) {
			return &service.ReporterView{}, nil
		},
		listReports: func(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
			return []*entity.Report{testReport("REP-1678886400000")}, nil
		},
		listByReporter: func(ctx context.Context, reporterName string, limit, offset int) ([]*entity.Report, error) {
			return []*entity.Report{testReport("REP-1678886400000")}, nil
		},
	}
	reviews := &mockReviewService{
		transition: func(ctx context.Context, id string, target workflow.State, comment string) (*service.TransitionResult, error) {
			report := testReport(id)
			report.Status = string(target)
			return &service.TransitionResult{
				Report:  report,
				Message: fmt.Sprintf("Report %s has been marked as %s.", id, target),
			}, nil
		},
		updateComment: func(ctx context.Context, id string, comment string) (*entity.Report, error) {
			report := testReport(id)
			report.ReviewerComment = comment
			return report, nil
		},
	}
	notifier := &mockNotificationService{
		notify: func(ctx context.Context, reportID string) error { return nil },
	}

	sessions := session.NewManager()
	exporter := export.NewExporter(t.TempDir(), zap.NewNop())
	previewer := attachment.NewPreviewer(t.TempDir(), t.TempDir(), zap.NewNop())

	server := NewServer(DefaultServerConfig(), sessions, reports, reviews, notifier, exporter, previewer, testLogger{})

	return &serverFixture{
		server:   server,
		sessions: sessions,
		reports:  reports,
		reviews:  reviews,
		notifier: notifier,
	}
}

func (f *serverFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	f.server.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestLoginAndSessionState(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodPost, "/api/session/login", `{"role": "reviewer"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.RoleReviewer, f.sessions.Role())

	w = f.do(http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"reviewer"`)

	w = f.do(http.MethodPost, "/api/session/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.RoleNone, f.sessions.Role())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodPost, "/api/session/login", `{"role": "superuser"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.RoleNone, f.sessions.Role())
}

func TestRoleGateRedirectsToHome(t *testing.T) {
	f := newServerFixture(t)

	// No role at all.
	w := f.do(http.MethodGet, "/api/admin/reports", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// A reporter wandering into the reviewer console is sent home, not
	// rejected with an API error.
	require.NoError(t, f.sessions.Login(entity.RoleReporter))
	w = f.do(http.MethodGet, "/api/admin/reports/REP-1678886400000", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Same gate the other way around.
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))
	w = f.do(http.MethodGet, "/api/foreman/reports?reporter=J.+Alvarez", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestReviewerListAndDetail(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	w := f.do(http.MethodGet, "/api/admin/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REP-1678886400000")

	w = f.do(http.MethodGet, "/api/admin/reports/REP-1678886400000", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	w := f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/status",
		`{"target_status": "Approved", "comment": "Good work"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "has been marked as Approved")
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	w := f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/status",
		`{"target_status": "Archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	f.reviews.transition = func(ctx context.Context, id string, target workflow.State, comment string) (*service.TransitionResult, error) {
		return nil, entity.ErrReportNotFound
	}
	w := f.do(http.MethodPost, "/api/admin/reports/REP-404/status",
		`{"target_status": "Approved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.reviews.transition = func(ctx context.Context, id string, target workflow.State, comment string) (*service.TransitionResult, error) {
		return nil, fmt.Errorf("transition %s: %w", target, workflow.ErrTransitionRejected)
	}
	w = f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/status",
		`{"target_status": "Approved"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	f.reviews.updateComment = func(ctx context.Context, id string, comment string) (*entity.Report, error) {
		return nil, service.ErrCommentLocked
	}
	w = f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/comment",
		`{"comment": "too late"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMalformedReportIDRejected(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	w := f.do(http.MethodGet, "/api/admin/reports/not-a-report", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/api/admin/reports/REP-abc/status",
		`{"target_status": "Approved"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifyStakeholder(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	notified := ""
	f.notifier.notify = func(ctx context.Context, reportID string) error {
		notified = reportID
		return nil
	}

	w := f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/notify", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "REP-1678886400000", notified)

	f.notifier.notify = func(ctx context.Context, reportID string) error {
		return service.ErrReportNotTerminal
	}
	w = f.do(http.MethodPost, "/api/admin/reports/REP-1678886400000/notify", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportReport(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReviewer))

	w := f.do(http.MethodGet, "/api/admin/reports/REP-1678886400000/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "REP-1678886400000")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestForemanRoutes(t *testing.T) {
	f := newServerFixture(t)
	require.NoError(t, f.sessions.Login(entity.RoleReporter))

	w := f.do(http.MethodGet, "/api/foreman/reports", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/foreman/reports?reporter=J.+Alvarez", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REP-1678886400000")

	w = f.do(http.MethodGet, "/api/foreman/reports/REP-1678886400000", "")
	require.Equal(t, http.StatusOK, w.Code)

	// No photo on the fixture report.
	w = f.do(http.MethodGet, "/api/foreman/reports/REP-1678886400000/photo", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
