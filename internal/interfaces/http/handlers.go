package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/service"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/session"
	"github.com/EGUS74/SSS-Construction-Reports/internal/attachment"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
	"github.com/EGUS74/SSS-Construction-Reports/internal/export"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/utils"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	sessions            *session.Manager
	reportService       service.ReportService
	reviewService       service.ReviewService
	notificationService service.NotificationService
	exporter            *export.Exporter
	previewer           *attachment.Previewer
	logger              Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	sessions *session.Manager,
	reportService service.ReportService,
	reviewService service.ReviewService,
	notificationService service.NotificationService,
	exporter *export.Exporter,
	previewer *attachment.Previewer,
	logger Logger,
) *Handlers {
	return &Handlers{
		sessions:            sessions,
		reportService:       reportService,
		reviewService:       reviewService,
		notificationService: notificationService,
		exporter:            exporter,
		previewer:           previewer,
		logger:              logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// LoginRequest represents the session login payload
type LoginRequest struct {
	Role string `json:"role" binding:"required"`
}

// SessionResponse represents the session state in API responses
type SessionResponse struct {
	Role    string `json:"role"`
	Busy    bool   `json:"busy"`
	Offline bool   `json:"offline"`
}

// UpdateStatusRequest represents the status transition payload
type UpdateStatusRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Comment      string `json:"comment"`
}

// UpdateCommentRequest represents the comment update payload
type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

// ListReportsRequest represents query parameters for listing reports
type ListReportsRequest struct {
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
	Reporter string `form:"reporter"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// Login handles POST /api/session/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "role is required",
		})
		return
	}

	role := entity.Role(req.Role)
	if err := h.sessions.Login(role); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "unknown role: " + req.Role,
		})
		return
	}

	h.logger.Info("Session started", "role", req.Role)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSessionResponse(h.sessions.Snapshot()),
	})
}

// Logout handles POST /api/session/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.sessions.Logout()

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSessionResponse(h.sessions.Snapshot()),
	})
}

// CurrentSession handles GET /api/session
func (h *Handlers) CurrentSession(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSessionResponse(h.sessions.Snapshot()),
	})
}

// reportID validates the :id route parameter. A malformed identifier is
// answered with 400 before any service call.
func (h *Handlers) reportID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := utils.ValidateReportID(id); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid report id",
		})
		return "", false
	}
	return id, true
}

// ListReports handles GET /api/admin/reports
func (h *Handlers) ListReports(c *gin.Context) {
	req := bindListRequest(c)

	reports, err := h.reportService.ListReports(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list reports", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve reports",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSummaries(reports),
	})
}

// GetReviewerReport handles GET /api/admin/reports/:id
func (h *Handlers) GetReviewerReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	view, err := h.reportService.GetReviewerView(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to get report")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// UpdateStatus handles POST /api/admin/reports/:id/status
func (h *Handlers) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "target_status is required",
		})
		return
	}

	target := workflow.State(req.TargetStatus)
	if !target.IsValid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "unknown status: " + req.TargetStatus,
		})
		return
	}

	id, ok := h.reportID(c)
	if !ok {
		return
	}

	result, err := h.reviewService.Transition(c.Request.Context(), id, target, req.Comment)
	if err != nil {
		h.respondError(c, err, "status update failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"report":  result.Report,
			"message": result.Message,
		},
	})
}

// UpdateComment handles POST /api/admin/reports/:id/comment
func (h *Handlers) UpdateComment(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	id, ok := h.reportID(c)
	if !ok {
		return
	}

	report, err := h.reviewService.UpdateComment(c.Request.Context(), id, req.Comment)
	if err != nil {
		h.respondError(c, err, "comment update failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

// NotifyStakeholder handles POST /api/admin/reports/:id/notify
func (h *Handlers) NotifyStakeholder(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	if err := h.notificationService.NotifyStakeholder(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "notification failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"report_id": id},
	})
}

// ExportReport handles GET /api/admin/reports/:id/export
func (h *Handlers) ExportReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to get report")
		return
	}

	data, err := h.exporter.ExportBytes(report)
	if err != nil {
		h.logger.Error("Export failed", "report_id", report.ID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "export failed",
		})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.FileName(report))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListMyReports handles GET /api/foreman/reports
func (h *Handlers) ListMyReports(c *gin.Context) {
	req := bindListRequest(c)

	if req.Reporter == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "reporter is required",
		})
		return
	}

	reports, err := h.reportService.ListReportsByReporter(c.Request.Context(), req.Reporter, req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list reports", "reporter", req.Reporter, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve reports",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toSummaries(reports),
	})
}

// GetReporterReport handles GET /api/foreman/reports/:id
func (h *Handlers) GetReporterReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	view, err := h.reportService.GetReporterView(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to get report")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// GetReportPhoto handles GET /api/foreman/reports/:id/photo
func (h *Handlers) GetReportPhoto(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to get report")
		return
	}

	if !report.HasPhoto() {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "report has no photo",
		})
		return
	}

	path, err := h.previewer.Preview(report.PhotoFileName)
	if err != nil {
		h.logger.Error("Photo preview failed", "report_id", report.ID, "error", err)
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "photo not available",
		})
		return
	}

	c.File(path)
}

// ReportSummary is the list row for both role views
type ReportSummary struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	ReporterName string `json:"reporter_name"`
	SubmittedAt  string `json:"submitted_at"`
}

func toSummaries(reports []*entity.Report) []ReportSummary {
	summaries := make([]ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, ReportSummary{
			ID:           report.ID,
			ProjectID:    report.ProjectID,
			Date:         report.Date.Format("2006-01-02"),
			Status:       report.Status,
			ReporterName: report.ReporterName,
			SubmittedAt:  report.SubmittedAt.Format(time.RFC3339),
		})
	}
	return summaries
}

func toSessionResponse(s entity.Session) SessionResponse {
	return SessionResponse{
		Role:    string(s.Role),
		Busy:    s.Busy,
		Offline: s.Offline,
	}
}

func bindListRequest(c *gin.Context) ListReportsRequest {
	var req ListReportsRequest
	_ = c.ShouldBindQuery(&req)

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return req
}

// respondError maps application errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrReportNotFound):
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "report not found",
		})
	case errors.Is(err, workflow.ErrTransitionRejected),
		errors.Is(err, workflow.ErrInvalidState),
		errors.Is(err, service.ErrCommentLocked),
		errors.Is(err, service.ErrReportNotTerminal),
		errors.Is(err, session.ErrBusy):
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   fallback,
		})
	}
}
