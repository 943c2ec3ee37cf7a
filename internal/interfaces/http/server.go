// Package http provides the HTTP adapter for the application layer.
// It translates requests into application service calls and enforces the
// role gate on the reviewer and reporter route groups.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/service"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/session"
	"github.com/EGUS74/SSS-Construction-Reports/internal/attachment"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/export"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config              ServerConfig
	httpServer          *http.Server
	router              *gin.Engine
	sessions            *session.Manager
	reportService       service.ReportService
	reviewService       service.ReviewService
	notificationService service.NotificationService
	exporter            *export.Exporter
	previewer           *attachment.Previewer
	logger              Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	sessions *session.Manager,
	reportService service.ReportService,
	reviewService service.ReviewService,
	notificationService service.NotificationService,
	exporter *export.Exporter,
	previewer *attachment.Previewer,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:              config,
		router:              router,
		sessions:            sessions,
		reportService:       reportService,
		reviewService:       reviewService,
		notificationService: notificationService,
		exporter:            exporter,
		previewer:           previewer,
		logger:              logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// requireRole gates a route group on the session role. A mismatch is a
// navigation error, not an API error, so the user is sent back home.
func (s *Server) requireRole(required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.sessions.RequireRole(required); err != nil {
			s.logger.Info("Role gate redirect",
				"required", string(required),
				"current", string(s.sessions.Role()),
				"path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.sessions, s.reportService, s.reviewService, s.notificationService, s.exporter, s.previewer, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		// Session
		api.POST("/session/login", handlers.Login)
		api.POST("/session/logout", handlers.Logout)
		api.GET("/session", handlers.CurrentSession)

		// Reviewer console
		admin := api.Group("/admin", s.requireRole(entity.RoleReviewer))
		{
			admin.GET("/reports", handlers.ListReports)
			admin.GET("/reports/:id", handlers.GetReviewerReport)
			admin.POST("/reports/:id/status", handlers.UpdateStatus)
			admin.POST("/reports/:id/comment", handlers.UpdateComment)
			admin.POST("/reports/:id/notify", handlers.NotifyStakeholder)
			admin.GET("/reports/:id/export", handlers.ExportReport)
		}

		// Foreman view, read only
		foreman := api.Group("/foreman", s.requireRole(entity.RoleReporter))
		{
			foreman.GET("/reports", handlers.ListMyReports)
			foreman.GET("/reports/:id", handlers.GetReporterReport)
			foreman.GET("/reports/:id/photo", handlers.GetReportPhoto)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
