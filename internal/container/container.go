// Package container wires the application together: database, repositories,
// external clients, services, workers and the HTTP server. Initialization is
// ordered by dependency and teardown runs in reverse.
package container

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/service"
	"github.com/EGUS74/SSS-Construction-Reports/internal/application/session"
	"github.com/EGUS74/SSS-Construction-Reports/internal/attachment"
	"github.com/EGUS74/SSS-Construction-Reports/internal/config"
	"github.com/EGUS74/SSS-Construction-Reports/internal/export"
	larkclient "github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/external/lark"
	"github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/external/openai"
	"github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/persistence/repository"
	"github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/worker"
	httpiface "github.com/EGUS74/SSS-Construction-Reports/internal/interfaces/http"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/database"
)

// Container manages all application dependencies and lifecycle.
type Container struct {
	config *config.Config
	logger *zap.Logger

	// Infrastructure
	db            *database.DB
	repositories  *RepositoryBundle
	larkClient    *larkclient.Client
	larkMessenger port.MessageSender
	generator     port.ReportGenerator
	exporter      *export.Exporter
	previewer     *attachment.Previewer

	// Application
	sessions *session.Manager
	services *ServiceBundle

	// Interfaces and workers
	httpServer *httpiface.Server
	workers    *worker.Manager

	// Lifecycle
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Report       port.ReportRepository
	Notification port.NotificationRepository
	Tx           port.TransactionManager
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Report       service.ReportService
	Review       service.ReviewService
	Notification service.NotificationService
	Generation   service.GenerationService
}

// New creates a new container from configuration. It does not initialize
// components; call Start to initialize.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
//  1. Database, migrations and repositories
//  2. External clients (Lark, OpenAI)
//  3. Application services
//  4. Export and attachment helpers
//  5. Workers
//  6. HTTP server (construction only; serve via Serve)
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")

	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized")

	c.initExternalClients()
	c.logger.Info("External clients initialized")

	c.initServices()
	c.logger.Info("Application services initialized")

	if err := c.initHelpers(); err != nil {
		return fmt.Errorf("failed to initialize export and attachments: %w", err)
	}

	c.initWorkers()
	if err := c.workers.StartAll(c.ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	c.logger.Info("Workers started")

	c.initHTTPServer()

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Serve runs the HTTP server until the context given to Start is cancelled.
func (c *Container) Serve() error {
	if !c.ready.Load() {
		return fmt.Errorf("container not started")
	}
	return c.httpServer.Start(c.ctx)
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.cancel != nil {
		c.cancel()
	}

	if c.httpServer != nil {
		if err := c.httpServer.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop http server: %w", err))
		}
	}

	if c.workers != nil {
		if err := c.workers.StopAll(); err != nil {
			errs = append(errs, fmt.Errorf("stop workers: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

func (c *Container) initDatabase() error {
	db, err := database.New(database.Config{
		Path:            c.config.Database.Path,
		MaxOpenConns:    c.config.Database.MaxOpenConns,
		MaxIdleConns:    c.config.Database.MaxIdleConns,
		ConnMaxLifetime: c.config.Database.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return err
	}
	c.db = db

	migrator := database.NewMigrator(db, c.logger)
	if err := migrator.RunMigrations(c.config.Database.MigrationsDir); err != nil {
		return err
	}

	c.repositories = &RepositoryBundle{
		Report:       repository.NewReportRepository(db.DB, c.logger),
		Notification: repository.NewNotificationRepository(db.DB, c.logger),
		Tx:           repository.NewTxManager(db),
	}

	return nil
}

func (c *Container) initExternalClients() {
	c.larkClient = larkclient.NewClient(larkclient.Config{
		AppID:     c.config.Lark.AppID,
		AppSecret: c.config.Lark.AppSecret,
	}, c.logger)
	c.larkMessenger = larkclient.NewMessenger(c.larkClient, c.logger)

	c.generator = openai.NewGenerator(
		c.config.OpenAI.APIKey,
		c.config.OpenAI.Model,
		c.config.OpenAI.Temperature,
		c.config.OpenAI.MaxTokens,
		c.logger,
	)
}

func (c *Container) initServices() {
	c.sessions = session.NewManager()

	serviceLogger := &zapLoggerAdapter{logger: c.logger}
	policy := service.ReviewPolicy{
		LockCommentsOnReject: c.config.Review.LockCommentsOnReject,
	}

	c.services = &ServiceBundle{
		Report: service.NewReportService(c.repositories.Report, policy, serviceLogger),
		Review: service.NewReviewService(c.repositories.Report, c.sessions, policy, serviceLogger),
		Notification: service.NewNotificationService(
			c.repositories.Report,
			c.repositories.Notification,
			c.larkMessenger,
			c.repositories.Tx,
			c.config.Notification.Recipient,
			serviceLogger,
		),
		Generation: service.NewGenerationService(c.repositories.Report, c.generator, serviceLogger),
	}
}

func (c *Container) initHelpers() error {
	for _, dir := range []string{
		c.config.Export.OutputDir,
		c.config.Attachment.Dir,
		c.config.Attachment.PreviewDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	c.exporter = export.NewExporter(c.config.Export.OutputDir, c.logger)
	c.previewer = attachment.NewPreviewer(c.config.Attachment.Dir, c.config.Attachment.PreviewDir, c.logger)
	return nil
}

func (c *Container) initWorkers() {
	c.workers = worker.NewManager(c.logger)
	c.workers.Register(worker.NewGenerationWorker(worker.GenerationWorkerConfig{
		PollInterval: c.config.OpenAI.PollInterval,
		BatchSize:    c.config.OpenAI.BatchSize,
	}, c.services.Generation, c.logger))
}

func (c *Container) initHTTPServer() {
	c.httpServer = httpiface.NewServer(
		httpiface.ServerConfig{
			Host:         c.config.Server.Host,
			Port:         c.config.Server.Port,
			ReadTimeout:  c.config.Server.ReadTimeout,
			WriteTimeout: c.config.Server.WriteTimeout,
		},
		c.sessions,
		c.services.Report,
		c.services.Review,
		c.services.Notification,
		c.exporter,
		c.previewer,
		&zapLoggerAdapter{logger: c.logger},
	)
}

// Sessions returns the process-wide session manager.
func (c *Container) Sessions() *session.Manager {
	return c.sessions
}

// Services returns the application service bundle.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Repositories returns the repository bundle.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// zapLoggerAdapter adapts zap.Logger to the keysAndValues logger interfaces
// used by the service and http packages.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
