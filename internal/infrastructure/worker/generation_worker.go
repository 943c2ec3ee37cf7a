package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/service"
)

// GenerationWorkerConfig holds configuration for the generation worker
type GenerationWorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultGenerationWorkerConfig returns default configuration
func DefaultGenerationWorkerConfig() GenerationWorkerConfig {
	return GenerationWorkerConfig{
		PollInterval: 30 * time.Second,
		BatchSize:    10,
	}
}

// GenerationWorker polls for reports missing their generated summary and
// full text and backfills them through the generation service.
type GenerationWorker struct {
	config     GenerationWorkerConfig
	generation service.GenerationService
	logger     *zap.Logger

	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	isRunning      bool
	processedCount int
	lastError      error
}

// NewGenerationWorker creates a new generation worker
func NewGenerationWorker(config GenerationWorkerConfig, generation service.GenerationService, logger *zap.Logger) *GenerationWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultGenerationWorkerConfig().PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultGenerationWorkerConfig().BatchSize
	}

	return &GenerationWorker{
		config:     config,
		generation: generation,
		logger:     logger,
	}
}

// Start begins the worker polling loop
func (w *GenerationWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return fmt.Errorf("generation worker already running")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.isRunning = true
	w.mu.Unlock()

	w.logger.Info("GenerationWorker started",
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Int("batch_size", w.config.BatchSize))

	go w.pollLoop()

	return nil
}

// Stop gracefully terminates the worker
func (w *GenerationWorker) Stop() error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}

	w.isRunning = false
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	w.logger.Info("GenerationWorker stopped",
		zap.Int("processed_count", w.processedCount))

	return nil
}

// Name returns the worker name for identification
func (w *GenerationWorker) Name() string {
	return "GenerationWorker"
}

func (w *GenerationWorker) pollLoop() {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("Poll loop context cancelled")
			return

		case <-ticker.C:
			generated, err := w.generation.GenerateMissing(w.ctx, w.config.BatchSize)

			w.mu.Lock()
			w.processedCount += generated
			w.lastError = err
			w.mu.Unlock()

			if err != nil {
				w.logger.Error("Generation pass failed", zap.Error(err))
			} else if generated > 0 {
				w.logger.Info("Generation pass completed", zap.Int("generated", generated))
			}
		}
	}
}
