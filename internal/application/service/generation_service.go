package service

import (
	"context"
	"time"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
)

// GenerationService backfills the derived summary and full narrative for
// reports the generation collaborator has not processed yet. Core treats
// the generated text as opaque.
type GenerationService interface {
	// GenerateMissing processes up to limit pending reports and returns how
	// many were filled in. Failures on individual reports are logged and
	// skipped so one bad report does not starve the rest.
	GenerateMissing(ctx context.Context, limit int) (int, error)
}

type generationServiceImpl struct {
	reports   port.ReportRepository
	generator port.ReportGenerator
	logger    Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(reports port.ReportRepository, generator port.ReportGenerator, logger Logger) GenerationService {
	return &generationServiceImpl{
		reports:   reports,
		generator: generator,
		logger:    logger,
	}
}

func (s *generationServiceImpl) GenerateMissing(ctx context.Context, limit int) (int, error) {
	pending, err := s.reports.ListPendingGeneration(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list reports pending generation", "error", err)
		return 0, err
	}

	generated := 0
	for _, report := range pending {
		text, err := s.generator.GenerateReport(ctx, report)
		if err != nil {
			s.logger.Error("Report generation failed", "error", err, "report_id", report.ID)
			continue
		}

		updated := report.Clone()
		if updated.Summary == "" {
			updated.Summary = text.Summary
		}
		if updated.FullReportText == "" {
			updated.FullReportText = text.FullReportText
		}
		updated.UpdatedAt = time.Now()

		if err := s.reports.Save(ctx, updated); err != nil {
			s.logger.Error("Failed to save generated text", "error", err, "report_id", report.ID)
			continue
		}

		s.logger.Info("Generated report text", "report_id", report.ID)
		generated++
	}

	return generated, nil
}
