// Command seed loads a small set of sample field reports into the database
// for local development and demos.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/config"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/workflow"
	"github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/persistence/repository"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/database"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := repository.NewReportRepository(db.DB, logger)
	ctx := context.Background()

	seeded := 0
	for _, report := range sampleReports() {
		if err := repo.Create(ctx, report); err != nil {
			logger.Warn("Skipping report", zap.String("report_id", report.ID), zap.Error(err))
			continue
		}
		seeded++
		logger.Info("Seeded report", zap.String("report_id", report.ID))
	}

	logger.Info("Seeding complete", zap.Int("seeded", seeded))
}

func sampleReports() []*entity.Report {
	return []*entity.Report{
		newReport(1678886400000, "PJ-1024", "J. Alvarez",
			"Downtown Tower, Sector 7G. Coordinates: 34.0522° N, 118.2437° W",
			"Sunny, 24C",
			"12 workers on site, 2 electricians",
			"Excavator: 6h, Tower crane: 4h",
			"Concrete 40/20: 12m3, Rebar 16mm: 2.4t",
			"Foundation pour completed for block A. Formwork started on block B.",
			"None reported."),
		newReport(1678972800000, "PJ-1024", "J. Alvarez",
			"Downtown Tower, Sector 7G. Coordinates: 34.0522° N, 118.2437° W",
			"Overcast, 19C",
			"14 workers on site",
			"Tower crane: 7h, Concrete pump: 3h",
			"Concrete 40/20: 18m3",
			"Block B formwork completed, pour scheduled for tomorrow.",
			"Concrete delivery delayed 2 hours by traffic."),
		newReport(1679059200000, "PJ-2048", "M. Okafor",
			"Riverside depot, north yard",
			"Light rain, 16C",
			"8 workers on site",
			"Forklift: 5h",
			"Steel beams HEB200: 14 units",
			"Steel frame erection 60% complete on warehouse bay 2.",
			"Wet surfaces slowed work; toolbox talk held on slip hazards."),
	}
}

func newReport(millis int64, projectID, reporter, location, weather, manpower, equipment, materials, progress, risks string) *entity.Report {
	submittedAt := time.UnixMilli(millis).UTC()
	now := time.Now().UTC()

	return &entity.Report{
		ID:              fmt.Sprintf("REP-%d", millis),
		ProjectID:       projectID,
		Location:        location,
		Date:            submittedAt.Truncate(24 * time.Hour),
		Weather:         weather,
		Manpower:        manpower,
		EquipmentHours:  equipment,
		MaterialsUsed:   materials,
		ProgressUpdates: progress,
		RisksIssues:     risks,
		Signature:       reporter,
		SubmittedAt:     submittedAt,
		Status:          string(workflow.StateSubmitted),
		ReporterName:    reporter,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
