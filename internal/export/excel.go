package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/geo"
)

const sheetName = "Daily Report"

// Exporter renders a field report as an Excel workbook for offline
// distribution to stakeholders.
type Exporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewExporter creates a new Excel exporter
func NewExporter(outputDir string, logger *zap.Logger) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		logger:    logger,
	}
}

// ExportBytes builds the workbook for a report and returns the encoded
// file contents.
func (e *Exporter) ExportBytes(report *entity.Report) ([]byte, error) {
	f, err := e.build(report)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFile builds the workbook and saves it under the output directory.
// Returns the path of the written file.
func (e *Exporter) ExportFile(report *entity.Report) (string, error) {
	f, err := e.build(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	outputPath := filepath.Join(e.outputDir, FileName(report))
	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	e.logger.Info("Report exported",
		zap.String("report_id", report.ID),
		zap.String("output_path", outputPath))

	return outputPath, nil
}

// FileName returns the workbook file name for a report
func FileName(report *entity.Report) string {
	return fmt.Sprintf("%s_%s.xlsx", report.ID, report.Date.Format("2006-01-02"))
}

func (e *Exporter) build(report *entity.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	e.setCell(f, "A1", "Daily Construction Field Report")
	e.setCell(f, "A2", "Report ID")
	e.setCell(f, "B2", report.ID)
	e.setCell(f, "A3", "Project")
	e.setCell(f, "B3", report.ProjectID)
	e.setCell(f, "A4", "Location")
	e.setCell(f, "B4", report.Location)
	if coords, ok := geo.Parse(report.Location); ok {
		e.setCell(f, "C4", coords.MapURL())
	}
	e.setCell(f, "A5", "Date")
	e.setCell(f, "B5", report.Date.Format("2006-01-02"))
	e.setCell(f, "A6", "Weather")
	e.setCell(f, "B6", report.Weather)
	e.setCell(f, "A7", "Manpower")
	e.setCell(f, "B7", report.Manpower)
	e.setCell(f, "A8", "Equipment Hours")
	e.setCell(f, "B8", report.EquipmentHours)
	e.setCell(f, "A9", "Materials Used")
	e.setCell(f, "B9", report.MaterialsUsed)
	e.setCell(f, "A10", "Progress Updates")
	e.setCell(f, "B10", report.ProgressUpdates)
	e.setCell(f, "A11", "Risks / Issues")
	e.setCell(f, "B11", report.RisksIssues)
	e.setCell(f, "A12", "Reported By")
	e.setCell(f, "B12", report.ReporterName)
	e.setCell(f, "A13", "Submitted At")
	e.setCell(f, "B13", report.SubmittedAt.Format(time.RFC3339))
	e.setCell(f, "A14", "Status")
	e.setCell(f, "B14", report.Status)

	e.setCell(f, "A16", "Summary")
	e.setCell(f, "B16", report.Summary)
	e.setCell(f, "A17", "Full Report")
	e.setCell(f, "B17", report.FullReportText)
	e.setCell(f, "A18", "Reviewer Comment")
	e.setCell(f, "B18", report.ReviewerComment)

	if report.HasPhoto() {
		e.setCell(f, "A20", "Photo")
		e.setCell(f, "B20", report.PhotoFileName)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 20)
	_ = f.SetColWidth(sheetName, "B", "B", 80)

	return f, nil
}

func (e *Exporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
