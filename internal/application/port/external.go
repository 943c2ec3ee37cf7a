package port

import (
	"context"

	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
)

// GeneratedText is the output of the report-generation collaborator. The
// core treats both fields as opaque strings.
type GeneratedText struct {
	Summary        string
	FullReportText string
}

// ReportGenerator produces the derived summary and full narrative for a
// submitted report.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, report *entity.Report) (*GeneratedText, error)
}

// MessageSender delivers a text message to a stakeholder. Fire-and-forget
// with a success/failure acknowledgment only.
type MessageSender interface {
	SendMessage(ctx context.Context, recipient string, content string) error
}
