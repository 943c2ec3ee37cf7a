package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/internal/domain/entity"
)

// Generator implements port.ReportGenerator using OpenAI chat completions.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewGenerator creates a new OpenAI report generator
func NewGenerator(apiKey, model string, temperature float32, maxTokens int, logger *zap.Logger) *Generator {
	return &Generator{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

type generatedReport struct {
	Summary        string `json:"summary"`
	FullReportText string `json:"full_report_text"`
}

// GenerateReport produces a summary and formatted full text for a submitted
// field report from its raw fields.
func (g *Generator) GenerateReport(ctx context.Context, report *entity.Report) (*port.GeneratedText, error) {
	g.logger.Debug("Generating report text",
		zap.String("report_id", report.ID),
		zap.String("project_id", report.ProjectID))

	prompt := g.buildReportPrompt(report)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a construction project documentation assistant. You turn raw daily field report data into a concise executive summary and a well-structured full report. Always respond with valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		g.logger.Error("OpenAI API call failed", zap.Error(err))
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var result generatedReport
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// Fallback: some models still wrap JSON in markdown fences.
		if jsonStr := extractJSON(content); jsonStr != "" {
			if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
				g.logger.Info("Extracted JSON from response", zap.String("report_id", report.ID))
				return &port.GeneratedText{
					Summary:        result.Summary,
					FullReportText: result.FullReportText,
				}, nil
			}
		}

		g.logger.Error("Failed to parse OpenAI response",
			zap.Error(err),
			zap.String("content", content))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Summary == "" && result.FullReportText == "" {
		return nil, fmt.Errorf("empty generation result for report %s", report.ID)
	}

	g.logger.Info("Report text generated",
		zap.String("report_id", report.ID),
		zap.Int("summary_len", len(result.Summary)))

	return &port.GeneratedText{
		Summary:        result.Summary,
		FullReportText: result.FullReportText,
	}, nil
}

// buildReportPrompt builds the generation prompt from the raw report fields
func (g *Generator) buildReportPrompt(report *entity.Report) string {
	return fmt.Sprintf(`Write documentation for this daily construction field report:

**Raw Field Data:**
- Project: %s
- Location: %s
- Date: %s
- Weather: %s
- Manpower: %s
- Equipment Hours: %s
- Materials Used: %s
- Progress Updates: %s
- Risks / Issues: %s
- Reported By: %s

**Required Response Format (JSON):**
{
  "summary": string,
  "full_report_text": string
}

Provide:
1. summary: A 2-3 sentence executive summary highlighting progress and any risks.
2. full_report_text: A complete, professionally worded daily report covering all sections above. Use plain paragraphs, no markdown headings.

Do not invent facts. If a field is empty, omit it from the narrative.`,
		report.ProjectID,
		report.Location,
		report.Date.Format("2006-01-02"),
		report.Weather,
		report.Manpower,
		report.EquipmentHours,
		report.MaterialsUsed,
		report.ProgressUpdates,
		report.RisksIssues,
		report.ReporterName,
	)
}

// extractJSON extracts the first balanced JSON object from a string
func extractJSON(content string) string {
	start := -1
	for i := 0; i < len(content); i++ {
		if content[i] == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	braceCount := 0
	inString := false
	escapeNext := false

	for i := start; i < len(content); i++ {
		char := content[i]

		if escapeNext {
			escapeNext = false
			continue
		}

		if char == '\\' {
			escapeNext = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if char == '{' {
			braceCount++
		} else if char == '}' {
			braceCount--
			if braceCount == 0 {
				return content[start : i+1]
			}
		}
	}

	return ""
}
