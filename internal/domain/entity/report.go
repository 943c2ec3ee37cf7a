package entity

import (
	"errors"
	"time"
)

// ErrReportNotFound is returned when a report id has no matching record.
// Lookups must return this instead of a nil record so callers can
// distinguish "no such report" from an empty result set.
var ErrReportNotFound = errors.New("report not found")

// Report is one field-submitted daily record for a construction project.
// ID and SubmittedAt are immutable once created; Status and ReviewerComment
// are the only fields the review flow mutates.
type Report struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`

	// Location is free text and may embed decimal-degree coordinates in the
	// form "Coordinates: 34.0522° N, 118.2437° W".
	Location string `json:"location"`

	Date time.Time `json:"date"`

	// Narrative fields, each optional. Views render absent values as "N/A".
	Weather         string `json:"weather,omitempty"`
	Manpower        string `json:"manpower,omitempty"`
	EquipmentHours  string `json:"equipment_hours,omitempty"`
	MaterialsUsed   string `json:"materials_used,omitempty"`
	ProgressUpdates string `json:"progress_updates,omitempty"`
	RisksIssues     string `json:"risks_issues,omitempty"`

	PhotoURI      string `json:"photo_uri,omitempty"`
	PhotoFileName string `json:"photo_file_name,omitempty"`

	Signature    string    `json:"signature"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Status       string    `json:"status"`
	ReporterName string    `json:"reporter_name"`

	// Summary and FullReportText are produced asynchronously by the
	// generation collaborator. The core treats both as opaque strings.
	Summary        string `json:"summary,omitempty"`
	FullReportText string `json:"full_report_text,omitempty"`

	// ReviewerComment is settable only through the review flow.
	ReviewerComment string `json:"reviewer_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPhoto reports whether the record carries a photo reference. A report
// with no photo never attempts to resolve a filename.
func (r *Report) HasPhoto() bool {
	return r.PhotoURI != ""
}

// NeedsGeneration reports whether the generation collaborator still owes
// this report its derived narrative text.
func (r *Report) NeedsGeneration() bool {
	return r.Summary == "" || r.FullReportText == ""
}

// Clone returns a deep copy. Services hand copies to views so that a failed
// save never leaks partial mutations into rendered state.
func (r *Report) Clone() *Report {
	c := *r
	return &c
}
