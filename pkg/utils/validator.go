package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reportIDPattern = regexp.MustCompile(`^REP-\d+$`)
	controlChars    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateReportID checks the field app's report identifier format
// (REP-<epoch millis>). Identifiers are otherwise opaque and must
// round-trip exactly through routing.
func ValidateReportID(id string) error {
	if !reportIDPattern.MatchString(id) {
		return fmt.Errorf("invalid report id format: %s", id)
	}
	return nil
}

// ValidateProjectID checks the PJ-prefixed project reference.
func ValidateProjectID(projectID string) error {
	if !strings.HasPrefix(projectID, "PJ-") || len(projectID) < 4 {
		return fmt.Errorf("invalid project id: %s", projectID)
	}
	return nil
}

// SanitizeString removes control characters from free-text input.
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
