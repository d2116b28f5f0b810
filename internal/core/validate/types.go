// Package validate runs the transcription validation pipeline and
// assembles the report the upload flow gates on
package validate

import (
	"strings"

	"transcriba/internal/core/transcript"
)

// Stable finding type tags
// callers key on these, messages are display text only
const (
	TypeParseError          = "parse_error"
	TypeEmptyFile           = "empty_file"
	TypeMissingColumns      = "missing_columns"
	TypeInvalidIDs          = "invalid_ids"
	TypeIDGaps              = "id_gaps"
	TypeDuplicateIDs        = "duplicate_ids"
	TypeInvalidConfidence   = "invalid_confidence"
	TypeLowConfidence       = "low_confidence"
	TypeMediumConfidence    = "medium_confidence"
	TypeMissingEndMark      = "missing_end_mark"
	TypeInconsistentSubject = "inconsistent_entrevistado"
	TypeInconsistentAuthor  = "inconsistent_investigador"
	TypeInternalError       = "internal_error"
)

// Finding is one reported issue with a stable machine tag
type Finding struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SegmentIssue bundles the diagnostics of a single row
type SegmentIssue struct {
	ID       string         `json:"id"`
	Row      transcript.Row `json:"row"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
}

// Stats aggregates distribution counts over all rows
type Stats struct {
	TotalSegments           int            `json:"total_segments"`
	RolesDistribution       map[string]int `json:"roles_distribution"`
	ConfidenceLevels        map[string]int `json:"confidence_levels"`
	AverageOriginalLength   int            `json:"average_original_length"`
	AverageNormalizedLength int            `json:"average_normalized_length"`
	MissingTimestamps       int            `json:"missing_timestamps"`
}

// Report is the full validation outcome
// Valid is false iff at least one blocking error accumulated
type Report struct {
	Valid    bool           `json:"is_valid"`
	Errors   []Finding      `json:"blocking_errors"`
	Warnings []Finding      `json:"warnings"`
	Stats    Stats          `json:"stats"`
	Segments []SegmentIssue `json:"segments_with_issues"`
}

// Participant identifies an expected interview participant
type Participant struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins the name components with a single space
func (p Participant) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
