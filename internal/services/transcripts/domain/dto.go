// Package domain holds DTOs for the transcripts http and service contracts
package domain

import (
	"transcriba/internal/core/validate"
	validationdomain "transcriba/internal/services/validation/domain"
)

// UploadInput is the payload of a transcript ingestion request
type UploadInput struct {
	Filename   string `json:"filename" validate:"required,min=1,max=255" example:"entrevista_01.csv"`
	Language   string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag" example:"es-ES"`
	CSVContent string `json:"csv_content" validate:"required"`

	Interviewee *validationdomain.ParticipantInput `json:"interviewee,omitempty"`
	Researcher  *validationdomain.ParticipantInput `json:"researcher,omitempty"`

	// Strict makes an invalid file fail the request instead of
	// returning the report with accepted=false
	Strict bool `json:"strict,omitempty"`
}

// UploadResult reports what happened to an uploaded transcript
type UploadResult struct {
	Accepted     bool            `json:"accepted"`
	TranscriptID string          `json:"transcript_id,omitempty" example:"018f2a3c-1111-7aaa-bbbb-ccccdddd0000"`
	SegmentCount int             `json:"segment_count"`
	RunID        string          `json:"run_id"`
	Language     string          `json:"language" example:"es-ES"`
	Report       validate.Report `json:"report"`
}

// SegmentsInput selects the segments of one stored transcript
type SegmentsInput struct {
	TranscriptID string `json:"transcript_id" validate:"required,uuid" example:"018f2a3c-1111-7aaa-bbbb-ccccdddd0000"`
}

// Segment is one stored transcript row
type Segment struct {
	SegmentID      string `json:"segment_id" example:"1"`
	Speaker        string `json:"speaker" example:"Juan Pérez"`
	Timestamp      string `json:"timestamp" example:"00:00:01"`
	Role           string `json:"role" example:"E"`
	OriginalText   string `json:"original_text"`
	NormalizedText string `json:"normalized_text"`
	Confidence     string `json:"confidence" example:"5"`
}

// ListInput pages stored transcripts
type ListInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// Transcript is the stored header of an ingested file
type Transcript struct {
	ID           string `json:"id" example:"018f2a3c-1111-7aaa-bbbb-ccccdddd0000"`
	Filename     string `json:"filename" example:"entrevista_01.csv"`
	Language     string `json:"language" example:"es-ES"`
	SegmentCount int    `json:"segment_count" example:"42"`
	CreatedAt    string `json:"created_at" example:"2026-01-12T10:30:00Z"`
}
