// Package domain holds DTOs for the validation http and service contracts
package domain

import (
	"transcriba/internal/core/validate"
)

// DefaultLanguage is assumed when a request does not name one
const DefaultLanguage = "es-ES"

// ParticipantInput identifies an expected interview participant
type ParticipantInput struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=120" example:"Juan"`
	LastName  string `json:"last_name" validate:"required,min=1,max=120" example:"Pérez"`
}

// CheckInput is the payload of a validation request
// the CSV travels inline as text, files stay on the caller's side
type CheckInput struct {
	CSVContent  string            `json:"csv_content" validate:"required" example:"ID,Hablante,..."`
	Language    string            `json:"language,omitempty" validate:"omitempty,bcp47_language_tag" example:"es-ES"`
	Interviewee *ParticipantInput `json:"interviewee,omitempty"`
	Researcher  *ParticipantInput `json:"researcher,omitempty"`
}

// CheckResult wraps a validation report with its run identity
type CheckResult struct {
	RunID    string          `json:"run_id" example:"018f2a3c-1111-7aaa-bbbb-ccccdddd0000"`
	Language string          `json:"language" example:"es-ES"`
	Report   validate.Report `json:"report"`
}
