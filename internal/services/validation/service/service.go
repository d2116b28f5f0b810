// Package service contains the validation workflow
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"transcriba/internal/core/validate"
	"transcriba/internal/platform/logger"
	"transcriba/internal/platform/store"
	rulesdomain "transcriba/internal/services/rules/domain"
	"transcriba/internal/services/validation/domain"
)

// Service defines the validation service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the validation service
type Svc struct {
	Provider rulesdomain.ProviderPort
	CH       store.Clickhouse
	Log      logger.Logger
}

// New constructs a validation service
// the clickhouse seam is optional, run logging degrades to a no-op
func New(provider rulesdomain.ProviderPort, ch store.Clickhouse, log logger.Logger) *Svc {
	if provider == nil {
		panic("validation.Service requires a rule provider")
	}
	return &Svc{Provider: provider, CH: ch, Log: log}
}

// Check validates the CSV content against the rule set for the language
// it always returns a report for well formed requests, the rule fetch and
// the run log never fail a call
func (s *Svc) Check(ctx context.Context, in domain.CheckInput) (domain.CheckResult, error) {
	language := in.Language
	if language == "" {
		language = domain.DefaultLanguage
	}

	set, err := s.Provider.Rules(ctx, language)
	if err != nil {
		// providers are expected to fall back internally, this is a last resort
		s.Log.Warn().Err(err).Str("language", language).Msg("rule provider failed")
	}

	opts := validate.Options{Rules: set}
	if in.Interviewee != nil {
		opts.Interviewee = &validate.Participant{
			FirstName: in.Interviewee.FirstName,
			LastName:  in.Interviewee.LastName,
		}
	}
	if in.Researcher != nil {
		opts.Researcher = &validate.Participant{
			FirstName: in.Researcher.FirstName,
			LastName:  in.Researcher.LastName,
		}
	}

	report := validate.Run(in.CSVContent, opts)

	out := domain.CheckResult{
		RunID:    uuid.NewString(),
		Language: language,
		Report:   report,
	}
	s.logRun(ctx, out)
	return out, nil
}

// runRecord is the analytics row a validation run leaves behind
type runRecord struct {
	RunID          string    `ch:"run_id"`
	Language       string    `ch:"language"`
	Valid          uint8     `ch:"valid"`
	BlockingErrors uint32    `ch:"blocking_errors"`
	Warnings       uint32    `ch:"warnings"`
	SegmentIssues  uint32    `ch:"segment_issues"`
	TotalSegments  uint32    `ch:"total_segments"`
	CreatedAt      time.Time `ch:"created_at"`
}

// logRun records the run in clickhouse, best effort only
func (s *Svc) logRun(ctx context.Context, res domain.CheckResult) {
	if s.CH == nil {
		return
	}
	rec := runRecord{
		RunID:          res.RunID,
		Language:       res.Language,
		Valid:          boolToUint8(res.Report.Valid),
		BlockingErrors: uint32(len(res.Report.Errors)),
		Warnings:       uint32(len(res.Report.Warnings)),
		SegmentIssues:  uint32(len(res.Report.Segments)),
		TotalSegments:  uint32(res.Report.Stats.TotalSegments),
		CreatedAt:      time.Now().UTC(),
	}

	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.CH.Insert(cctx, "validation_runs", rec); err != nil {
		s.Log.Warn().Err(err).Str("run_id", res.RunID).Msg("run log insert failed")
	}
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
