// Package service contains the transcript ingestion workflow
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"transcriba/internal/core/transcript"
	"transcriba/internal/modkit/repokit"
	perr "transcriba/internal/platform/errors"
	"transcriba/internal/platform/logger"
	"transcriba/internal/services/transcripts/domain"
	"transcriba/internal/services/transcripts/repo"
	validationdomain "transcriba/internal/services/validation/domain"
)

// Service defines the transcripts service contract
type Service interface {
	domain.ServicePort
}

// defaultListLimit caps unpaged transcript listings
const defaultListLimit = 50

// Svc implements the transcripts service
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	checker validationdomain.ServicePort
	log     logger.Logger
}

// New constructs a transcripts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], checker validationdomain.ServicePort, log logger.Logger) *Svc {
	if db == nil {
		panic("transcripts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("transcripts.Service requires a non nil Repo binder")
	}
	if checker == nil {
		panic("transcripts.Service requires a validation checker")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, checker: checker, log: log}
}

// Upload validates the CSV and, when the report is clean, stores the
// transcript header and all segments in one transaction
func (s *Svc) Upload(ctx context.Context, in domain.UploadInput) (domain.UploadResult, error) {
	check, err := s.checker.Check(ctx, validationdomain.CheckInput{
		CSVContent:  in.CSVContent,
		Language:    in.Language,
		Interviewee: in.Interviewee,
		Researcher:  in.Researcher,
	})
	if err != nil {
		return domain.UploadResult{}, err
	}

	out := domain.UploadResult{
		RunID:    check.RunID,
		Language: check.Language,
		Report:   check.Report,
	}

	if !check.Report.Valid {
		if in.Strict {
			return domain.UploadResult{}, perr.Rejectedf(
				"el archivo %q no supera la validación", in.Filename)
		}
		return out, nil
	}

	rows, _, _ := transcript.Parse(in.CSVContent)
	segs := make([]repo.SegmentRow, 0, len(rows))
	for i, r := range rows {
		segs = append(segs, repo.SegmentRow{
			Position:       i,
			SegmentID:      r.ID,
			Speaker:        r.Speaker,
			Timestamp:      r.Timestamp,
			Role:           r.Role,
			OriginalText:   r.OriginalText,
			NormalizedText: r.NormalizedText,
			Confidence:     r.Confidence,
		})
	}

	t := repo.TranscriptRow{
		ID:           uuid.NewString(),
		Filename:     in.Filename,
		Language:     check.Language,
		SegmentCount: len(segs),
		CreatedAt:    time.Now().UTC(),
	}

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.InsertTranscript(ctx, t); err != nil {
			return err
		}
		return r.InsertSegments(ctx, t.ID, segs)
	})
	if err != nil {
		return domain.UploadResult{}, err
	}

	s.log.Info().
		Str("transcript_id", t.ID).
		Str("filename", t.Filename).
		Int("segments", len(segs)).
		Msg("transcript stored")

	out.Accepted = true
	out.TranscriptID = t.ID
	out.SegmentCount = len(segs)
	return out, nil
}

// Segments returns the stored rows of one transcript in file order
func (s *Svc) Segments(ctx context.Context, in domain.SegmentsInput) ([]domain.Segment, error) {
	if _, err := s.Repo.GetTranscript(ctx, in.TranscriptID); err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListSegments(ctx, in.TranscriptID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Segment, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Segment{
			SegmentID:      r.SegmentID,
			Speaker:        r.Speaker,
			Timestamp:      r.Timestamp,
			Role:           r.Role,
			OriginalText:   r.OriginalText,
			NormalizedText: r.NormalizedText,
			Confidence:     r.Confidence,
		})
	}
	return out, nil
}

// List returns recently stored transcripts
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Transcript, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.Repo.ListTranscripts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transcript, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Transcript{
			ID:           r.ID,
			Filename:     r.Filename,
			Language:     r.Language,
			SegmentCount: r.SegmentCount,
			CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
