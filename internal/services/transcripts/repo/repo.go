// Package repo provides postgres access for stored transcripts
package repo

import (
	"context"
	"time"

	perr "transcriba/internal/platform/errors"

	"transcriba/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for transcripts
type Repo interface {
	InsertTranscript(ctx context.Context, t TranscriptRow) error
	InsertSegments(ctx context.Context, transcriptID string, segs []SegmentRow) error
	GetTranscript(ctx context.Context, id string) (TranscriptRow, error)
	ListTranscripts(ctx context.Context, limit int) ([]TranscriptRow, error)
	ListSegments(ctx context.Context, transcriptID string) ([]SegmentRow, error)
}

// TranscriptRow is the stored header of one ingested file
type TranscriptRow struct {
	ID           string
	Filename     string
	Language     string
	SegmentCount int
	CreatedAt    time.Time
}

// SegmentRow is one stored CSV row, position preserves file order
type SegmentRow struct {
	Position       int
	SegmentID      string
	Speaker        string
	Timestamp      string
	Role           string
	OriginalText   string
	NormalizedText string
	Confidence     string
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertTranscript(ctx context.Context, t TranscriptRow) error {
	const sql = `
insert into transcripts (id, filename, language_code, segment_count, created_at)
values ($1, $2, $3, $4, $5)
`
	_, err := r.q.Exec(ctx, sql, t.ID, t.Filename, t.Language, t.SegmentCount, t.CreatedAt)
	return perr.AttachFieldFromPg(perr.FromPostgres(err, "insert transcript"))
}

func (r *queries) InsertSegments(ctx context.Context, transcriptID string, segs []SegmentRow) error {
	const sql = `
insert into transcript_segments
(transcript_id, position, segment_id, speaker, ts, role, original_text, normalized_text, confidence)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	for _, s := range segs {
		_, err := r.q.Exec(ctx, sql,
			transcriptID, s.Position, s.SegmentID, s.Speaker, s.Timestamp,
			s.Role, s.OriginalText, s.NormalizedText, s.Confidence,
		)
		if err != nil {
			return perr.FromPostgresf(err, "insert segment %s", s.SegmentID)
		}
	}
	return nil
}

func (r *queries) GetTranscript(ctx context.Context, id string) (TranscriptRow, error) {
	const sql = `
select id::text, filename, language_code, segment_count, created_at
from transcripts
where id = $1
`
	var t TranscriptRow
	err := r.q.QueryRow(ctx, sql, id).Scan(&t.ID, &t.Filename, &t.Language, &t.SegmentCount, &t.CreatedAt)
	if err != nil {
		if perr.IsNoRows(err) {
			return TranscriptRow{}, perr.NotFoundf("transcript %s not found", id)
		}
		return TranscriptRow{}, perr.FromPostgres(err, "get transcript")
	}
	return t, nil
}

func (r *queries) ListTranscripts(ctx context.Context, limit int) ([]TranscriptRow, error) {
	const sql = `
select id::text, filename, language_code, segment_count, created_at
from transcripts
order by created_at desc
limit $1
`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list transcripts")
	}
	defer rows.Close()
	var out []TranscriptRow
	for rows.Next() {
		var t TranscriptRow
		if err := rows.Scan(&t.ID, &t.Filename, &t.Language, &t.SegmentCount, &t.CreatedAt); err != nil {
			return nil, perr.FromPostgres(err, "scan transcript")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *queries) ListSegments(ctx context.Context, transcriptID string) ([]SegmentRow, error) {
	const sql = `
select position, segment_id, speaker, ts, role, original_text, normalized_text, confidence
from transcript_segments
where transcript_id = $1
order by position asc
`
	rows, err := r.q.Query(ctx, sql, transcriptID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list segments")
	}
	defer rows.Close()
	var out []SegmentRow
	for rows.Next() {
		var s SegmentRow
		if err := rows.Scan(&s.Position, &s.SegmentID, &s.Speaker, &s.Timestamp,
			&s.Role, &s.OriginalText, &s.NormalizedText, &s.Confidence); err != nil {
			return nil, perr.FromPostgres(err, "scan segment")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
