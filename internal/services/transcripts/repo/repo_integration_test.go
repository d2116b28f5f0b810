//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	perr "transcriba/internal/platform/errors"
	"transcriba/internal/platform/store"

	"transcriba/internal/modkit/repokit"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// applied one statement at a time, pgx extended protocol rejects batches
var schemaSQL = []string{
	`create table transcripts (
		id            uuid primary key,
		filename      text not null,
		language_code text not null,
		segment_count int  not null,
		created_at    timestamptz not null
	)`,
	`create table transcript_segments (
		transcript_id   uuid not null references transcripts (id),
		position        int  not null,
		segment_id      text not null,
		speaker         text not null,
		ts              text not null,
		role            text not null,
		original_text   text not null,
		normalized_text text not null,
		confidence      text not null,
		primary key (transcript_id, position)
	)`,
}

// newTestRepo boots a disposable Postgres, applies the schema and binds
// the repo to the live pool
func newTestRepo(t *testing.T) (Repo, repokit.TxRunner, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}
	stop := func() {
		_ = c.Terminate(context.Background())
		cancel()
	}

	host, err := c.Host(ctx)
	if err != nil {
		stop()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		stop()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port()),
			MaxConns:    2,
			PingTimeout: 10 * time.Second,
			PingRetries: 3,
			PingBackoff: time.Second,
		},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		stop()
		t.Fatalf("store.Open failed: %v", err)
	}

	for _, stmt := range schemaSQL {
		if _, err := st.PG.Exec(ctx, stmt); err != nil {
			stop()
			t.Fatalf("apply schema: %v", err)
		}
	}

	return NewPG().Bind(st.PG), st.PG, func() {
		_ = st.Close(context.Background())
		stop()
	}
}

func TestRepo_Integration_RoundTrip(t *testing.T) {
	r, _, cleanup := newTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	id := uuid.NewString()
	header := TranscriptRow{
		ID:           id,
		Filename:     "entrevista_01.csv",
		Language:     "es-ES",
		SegmentCount: 2,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := r.InsertTranscript(ctx, header); err != nil {
		t.Fatalf("insert transcript: %v", err)
	}

	segs := []SegmentRow{
		{Position: 0, SegmentID: "1", Speaker: "María Pérez", Timestamp: "00:00:01", Role: "E", OriginalText: "sí", NormalizedText: "Afirmación", Confidence: "4"},
		{Position: 1, SegmentID: "2", Speaker: "Sistema", Timestamp: "--", Role: "S", OriginalText: "Fin.", NormalizedText: "Fin.", Confidence: "5"},
	}
	if err := r.InsertSegments(ctx, id, segs); err != nil {
		t.Fatalf("insert segments: %v", err)
	}

	got, err := r.GetTranscript(ctx, id)
	if err != nil {
		t.Fatalf("get transcript: %v", err)
	}
	if got.Filename != header.Filename || got.Language != header.Language || got.SegmentCount != 2 {
		t.Fatalf("header mismatch: %+v", got)
	}

	list, err := r.ListTranscripts(ctx, 10)
	if err != nil {
		t.Fatalf("list transcripts: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("list mismatch: %+v", list)
	}

	back, err := r.ListSegments(ctx, id)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("segment count mismatch: %d", len(back))
	}
	if back[0].SegmentID != "1" || back[1].SegmentID != "2" {
		t.Fatalf("segment order mismatch: %+v", back)
	}
	if back[1].Timestamp != "--" || back[1].Role != "S" {
		t.Fatalf("segment fields mismatch: %+v", back[1])
	}
}

func TestRepo_Integration_NotFound(t *testing.T) {
	r, _, cleanup := newTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := r.GetTranscript(ctx, uuid.NewString())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepo_Integration_TxInsertIsAtomic(t *testing.T) {
	r, tx, cleanup := newTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := uuid.NewString()
	failed := fmt.Errorf("boom")
	err := repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		bound := NewPG().Bind(q)
		if err := bound.InsertTranscript(ctx, TranscriptRow{
			ID: id, Filename: "x.csv", Language: "es-ES", SegmentCount: 0, CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return failed
	})
	if err == nil {
		t.Fatalf("expected tx error")
	}

	if _, err := r.GetTranscript(ctx, id); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected rollback, got %v", err)
	}
}
