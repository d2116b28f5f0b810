package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"transcriba/internal/platform/logger"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	begin time.Time
}

// queryTracer logs query timings at trace level and slow queries at warn
type queryTracer struct {
	log logger.Logger
}

const slowQuery = 250 * time.Millisecond

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, begin: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	took := time.Since(st.begin)

	if data.Err != nil {
		t.log.Error().Err(data.Err).Str("sql", st.sql).Dur("took", took).Msg("query failed")
		return
	}
	if took >= slowQuery {
		t.log.Warn().Str("sql", st.sql).Dur("took", took).Msg("slow query")
		return
	}
	t.log.Trace().Str("sql", st.sql).Dur("took", took).Msg("query")
}
