package store

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"transcriba/internal/platform/store/ch"
)

// chAdapter adapts the ch client to the Clickhouse seam
type chAdapter struct {
	client *ch.Client
}

var _ Clickhouse = (*chAdapter)(nil)

func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	return a.client.Insert(ctx, table, data)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.client.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rows}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error { return a.client.Ping(ctx) }

func (a *chAdapter) Close() error { return a.client.Close() }

type chRows struct{ rows driver.Rows }

func (r chRows) Next() bool             { return r.rows.Next() }
func (r chRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r chRows) Err() error             { return r.rows.Err() }
func (r chRows) Close()                 { _ = r.rows.Close() }
func (r chRows) Columns() []string      { return r.rows.Columns() }
