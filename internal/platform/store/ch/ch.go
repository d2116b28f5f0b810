// Package ch owns the clickhouse connection
package ch

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"transcriba/internal/platform/logger"
)

// Config carries clickhouse connection settings
type Config struct {
	DSN         string
	DialTimeout time.Duration
}

// Client wraps a native clickhouse connection
type Client struct {
	conn driver.Conn
	log  logger.Logger
}

// New dials clickhouse from a DSN
func New(ctx context.Context, cfg Config, log logger.Logger) (*Client, error) {
	opts, err := clickhouse.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &Client{conn: conn, log: log.With().Str("component", "ch").Logger()}, nil
}

// Ping reports connection readiness
func (c *Client) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close releases the connection
func (c *Client) Close() error { return c.conn.Close() }

// Insert appends data into table via a native batch
// data may be a struct, a pointer to struct, or a slice of either
func (c *Client) Insert(ctx context.Context, table string, data any) error {
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare batch: %w", err)
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := appendStruct(batch, rv.Index(i)); err != nil {
				return err
			}
		}
	default:
		if err := appendStruct(batch, rv); err != nil {
			return err
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("ch: send batch: %w", err)
	}
	c.log.Trace().Str("table", table).Msg("batch sent")
	return nil
}

// Query runs a read query against clickhouse
func (c *Client) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func appendStruct(batch driver.Batch, v reflect.Value) error {
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}
	if err := batch.AppendStruct(v.Interface()); err != nil {
		return fmt.Errorf("ch: append: %w", err)
	}
	return nil
}
