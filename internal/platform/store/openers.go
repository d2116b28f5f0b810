package store

import (
	"context"
	"fmt"
	"time"

	"transcriba/internal/platform/store/ch"
	"transcriba/internal/platform/store/pg"
)

// openPG builds the pool and verifies liveness with bounded retries
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.New(ctx, pg.Config{
		URL:             cfg.PG.URL,
		MaxConns:        cfg.PG.MaxConns,
		MinConns:        cfg.PG.MinConns,
		MaxConnLifetime: cfg.PG.MaxConnLifetime,
		MaxConnIdle:     cfg.PG.MaxConnIdle,
	}, s.Log)
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.PingRetries
	if retries < 1 {
		retries = 1
	}
	backoff := cfg.PG.PingBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var pingErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, cfg.PG.PingTimeout)
		pingErr = pool.Ping(pctx)
		cancel()
		if pingErr == nil {
			break
		}
		s.Log.Warn().Err(pingErr).Int("attempt", attempt).Msg("pg ping failed")
		if attempt < retries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				pool.Close()
				return nil, ctx.Err()
			}
		}
	}
	if pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping after %d attempts: %w", retries, pingErr)
	}

	return &pgAdapter{pool: pool}, nil
}

// openCH dials clickhouse and wraps it in the store seam
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	client, err := ch.New(ctx, ch.Config{
		DSN:         cfg.CH.DSN,
		DialTimeout: cfg.CH.DialTimeout,
	}, s.Log)
	if err != nil {
		return nil, err
	}
	return &chAdapter{client: client}, nil
}
