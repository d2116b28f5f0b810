package store

import (
	"time"

	"transcriba/internal/platform/config"
)

// PGConfig carries postgres pool settings
type PGConfig struct {
	Enabled bool
	URL     string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdle     time.Duration

	// startup guardrails
	PingTimeout time.Duration
	PingRetries int
	PingBackoff time.Duration
}

// CHConfig carries clickhouse connection settings
type CHConfig struct {
	Enabled bool
	DSN     string

	DialTimeout time.Duration
}

// Config aggregates all backend configs
type Config struct {
	PG PGConfig
	CH CHConfig
}

// FromConfig builds a store Config from the service config namespace
func FromConfig(cfg config.Conf) Config {
	pg := cfg.Prefix("PG_")
	ch := cfg.Prefix("CH_")

	out := Config{
		PG: PGConfig{
			Enabled: pg.MayBool("ENABLE", false),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLE", false),
		},
	}

	if out.PG.Enabled {
		out.PG.URL = pg.MustString("URL")
		out.PG.MaxConns = int32(pg.MayInt("MAX_CONNS", 8))
		out.PG.MinConns = int32(pg.MayInt("MIN_CONNS", 0))
		out.PG.MaxConnLifetime = pg.MayDuration("MAX_CONN_LIFETIME", 30*time.Minute)
		out.PG.MaxConnIdle = pg.MayDuration("MAX_CONN_IDLE", 5*time.Minute)
		out.PG.PingTimeout = pg.MayDuration("PING_TIMEOUT", 5*time.Second)
		out.PG.PingRetries = pg.MayInt("PING_RETRIES", 3)
		out.PG.PingBackoff = pg.MayDuration("PING_BACKOFF", 500*time.Millisecond)
	}

	if out.CH.Enabled {
		out.CH.DSN = ch.MustString("DSN")
		out.CH.DialTimeout = ch.MayDuration("DIAL_TIMEOUT", 5*time.Second)
	}

	return out
}
