package ratelimit

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL is embedded so the limiter can self-bootstrap its table.
//
//go:embed schema.sql
var schemaSQL string

// Postgres backs the limiter with a shared table so the limit holds across
// processes and restarts.
type Postgres struct {
	pool   *pgxpool.Pool
	max    int
	window time.Duration
}

// NewPostgres creates a connection pool and fails fast if the database is
// unreachable.
func NewPostgres(ctx context.Context, dsn string, max int, window time.Duration) (*Postgres, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool, max: max, window: window}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping is used by the readiness endpoint.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Allow upserts the key's window row and reads back the new count, applying
// the same rule as Memory: reset to 1 on a fresh or expired window, otherwise
// increment and allow while the count is within the limit, never extending
// the window. A single statement keeps concurrent submissions from clobbering
// each other without an explicit transaction.
func (p *Postgres) Allow(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	reset := time.Now().Add(p.window)
	var count int
	err := p.pool.QueryRow(ctx, `
		INSERT INTO rate_limits (key, count, reset_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN rate_limits.reset_at <= now()
			             THEN 1 ELSE rate_limits.count + 1 END,
			reset_at = CASE WHEN rate_limits.reset_at <= now()
			                THEN excluded.reset_at ELSE rate_limits.reset_at END
		RETURNING count
	`, key, reset).Scan(&count)
	if err != nil {
		return false, err
	}
	return count <= p.max, nil
}
