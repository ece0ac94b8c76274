package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS classification_audit (
	id          UUID PRIMARY KEY,
	message_sha TEXT NOT NULL,
	label       TEXT NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	reason      TEXT NOT NULL,
	rule        TEXT NOT NULL DEFAULT '',
	cached      BOOLEAN NOT NULL DEFAULT FALSE,
	latency_ms  DOUBLE PRECISION NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS classification_audit_created_at_idx
	ON classification_audit (created_at);
`

const insertSQL = `
INSERT INTO classification_audit
	(id, message_sha, label, confidence, reason, rule, cached, latency_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// PostgresSink writes audit records to a classification_audit table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects, verifies the connection, and ensures the audit
// schema exists.
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to audit database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure audit schema: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

func (s *PostgresSink) Write(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx, insertSQL,
		rec.ID, rec.MessageSHA, rec.Label, rec.Confidence,
		rec.Reason, rec.Rule, rec.Cached, rec.LatencyMs, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (s *PostgresSink) Close() {
	s.pool.Close()
}
