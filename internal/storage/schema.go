package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS trendpulse`,
	`CREATE TABLE IF NOT EXISTS trendpulse.scan_snapshots (
		id              BIGSERIAL PRIMARY KEY,
		scanned_at      TIMESTAMPTZ NOT NULL,
		trends          JSONB NOT NULL,
		reddit_tickers  INT NOT NULL DEFAULT 0,
		twitter_tickers INT NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scan_snapshots_scanned_at
		ON trendpulse.scan_snapshots (scanned_at DESC)`,
	`CREATE TABLE IF NOT EXISTS trendpulse.alert_log (
		id         BIGSERIAL PRIMARY KEY,
		ticker     TEXT NOT NULL,
		signal     TEXT NOT NULL,
		momentum   INT NOT NULL,
		sentiment  DOUBLE PRECISION NOT NULL,
		channels   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alert_log_created_at
		ON trendpulse.alert_log (created_at DESC)`,
}

// Migrate creates the schema and tables if they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
