package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the snapshot and confirmation tables if they do not
// exist. Used by cmd/seed; production deployments run the same DDL through
// their migration pipeline.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				connector_id VARCHAR(255) NOT NULL,
				fingerprint VARCHAR(32) NOT NULL,
				node_count INTEGER NOT NULL,
				nodes JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, tables.Snapshots),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_connector_created_idx
			ON %s (connector_id, created_at DESC)`,
			tables.Snapshots, tables.Snapshots),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				connector_id VARCHAR(255) NOT NULL UNIQUE,
				snapshot_id UUID NOT NULL,
				snapshot_fingerprint VARCHAR(32) NOT NULL,
				selected_ids JSONB NOT NULL,
				document_total INTEGER NOT NULL,
				confirmed_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, tables.Confirmations),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables removes the picker tables. Guarded by cmd/seed; never called
// from the server.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Confirmations, tables.Snapshots} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	return nil
}
