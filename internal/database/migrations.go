package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies the warehouse's own bookkeeping DDL. Every statement
// is written to be safe to re-run.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		createMigrationRunsTable,
		createMigrationRunsIndexes,
	}

	for i, migration := range migrations {
		log.Printf("Running migration %d/%d", i+1, len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

const createMigrationRunsTable = `
CREATE TABLE IF NOT EXISTS migration_runs (
  id UUID PRIMARY KEY,
  destination_schema TEXT NOT NULL,
  source_schema TEXT NOT NULL,
  report JSONB NOT NULL,
  success BOOLEAN NOT NULL,
  started_at TIMESTAMP WITH TIME ZONE NOT NULL,
  finished_at TIMESTAMP WITH TIME ZONE NOT NULL
);
`

const createMigrationRunsIndexes = `
CREATE INDEX IF NOT EXISTS idx_migration_runs_destination ON migration_runs(destination_schema);
CREATE INDEX IF NOT EXISTS idx_migration_runs_started_at ON migration_runs(started_at);
`
