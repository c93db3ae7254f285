package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"healthmart/internal/models"
)

type MigrationRunRepository struct {
	pool *pgxpool.Pool
}

func NewMigrationRunRepository(pool *pgxpool.Pool) *MigrationRunRepository {
	return &MigrationRunRepository{pool: pool}
}

// Insert records one finished migration run.
func (r *MigrationRunRepository) Insert(ctx context.Context, run *models.MigrationRun) error {
	report, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to encode migration report: %w", err)
	}

	query := `
		INSERT INTO migration_runs (id, destination_schema, source_schema, report, success, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		run.ID, run.Destination, run.Source, report, run.Success, run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert migration run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *MigrationRunRepository) List(ctx context.Context, limit int) ([]models.MigrationRun, error) {
	query := `
		SELECT id, destination_schema, source_schema, report, success, started_at, finished_at
		FROM migration_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.MigrationRun
	for rows.Next() {
		var run models.MigrationRun
		var report []byte
		if err := rows.Scan(&run.ID, &run.Destination, &run.Source, &report, &run.Success, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(report, &run.Report); err != nil {
			return nil, fmt.Errorf("failed to decode report for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
