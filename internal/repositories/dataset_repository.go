package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DatasetRepository struct {
	pool *pgxpool.Pool
}

func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepository {
	return &DatasetRepository{pool: pool}
}

// ReplaceTable drops and recreates the table with one TEXT column per header
// field, then bulk-loads the rows. Matches replace semantics: a stale table
// from a previous refresh never survives.
func (r *DatasetRepository) ReplaceTable(ctx context.Context, schema, table string, columns []string, rows [][]string) error {
	if len(columns) == 0 {
		return fmt.Errorf("table %s has no columns", table)
	}

	qualified := pgx.Identifier{schema, table}.Sanitize()

	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", qualified)
	if _, err := r.pool.Exec(ctx, drop); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	create := fmt.Sprintf("CREATE TABLE %s (", qualified)
	for i, col := range columns {
		if i > 0 {
			create += ", "
		}
		create += pgx.Identifier{col}.Sanitize() + " TEXT"
	}
	create += ")"
	if _, err := r.pool.Exec(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	if len(rows) == 0 {
		return nil
	}

	records := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		record := make([]interface{}, len(columns))
		for i := range columns {
			if i < len(row) {
				record[i] = row[i]
			}
		}
		records = append(records, record)
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{schema, table},
		columns,
		pgx.CopyFromRows(records),
	)
	if err != nil {
		return fmt.Errorf("failed to copy rows into %s: %w", table, err)
	}

	return nil
}
