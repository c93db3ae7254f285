package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthmart/internal/models"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// EnsureSchema creates the schema when it does not exist yet. Re-running
// against an existing schema is a no-op.
func (r *CatalogRepository) EnsureSchema(ctx context.Context, schema string) error {
	stmt := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize())
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", schema, err)
	}
	return nil
}

// TransferTable reassigns the owning schema of one table. The statement is
// atomic on the database side; data never moves.
func (r *CatalogRepository) TransferTable(ctx context.Context, source, destination, table string) error {
	stmt := fmt.Sprintf(
		"ALTER TABLE %s.%s SET SCHEMA %s",
		pgx.Identifier{source}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{destination}.Sanitize(),
	)
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to transfer %s.%s to %s: %w", source, table, destination, err)
	}
	return nil
}

// TableExists reports whether a base table is currently owned by the schema.
func (r *CatalogRepository) TableExists(ctx context.Context, schema, table string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = $1
			AND table_name = $2
			AND table_type = 'BASE TABLE'
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, schema, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListTables returns all base table names owned by the schema.
func (r *CatalogRepository) ListTables(ctx context.Context, schema string) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := r.pool.Query(ctx, query, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

// ListColumns returns the columns of one table in ordinal order.
func (r *CatalogRepository) ListColumns(ctx context.Context, schema, table string) ([]models.Column, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}
