package services

import (
	"context"
	"errors"

	"healthmart/internal/models"
)

// CatalogStore is the read-only catalog surface used for inspection.
type CatalogStore interface {
	ListTables(ctx context.Context, schema string) ([]string, error)
	ListColumns(ctx context.Context, schema, table string) ([]models.Column, error)
}

type CatalogService struct {
	catalog CatalogStore
}

func NewCatalogService(catalog CatalogStore) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Tables(ctx context.Context, schema string) ([]string, error) {
	if schema == "" {
		return nil, errors.New("schema name is required")
	}
	return s.catalog.ListTables(ctx, schema)
}

func (s *CatalogService) Columns(ctx context.Context, schema, table string) ([]models.Column, error) {
	if schema == "" || table == "" {
		return nil, errors.New("schema and table names are required")
	}
	return s.catalog.ListColumns(ctx, schema, table)
}
