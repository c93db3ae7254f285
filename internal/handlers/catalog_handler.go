package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthmart/internal/responses"
	"healthmart/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Tables handles GET /api/v1/catalog/:schema/tables
func (h *CatalogHandler) Tables(c *gin.Context) {
	schema := c.Param("schema")

	tables, err := h.catalogService.Tables(c.Request.Context(), schema)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to list tables")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"schema": schema,
		"tables": tables,
	}, "")
}

// Columns handles GET /api/v1/catalog/:schema/tables/:table/columns
func (h *CatalogHandler) Columns(c *gin.Context) {
	schema := c.Param("schema")
	table := c.Param("table")

	columns, err := h.catalogService.Columns(c.Request.Context(), schema, table)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to list columns")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"schema":  schema,
		"table":   table,
		"columns": columns,
	}, "")
}
