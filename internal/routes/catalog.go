package routes

import (
	"github.com/gin-gonic/gin"

	"healthmart/internal/handlers"
)

type CatalogRoutes struct {
	handler *handlers.CatalogHandler
}

func NewCatalogRoutes(handler *handlers.CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

func (r *CatalogRoutes) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog/:schema")
	{
		catalog.GET("/tables", r.handler.Tables)
		catalog.GET("/tables/:table/columns", r.handler.Columns)
	}
}
