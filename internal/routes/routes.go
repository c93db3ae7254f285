package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthmart/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, migrationHandler *handlers.MigrationHandler, catalogHandler *handlers.CatalogHandler, datasetHandler *handlers.DatasetHandler) {
	api := router.Group("/api/v1")

	migrationRoutes := NewMigrationRoutes(migrationHandler)
	migrationRoutes.RegisterRoutes(api)

	catalogRoutes := NewCatalogRoutes(catalogHandler)
	catalogRoutes.RegisterRoutes(api)

	datasetRoutes := NewDatasetRoutes(datasetHandler)
	datasetRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
