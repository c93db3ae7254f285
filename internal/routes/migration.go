package routes

import (
	"github.com/gin-gonic/gin"

	"healthmart/internal/handlers"
)

type MigrationRoutes struct {
	handler *handlers.MigrationHandler
}

func NewMigrationRoutes(handler *handlers.MigrationHandler) *MigrationRoutes {
	return &MigrationRoutes{handler: handler}
}

func (r *MigrationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	migrations := router.Group("/migrations")
	{
		migrations.POST("", r.handler.Run)
		migrations.GET("", r.handler.History)
	}
}
