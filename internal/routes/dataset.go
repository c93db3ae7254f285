package routes

import (
	"github.com/gin-gonic/gin"

	"healthmart/internal/handlers"
)

type DatasetRoutes struct {
	handler *handlers.DatasetHandler
}

func NewDatasetRoutes(handler *handlers.DatasetHandler) *DatasetRoutes {
	return &DatasetRoutes{handler: handler}
}

func (r *DatasetRoutes) RegisterRoutes(router *gin.RouterGroup) {
	datasets := router.Group("/datasets")
	{
		datasets.POST("/refresh", r.handler.Refresh)
	}
}
