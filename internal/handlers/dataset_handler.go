package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthmart/internal/models"
	"healthmart/internal/responses"
	"healthmart/internal/services"
)

type DatasetHandler struct {
	datasetService *services.DatasetService
	manifest       []models.DatasetSpec
}

func NewDatasetHandler(datasetService *services.DatasetService, manifest []models.DatasetSpec) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		manifest:       manifest,
	}
}

// Refresh handles POST /api/v1/datasets/refresh
func (h *DatasetHandler) Refresh(c *gin.Context) {
	if len(h.manifest) == 0 {
		responses.Fail(c, http.StatusServiceUnavailable, nil, "No dataset manifest configured; set DATA_DIR")
		return
	}

	report := h.datasetService.Refresh(c.Request.Context(), h.manifest)
	if !report.Success() {
		responses.Partial(c, http.StatusOK, report, "Refresh completed with failures")
		return
	}
	responses.Success(c, http.StatusOK, report, "All datasets loaded")
}
