package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthmart/internal/models"
	"healthmart/internal/responses"
	"healthmart/internal/services"
)

type MigrationHandler struct {
	migrationService *services.MigrationService
}

func NewMigrationHandler(migrationService *services.MigrationService) *MigrationHandler {
	return &MigrationHandler{
		migrationService: migrationService,
	}
}

// Run handles POST /api/v1/migrations
func (h *MigrationHandler) Run(c *gin.Context) {
	var req models.MigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid migration request")
		return
	}

	report, err := h.migrationService.Migrate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid migration request")
		case errors.Is(err, services.ErrSchemaCreationFailed):
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to create destination schema")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Migration run failed")
		}
		return
	}

	if !report.Success() {
		responses.Partial(c, http.StatusOK, report, "Migration completed with failures")
		return
	}
	responses.Success(c, http.StatusOK, report, "Migration completed successfully")
}

// History handles GET /api/v1/migrations
func (h *MigrationHandler) History(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := h.migrationService.History(c.Request.Context(), limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to list migration runs")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"runs": runs}, "")
}
