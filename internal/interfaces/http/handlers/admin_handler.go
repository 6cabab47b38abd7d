package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/interfaces/http/middleware"
	"motorhub.backend/internal/interfaces/http/response"
	"motorhub.backend/internal/usecases"
)

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	statsUsecase *usecases.StatsUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(statsUsecase *usecases.StatsUsecase) *AdminHandler {
	return &AdminHandler{statsUsecase: statsUsecase}
}

// GetStats returns dashboard counters recomputed from the store
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUsecase.Dashboard(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
