package handlers

import (
	"net/http"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		respondServiceError(c, err, "GetStats: Error from dashboardService.GetStats", "Failed to compute dashboard stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		respondServiceError(c, err, "GetSummary: Error from dashboardService.GetSummary", "Failed to build dashboard summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
