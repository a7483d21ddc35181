package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/service"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// DashboardHandler exposes roster statistics.
type DashboardHandler struct {
	dashboard *service.DashboardService
	insights  *service.InsightService
	session   string
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, insights *service.InsightService, sessionYear string) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, insights: insights, session: sessionYear}
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, cacheHit, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// Summary godoc
// @Summary Narrative school summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	stats, _, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	text := h.insights.SchoolSummary(c.Request.Context(), *stats, h.session)
	response.JSON(c, http.StatusOK, gin.H{"summary": text}, nil)
}
