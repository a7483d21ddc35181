package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// InsightHandler exposes narrative text generation.
type InsightHandler struct {
	insights *service.InsightService
}

// NewInsightHandler constructs InsightHandler.
func NewInsightHandler(insights *service.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

// Generate godoc
// @Summary Generate report-card narrative
// @Tags Insight
// @Produce json
// @Param id path string true "Student ID"
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/insight [post]
func (h *InsightHandler) Generate(c *gin.Context) {
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2"))
		return
	}
	text, err := h.insights.GenerateReport(c.Request.Context(), c.Param("id"), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"insight": text}, nil)
}
