package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// ExportHandler serves roster downloads and import templates.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Download roster CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /students/export [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	content, err := h.exports.ExportRoster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="school_data_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// Template godoc
// @Summary Download import template
// @Tags Export
// @Produce text/csv
// @Param kind query string true "Template kind: bio, sem1 or sem2"
// @Success 200 {string} string "CSV content"
// @Router /students/template [get]
func (h *ExportHandler) Template(c *gin.Context) {
	kind := models.TemplateKind(c.Query("kind"))
	content, err := h.exports.Template(kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="import_template_%s.csv"`, kind))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// ReportCard godoc
// @Summary Download printable result card
// @Tags Export
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param semester query int false "Semester (1, 2, or omit for annual)"
// @Success 200 {string} string "PDF content"
// @Router /students/{id}/report-card [get]
func (h *ExportHandler) ReportCard(c *gin.Context) {
	semester := 0
	if raw := c.Query("semester"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2"))
			return
		}
		semester = parsed
	}
	payload, err := h.exports.ReportCard(c.Request.Context(), c.Param("id"), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report_card.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
