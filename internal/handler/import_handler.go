package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// ImportHandler exposes the CSV roster import endpoint.
type ImportHandler struct {
	importer  *service.ImportService
	metrics   *service.MetricsService
	dashboard *service.DashboardService
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(importer *service.ImportService, metrics *service.MetricsService, dashboard *service.DashboardService) *ImportHandler {
	return &ImportHandler{importer: importer, metrics: metrics, dashboard: dashboard}
}

// Import godoc
// @Summary Import roster CSV files
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "One or more CSV files"
// @Success 200 {object} response.Envelope
// @Router /students/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart payload"))
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no files uploaded"))
		return
	}

	files := make([]service.ImportFile, 0, len(uploads))
	for _, upload := range uploads {
		file := service.ImportFile{Name: upload.Filename}
		reader, err := upload.Open()
		if err != nil {
			file.ReadErr = err
			files = append(files, file)
			continue
		}
		content, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			file.ReadErr = err
		} else {
			file.Content = string(content)
		}
		files = append(files, file)
	}

	result, err := h.importer.ImportFiles(c.Request.Context(), files)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordImportOutcomes(result.Summary.Created, result.Summary.Updated, result.Summary.Skipped, result.Summary.Errors)
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, result, nil)
}
