package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// TranscriptHandler exposes computed result views.
type TranscriptHandler struct {
	students   *service.StudentService
	transcript *service.TranscriptService
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(students *service.StudentService, transcript *service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{students: students, transcript: transcript}
}

// Annual godoc
// @Summary Annual weighted transcript
// @Tags Transcript
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Annual(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.transcript.Compute(student), nil)
}

// Semester godoc
// @Summary Single-semester result view
// @Tags Transcript
// @Produce json
// @Param id path string true "Student ID"
// @Param semester path int true "Semester (1 or 2)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/results/{semester} [get]
func (h *TranscriptHandler) Semester(c *gin.Context) {
	semester, err := strconv.Atoi(c.Param("semester"))
	if err != nil || (semester != 1 && semester != 2) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2"))
		return
	}
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.transcript.SemesterView(student, semester), nil)
}
