package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// AttendanceHandler exposes daily attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Sheet godoc
// @Summary Get attendance sheet for a grade and date
// @Tags Attendance
// @Produce json
// @Param grade path string true "Grade"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/{grade}/{date} [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	sheet, err := h.attendance.SheetFor(c.Request.Context(), models.Grade(c.Param("grade")), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Mark godoc
// @Summary Record attendance statuses
// @Tags Attendance
// @Accept json
// @Produce json
// @Param grade path string true "Grade"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param payload body service.MarkRequest true "Statuses keyed by student id"
// @Success 200 {object} response.Envelope
// @Router /attendance/{grade}/{date} [put]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sheet, err := h.attendance.Mark(c.Request.Context(), models.Grade(c.Param("grade")), c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// MarkAllPresent godoc
// @Summary Mark a whole grade present
// @Tags Attendance
// @Produce json
// @Param grade path string true "Grade"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/{grade}/{date}/mark-all-present [post]
func (h *AttendanceHandler) MarkAllPresent(c *gin.Context) {
	sheet, err := h.attendance.MarkAllPresent(c.Request.Context(), models.Grade(c.Param("grade")), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Summary godoc
// @Summary Attendance summary for one student
// @Tags Attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summary, err := h.attendance.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
