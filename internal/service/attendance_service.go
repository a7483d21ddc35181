package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
)

// AttendanceService records daily attendance per grade cohort.
type AttendanceService struct {
	repo   studentRepository
	logger *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo studentRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, logger: logger}
}

// MarkRequest carries statuses keyed by student id for one date.
type MarkRequest struct {
	Statuses map[string]models.AttendanceStatus `json:"statuses"`
}

// Sheet is one grade's attendance state for a single date.
type Sheet struct {
	Grade    models.Grade                       `json:"grade"`
	Date     string                             `json:"date"`
	Statuses map[string]models.AttendanceStatus `json:"statuses"`
	Marked   int                                `json:"marked"`
	Total    int                                `json:"total"`
}

// Mark records statuses for students of one grade on one date. Each
// student is persisted individually; a write failure aborts with the
// earlier students already applied.
func (s *AttendanceService) Mark(ctx context.Context, grade models.Grade, date string, req MarkRequest) (*Sheet, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	for _, status := range req.Statuses {
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "attendance status must be P, A or L")
		}
	}

	cohort, err := s.cohort(ctx, grade)
	if err != nil {
		return nil, err
	}

	for i := range cohort {
		status, ok := req.Statuses[cohort[i].ID]
		if !ok {
			continue
		}
		updated := cohort[i].Clone()
		updated.Attendance[date] = status
		if err := s.repo.Save(ctx, &updated); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
		}
		cohort[i] = updated
	}

	return buildSheet(cohort, grade, date), nil
}

// MarkAllPresent sets every student of the grade to present for the date.
func (s *AttendanceService) MarkAllPresent(ctx context.Context, grade models.Grade, date string) (*Sheet, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	cohort, err := s.cohort(ctx, grade)
	if err != nil {
		return nil, err
	}

	for i := range cohort {
		updated := cohort[i].Clone()
		updated.Attendance[date] = models.AttendancePresent
		if err := s.repo.Save(ctx, &updated); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
		}
		cohort[i] = updated
	}

	return buildSheet(cohort, grade, date), nil
}

// SheetFor returns the stored statuses for one grade and date.
func (s *AttendanceService) SheetFor(ctx context.Context, grade models.Grade, date string) (*Sheet, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	cohort, err := s.cohort(ctx, grade)
	if err != nil {
		return nil, err
	}
	return buildSheet(cohort, grade, date), nil
}

// Summary computes a student's presence figures. Unmarked dates are
// excluded from both the numerator and the denominator.
func (s *AttendanceService) Summary(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	summary := Summarize(student.Attendance)
	return &summary, nil
}

// Summarize counts marked days only.
func Summarize(attendance models.AttendanceMap) models.AttendanceSummary {
	var summary models.AttendanceSummary
	for _, status := range attendance {
		switch status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLeave:
			summary.Leave++
		default:
			continue
		}
		summary.MarkedDays++
	}
	if summary.MarkedDays > 0 {
		summary.Percent = float64(summary.Present) / float64(summary.MarkedDays) * 100
	}
	return summary
}

func (s *AttendanceService) cohort(ctx context.Context, grade models.Grade) ([]models.Student, error) {
	if !grade.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade")
	}
	students, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	cohort := make([]models.Student, 0)
	for _, student := range students {
		if student.Grade == grade {
			cohort = append(cohort, student)
		}
	}
	return cohort, nil
}

func buildSheet(cohort []models.Student, grade models.Grade, date string) *Sheet {
	sheet := &Sheet{
		Grade:    grade,
		Date:     date,
		Statuses: make(map[string]models.AttendanceStatus, len(cohort)),
		Total:    len(cohort),
	}
	for _, student := range cohort {
		if status, ok := student.Attendance[date]; ok {
			sheet.Statuses[student.ID] = status
			sheet.Marked++
		}
	}
	return sheet
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return nil
}
