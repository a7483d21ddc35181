package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
)

type studentRepository interface {
	LoadAll(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// CreateStudentRequest holds payload for registering students. Grade
// and gender are restricted here the way the entry form restricts
// them; the CSV import path is deliberately more permissive.
type CreateStudentRequest struct {
	SerialNo       string `json:"serial_no" validate:"required"`
	RegistrationNo string `json:"registration_no"`
	Name           string `json:"name" validate:"required"`
	FatherName     string `json:"father_name" validate:"required"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	DOB            string `json:"dob"`
	FormB          string `json:"form_b"`
	Contact        string `json:"contact"`
	Grade          string `json:"grade" validate:"required,oneof=1 2 3 4 5"`
}

// UpdateStudentRequest holds payload for profile edits.
type UpdateStudentRequest struct {
	SerialNo       string `json:"serial_no" validate:"required"`
	RegistrationNo string `json:"registration_no"`
	Name           string `json:"name" validate:"required"`
	FatherName     string `json:"father_name" validate:"required"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	DOB            string `json:"dob"`
	FormB          string `json:"form_b"`
	Contact        string `json:"contact"`
	Grade          string `json:"grade" validate:"required,oneof=1 2 3 4 5"`
}

// SaveMarksRequest carries one semester's mark entry. Values arrive as
// draft strings so an empty field stays empty instead of becoming a
// zero; they are coerced to integers here, at the commit boundary.
type SaveMarksRequest struct {
	Marks   map[string]string `json:"marks"`
	Remarks string            `json:"remarks"`
}

// StudentService handles roster use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns the roster filtered by grade and search term. A load
// failure is logged and presented as an empty roster rather than an
// error, so a transient outage reads as "no students".
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load students", zap.Error(err))
		students = nil
	}

	matched := make([]models.Student, 0, len(students))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, student := range students {
		if filter.Grade != "" && student.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(student.Name), search) &&
			!strings.Contains(strings.ToLower(student.SerialNo), search) {
			continue
		}
		matched = append(matched, student)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}
	return matched[start:end], pagination, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student with empty results and attendance.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		SerialNo:       strings.TrimSpace(req.SerialNo),
		RegistrationNo: strings.TrimSpace(req.RegistrationNo),
		Name:           strings.TrimSpace(req.Name),
		FatherName:     strings.TrimSpace(req.FatherName),
		Gender:         req.Gender,
		DOB:            req.DOB,
		FormB:          req.FormB,
		Contact:        req.Contact,
		Grade:          models.Grade(req.Grade),
		Attendance:     models.AttendanceMap{},
	}
	if err := s.repo.Save(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update replaces a student's biographical fields.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	student := existing.Clone()
	student.SerialNo = strings.TrimSpace(req.SerialNo)
	student.RegistrationNo = strings.TrimSpace(req.RegistrationNo)
	student.Name = strings.TrimSpace(req.Name)
	student.FatherName = strings.TrimSpace(req.FatherName)
	student.Gender = req.Gender
	student.DOB = req.DOB
	student.FormB = req.FormB
	student.Contact = req.Contact
	student.Grade = models.Grade(req.Grade)
	if err := s.repo.Save(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return &student, nil
}

// Delete removes a student permanently. IDs are never reused.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// SaveMarks replaces one semester's result wholesale. Empty draft
// values drop the subject entry; non-numeric drafts are rejected.
func (s *StudentService) SaveMarks(ctx context.Context, id string, semester int, req SaveMarksRequest) (*models.Student, error) {
	if semester != 1 && semester != 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := models.NewSemesterResult(semester)
	result.Remarks = strings.TrimSpace(req.Remarks)
	for rawSubject, draft := range req.Marks {
		subject := models.Subject(rawSubject)
		if !subject.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown subject "+rawSubject)
		}
		draft = strings.TrimSpace(draft)
		if draft == "" {
			continue
		}
		mark, err := strconv.Atoi(draft)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid mark for "+rawSubject)
		}
		result.Marks[subject] = mark
	}

	student := existing.Clone()
	student.Results.SetSemester(semester, result)
	if err := s.repo.Save(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
	}
	return &student, nil
}
