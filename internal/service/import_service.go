package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/pkg/csvio"
)

// fieldAliases maps each canonical biographical field to the ordered
// normalized header names accepted for it. School staff export from
// arbitrary spreadsheet layouts, so exact-header matching would be
// brittle; the first alias present in a row wins.
var fieldAliases = map[string][]string{
	"serialNo":       {"serialno", "rollno", "roll", "srno", "id"},
	"registrationNo": {"registrationno", "regno", "registration", "admissionno", "reg"},
	"name":           {"name", "studentname", "fullname"},
	"fatherName":     {"fathername", "guardianname", "father"},
	"gender":         {"gender", "sex"},
	"grade":          {"grade", "class", "classlevel"},
	"dob":            {"dob", "dateofbirth", "birthdate"},
	"formB":          {"formb", "formbno", "cnic", "idnumber"},
	"contact":        {"contact", "contactno", "phone", "mobile"},
}

// markAliases returns the accepted headers for one subject's mark in
// one semester, e.g. sem1english, s1english, english1.
func markAliases(semester int, subject models.Subject) []string {
	sem := strconv.Itoa(semester)
	key := subject.Key()
	return []string{"sem" + sem + key, "s" + sem + key, key + sem}
}

// ImportFile is one uploaded roster file.
type ImportFile struct {
	Name    string
	Content string
	ReadErr error
}

// ImportResult bundles the batch counts with the re-fetched roster.
type ImportResult struct {
	Summary  models.ImportSummary `json:"summary"`
	Students []models.Student     `json:"students"`
}

// ImportService reconciles uploaded CSV rosters against the stored
// student collection.
type ImportService struct {
	repo   studentRepository
	logger *zap.Logger
}

// NewImportService constructs the import service.
func NewImportService(repo studentRepository, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{repo: repo, logger: logger}
}

// ImportFiles processes files sequentially, and rows within a file
// sequentially, persisting each row before the next begins. A file
// that cannot be read or parsed is counted and skipped; a row whose
// write fails is counted and the batch continues. There is no
// rollback: earlier rows stay durably applied.
func (s *ImportService) ImportFiles(ctx context.Context, files []ImportFile) (*ImportResult, error) {
	students, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("failed to load roster before import", zap.Error(err))
		students = nil
	}

	var summary models.ImportSummary
	for _, file := range files {
		if file.ReadErr != nil {
			s.logger.Warn("skipping unreadable import file",
				zap.String("file", file.Name), zap.Error(file.ReadErr))
			summary.Errors++
			continue
		}
		rows := csvio.Parse(file.Content)
		if len(rows) == 0 {
			s.logger.Warn("import file yielded no rows", zap.String("file", file.Name))
			summary.Errors++
			continue
		}
		fileSummary := s.reconcileRows(ctx, rows, &students)
		summary.Add(fileSummary)
	}

	// Re-fetch so the response reflects canonical post-import state,
	// including any out-of-band writes.
	final, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("failed to reload roster after import", zap.Error(err))
		final = students
	}

	return &ImportResult{Summary: summary, Students: final}, nil
}

func (s *ImportService) reconcileRows(ctx context.Context, rows []csvio.Row, students *[]models.Student) models.ImportSummary {
	var summary models.ImportSummary
	for _, row := range rows {
		serial := resolveField(row, "serialNo")
		name := resolveField(row, "name")
		if serial == "" && name == "" {
			summary.Skipped++
			continue
		}

		registration := resolveField(row, "registrationNo")
		existing := findByIdentity(*students, serial, registration)

		if existing != nil {
			updated := existing.Clone()
			applyRow(&updated, row)
			if err := s.repo.Save(ctx, &updated); err != nil {
				s.logger.Warn("failed to persist imported update",
					zap.String("serial_no", serial), zap.Error(err))
				summary.Errors++
				continue
			}
			*existing = updated
			summary.Updated++
			continue
		}

		student := models.Student{
			SerialNo:   serial,
			Grade:      models.DefaultGrade,
			Gender:     models.GenderMale,
			Attendance: models.AttendanceMap{},
		}
		applyRow(&student, row)
		if err := s.repo.Save(ctx, &student); err != nil {
			s.logger.Warn("failed to persist imported student",
				zap.String("serial_no", serial), zap.Error(err))
			summary.Errors++
			continue
		}
		*students = append(*students, student)
		summary.Created++
	}
	return summary
}

// findByIdentity matches a row to an existing student. A registration
// number takes priority when the row carries one; otherwise the serial
// number decides. Matching is exact equality on trimmed values, first
// match wins.
func findByIdentity(students []models.Student, serial, registration string) *models.Student {
	if registration != "" {
		for i := range students {
			if strings.TrimSpace(students[i].RegistrationNo) == registration {
				return &students[i]
			}
		}
	}
	if serial != "" {
		for i := range students {
			if strings.TrimSpace(students[i].SerialNo) == serial {
				return &students[i]
			}
		}
	}
	return nil
}

// applyRow merges resolved fields into the student. Only fields whose
// alias resolved to a non-empty value are written; absent columns
// leave the record untouched, so a marks-only upload never disturbs
// biographical data.
func applyRow(student *models.Student, row csvio.Row) {
	if v := resolveField(row, "serialNo"); v != "" {
		student.SerialNo = v
	}
	if v := resolveField(row, "registrationNo"); v != "" {
		student.RegistrationNo = v
	}
	if v := resolveField(row, "name"); v != "" {
		student.Name = v
	}
	if v := resolveField(row, "fatherName"); v != "" {
		student.FatherName = v
	}
	if v := resolveField(row, "gender"); v != "" {
		student.Gender = titleCase(v)
	}
	if v := resolveField(row, "grade"); v != "" {
		student.Grade = models.Grade(v)
	}
	if v := resolveField(row, "dob"); v != "" {
		student.DOB = v
	}
	if v := resolveField(row, "formB"); v != "" {
		student.FormB = v
	}
	if v := resolveField(row, "contact"); v != "" {
		student.Contact = v
	}
	applyMarks(student, row, 1)
	applyMarks(student, row, 2)
}

// applyMarks writes subject marks present in the row into the given
// semester, creating the result container on first use. Subjects
// outside the fixed set never reach here because only enumerated
// subjects are looked up. Non-numeric cells are ignored.
func applyMarks(student *models.Student, row csvio.Row, semester int) {
	for _, subject := range models.Subjects {
		raw := resolveAliases(row, markAliases(semester, subject))
		if raw == "" {
			continue
		}
		mark, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		result := student.Results.Semester(semester)
		if result == nil {
			result = models.NewSemesterResult(semester)
			student.Results.SetSemester(semester, result)
		}
		if result.Marks == nil {
			result.Marks = make(map[models.Subject]int)
		}
		result.Marks[subject] = mark
	}
}

func resolveField(row csvio.Row, field string) string {
	return resolveAliases(row, fieldAliases[field])
}

func resolveAliases(row csvio.Row, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// titleCase normalizes gender values: first letter upper, rest lower.
func titleCase(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}
