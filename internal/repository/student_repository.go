package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gpsbazar/school-records-api/internal/models"
)

// StudentRepository manages persistence for student records. Results
// and attendance travel as JSONB alongside the biographical columns.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = "id, serial_no, registration_no, name, father_name, gender, dob, form_b, contact, grade, results, attendance, created_at, updated_at"

// LoadAll returns every student ordered by serial number.
func (r *StudentRepository) LoadAll(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY serial_no, created_at", studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	for i := range students {
		ensureContainers(&students[i])
	}
	return students, nil
}

// FindByID fetches a single student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	ensureContainers(&student)
	return &student, nil
}

// Save upserts one student by id, assigning a fresh id when absent.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	ensureContainers(student)
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, serial_no, registration_no, name, father_name, gender, dob, form_b, contact, grade, results, attendance, created_at, updated_at)
        VALUES (:id, :serial_no, :registration_no, :name, :father_name, :gender, :dob, :form_b, :contact, :grade, :results, :attendance, :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE SET
            serial_no = EXCLUDED.serial_no,
            registration_no = EXCLUDED.registration_no,
            name = EXCLUDED.name,
            father_name = EXCLUDED.father_name,
            gender = EXCLUDED.gender,
            dob = EXCLUDED.dob,
            form_b = EXCLUDED.form_b,
            contact = EXCLUDED.contact,
            grade = EXCLUDED.grade,
            results = EXCLUDED.results,
            attendance = EXCLUDED.attendance,
            updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

// Delete removes a student permanently.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// ensureContainers keeps the invariant that a loaded student always
// carries non-nil attendance and marks maps.
func ensureContainers(s *models.Student) {
	if s.Attendance == nil {
		s.Attendance = models.AttendanceMap{}
	}
	if s.Results.Sem1 != nil && s.Results.Sem1.Marks == nil {
		s.Results.Sem1.Marks = make(map[models.Subject]int)
	}
	if s.Results.Sem2 != nil && s.Results.Sem2.Marks == nil {
		s.Results.Sem2.Marks = make(map[models.Subject]int)
	}
}
