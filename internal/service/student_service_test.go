package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
)

type mockStudentRepo struct {
	students []models.Student
	loadErr  error
	saveErr  error
	saved    []models.Student
	deleted  []string
}

func (m *mockStudentRepo) LoadAll(ctx context.Context) ([]models.Student, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.Student, len(m.students))
	for i := range m.students {
		out[i] = m.students[i].Clone()
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			cp := m.students[i].Clone()
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Save(ctx context.Context, student *models.Student) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if student.ID == "" {
		student.ID = "generated-" + student.SerialNo
	}
	m.saved = append(m.saved, student.Clone())
	for i := range m.students {
		if m.students[i].ID == student.ID {
			m.students[i] = student.Clone()
			return nil
		}
	}
	m.students = append(m.students, student.Clone())
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			break
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

func TestStudentServiceListFiltersByGradeAndSearch(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "s1", SerialNo: "101", Name: "Ahmed Khan", Grade: models.Grade5},
		{ID: "s2", SerialNo: "102", Name: "Sara Bibi", Grade: models.Grade5},
		{ID: "s3", SerialNo: "103", Name: "Bilal Shah", Grade: models.Grade3},
	}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	students, pagination, err := service.List(context.Background(), models.StudentFilter{Grade: models.Grade5, Search: "ahmed"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s1", students[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestStudentServiceListSearchMatchesSerial(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: "s1", SerialNo: "101", Name: "Ahmed Khan", Grade: models.Grade5},
		{ID: "s2", SerialNo: "202", Name: "Sara Bibi", Grade: models.Grade5},
	}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	students, _, err := service.List(context.Background(), models.StudentFilter{Search: "202"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s2", students[0].ID)
}

func TestStudentServiceListLoadFailureIsEmptyRoster(t *testing.T) {
	repo := &mockStudentRepo{loadErr: errors.New("disk gone")}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	students, pagination, err := service.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.Equal(t, 0, pagination.TotalCount)
}

func TestStudentServiceListPaginates(t *testing.T) {
	repo := &mockStudentRepo{}
	for i := 0; i < 60; i++ {
		repo.students = append(repo.students, models.Student{
			ID: string(rune('a' + i%26)), SerialNo: "s", Name: "Student", Grade: models.Grade1,
		})
	}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	students, pagination, err := service.List(context.Background(), models.StudentFilter{Page: 2, PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, students, 10)
	assert.Equal(t, 60, pagination.TotalCount)
	assert.Equal(t, 2, pagination.Page)
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := service.Create(context.Background(), CreateStudentRequest{
		SerialNo:   "101",
		Name:       "Ahmed Khan",
		FatherName: "Bilal Khan",
		Gender:     "Male",
		Grade:      "5",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, models.Grade5, student.Grade)
	assert.NotNil(t, student.Attendance)
	assert.Len(t, repo.saved, 1)
}

func TestStudentServiceCreateRejectsBadGrade(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateStudentRequest{
		SerialNo:   "101",
		Name:       "Ahmed Khan",
		FatherName: "Bilal Khan",
		Gender:     "Male",
		Grade:      "7",
	})
	require.Error(t, err)
}

func TestStudentServiceCreateRejectsBadGender(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateStudentRequest{
		SerialNo:   "101",
		Name:       "Ahmed Khan",
		FatherName: "Bilal Khan",
		Gender:     "male",
		Grade:      "5",
	})
	require.Error(t, err)
}

func TestStudentServiceUpdatePreservesResults(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", SerialNo: "101", Name: "Ahmed Khan", FatherName: "Bilal Khan",
		Gender: "Male", Grade: models.Grade5,
		Results: models.StudentResults{Sem1: &models.SemesterResult{
			Semester: 1,
			Marks:    map[models.Subject]int{models.SubjectMath: 90},
		}},
	}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	updated, err := service.Update(context.Background(), "s1", UpdateStudentRequest{
		SerialNo:   "101",
		Name:       "Ahmed Ali Khan",
		FatherName: "Bilal Khan",
		Gender:     "Male",
		Grade:      "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Ali Khan", updated.Name)
	require.NotNil(t, updated.Results.Sem1)
	assert.Equal(t, 90, updated.Results.Sem1.Marks[models.SubjectMath])
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := service.Update(context.Background(), "missing", UpdateStudentRequest{
		SerialNo: "101", Name: "A", FatherName: "B", Gender: "Male", Grade: "1",
	})
	require.Error(t, err)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "s1"))
	assert.Equal(t, []string{"s1"}, repo.deleted)
	require.Error(t, service.Delete(context.Background(), "s1"))
}

func TestStudentServiceSaveMarksCoercesDrafts(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := service.SaveMarks(context.Background(), "s1", 1, SaveMarksRequest{
		Marks: map[string]string{
			"Math":    "88",
			"English": "  72 ",
			"Urdu":    "",
		},
		Remarks: "good progress",
	})
	require.NoError(t, err)
	result := student.Results.Sem1
	require.NotNil(t, result)
	assert.Equal(t, 88, result.Marks[models.SubjectMath])
	assert.Equal(t, 72, result.Marks[models.SubjectEnglish])
	_, hasUrdu := result.Marks[models.SubjectUrdu]
	assert.False(t, hasUrdu, "empty draft must drop the subject entry")
	assert.Equal(t, "good progress", result.Remarks)
}

func TestStudentServiceSaveMarksReplacesSemester(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", Name: "Ahmed",
		Results: models.StudentResults{Sem1: &models.SemesterResult{
			Semester: 1,
			Marks:    map[models.Subject]int{models.SubjectUrdu: 50, models.SubjectMath: 60},
		}},
	}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := service.SaveMarks(context.Background(), "s1", 1, SaveMarksRequest{
		Marks: map[string]string{"Math": "95"},
	})
	require.NoError(t, err)
	result := student.Results.Sem1
	require.NotNil(t, result)
	assert.Equal(t, 95, result.Marks[models.SubjectMath])
	_, hasUrdu := result.Marks[models.SubjectUrdu]
	assert.False(t, hasUrdu, "save replaces the whole semester")
}

func TestStudentServiceSaveMarksRejectsUnknownSubject(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := service.SaveMarks(context.Background(), "s1", 1, SaveMarksRequest{
		Marks: map[string]string{"Alchemy": "88"},
	})
	require.Error(t, err)
}

func TestStudentServiceSaveMarksRejectsNonNumeric(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	service := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := service.SaveMarks(context.Background(), "s1", 1, SaveMarksRequest{
		Marks: map[string]string{"Math": "ninety"},
	})
	require.Error(t, err)
}

func TestStudentServiceSaveMarksRejectsBadSemester(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := service.SaveMarks(context.Background(), "s1", 3, SaveMarksRequest{})
	require.Error(t, err)
}
