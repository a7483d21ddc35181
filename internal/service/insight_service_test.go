package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
)

type mockGenerator struct {
	configured bool
	text       string
	err        error
	prompts    []string
}

func (m *mockGenerator) Configured() bool { return m.configured }

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

func studentWithSem1() models.Student {
	return models.Student{
		ID: "s1", Name: "Ahmed Khan", FatherName: "Bilal Khan", Grade: models.Grade5,
		Results: models.StudentResults{Sem1: &models.SemesterResult{
			Semester: 1,
			Marks:    map[models.Subject]int{models.SubjectMath: 88, models.SubjectEnglish: 72},
		}},
	}
}

func TestGenerateReportStoresNarrative(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{studentWithSem1()}}
	gen := &mockGenerator{configured: true, text: "  A diligent student.  "}
	service := NewInsightService(repo, gen, "GPS Bazar No 1", zap.NewNop())

	text, err := service.GenerateReport(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, "A diligent student.", text)

	stored, err := repo.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "A diligent student.", stored.Results.Sem1.GeneratedInsight)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Ahmed Khan")
	assert.Contains(t, gen.prompts[0], "Math: 88")
	assert.Contains(t, gen.prompts[0], "GPS Bazar No 1")
}

func TestGenerateReportFallsBackWhenUnconfigured(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{studentWithSem1()}}
	service := NewInsightService(repo, &mockGenerator{configured: false}, "GPS Bazar No 1", zap.NewNop())

	text, err := service.GenerateReport(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, FallbackInsight, text)

	stored, err := repo.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, FallbackInsight, stored.Results.Sem1.GeneratedInsight, "fallback text is stored too")
}

func TestGenerateReportFallsBackOnGatewayError(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{studentWithSem1()}}
	gen := &mockGenerator{configured: true, err: errors.New("timeout")}
	service := NewInsightService(repo, gen, "GPS Bazar No 1", zap.NewNop())

	text, err := service.GenerateReport(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, FallbackInsight, text)
}

func TestGenerateReportFallsBackOnBlankText(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{studentWithSem1()}}
	gen := &mockGenerator{configured: true, text: "   "}
	service := NewInsightService(repo, gen, "GPS Bazar No 1", zap.NewNop())

	text, err := service.GenerateReport(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, FallbackInsight, text)
}

func TestGenerateReportRequiresResult(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{studentWithSem1()}}
	service := NewInsightService(repo, &mockGenerator{configured: true, text: "x"}, "GPS Bazar No 1", zap.NewNop())

	_, err := service.GenerateReport(context.Background(), "s1", 2)
	require.Error(t, err)
}

func TestGenerateReportUnknownStudent(t *testing.T) {
	service := NewInsightService(&mockStudentRepo{}, &mockGenerator{}, "GPS Bazar No 1", zap.NewNop())

	_, err := service.GenerateReport(context.Background(), "missing", 1)
	require.Error(t, err)
}

func TestGenerateReportBadSemester(t *testing.T) {
	service := NewInsightService(&mockStudentRepo{}, &mockGenerator{}, "GPS Bazar No 1", zap.NewNop())

	_, err := service.GenerateReport(context.Background(), "s1", 3)
	require.Error(t, err)
}

func TestSchoolSummary(t *testing.T) {
	gen := &mockGenerator{configured: true, text: "Enrollment is healthy."}
	service := NewInsightService(&mockStudentRepo{}, gen, "GPS Bazar No 1", zap.NewNop())

	stats := models.DashboardStats{TotalStudents: 42}
	text := service.SchoolSummary(context.Background(), stats, "2025-2026")
	assert.Equal(t, "Enrollment is healthy.", text)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "2025-2026")

	offline := NewInsightService(&mockStudentRepo{}, &mockGenerator{}, "GPS Bazar No 1", zap.NewNop())
	assert.Equal(t, FallbackSummary, offline.SchoolSummary(context.Background(), stats, "2025-2026"))
}
