package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/pkg/csvio"
	"github.com/gpsbazar/school-records-api/pkg/export"
)

type mockRenderer struct {
	card export.ReportCard
}

func (m *mockRenderer) RenderReportCard(card export.ReportCard) ([]byte, error) {
	m.card = card
	return []byte("%PDF"), nil
}

func newExportService(repo studentRepository, renderer reportCardRenderer) *ExportService {
	return NewExportService(repo, NewTranscriptService(), renderer, ExportConfig{
		SchoolName:  "GPS Bazar No 1",
		SessionYear: "2025-2026",
	}, zap.NewNop())
}

func TestRosterHeaders(t *testing.T) {
	headers := RosterHeaders()
	require.Len(t, headers, 9+18)
	assert.Equal(t, "SerialNo", headers[0])
	assert.Equal(t, "Contact", headers[8])
	assert.Equal(t, "Sem1_English", headers[9])
	assert.Equal(t, "Sem1_GeneralScience", headers[13])
	assert.Equal(t, "Sem2_English", headers[18])
	assert.Equal(t, "Sem2_Drawing", headers[26])
}

func TestExportRoster(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", SerialNo: "101", RegistrationNo: "R-2024-001",
		Name: "Ahmed Khan", FatherName: "Bilal Khan", Gender: "Male", Grade: models.Grade5,
		Results: models.StudentResults{Sem1: &models.SemesterResult{
			Semester: 1,
			Marks:    map[models.Subject]int{models.SubjectMath: 88},
		}},
	}}}
	service := newExportService(repo, &mockRenderer{})

	out, err := service.ExportRoster(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, csvio.BOM))

	rows := csvio.Parse(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "101", rows[0]["serialno"])
	assert.Equal(t, "Ahmed Khan", rows[0]["name"])
	assert.Equal(t, "88", rows[0]["sem1math"])
	assert.Equal(t, "", rows[0]["sem2math"], "missing marks export as empty cells")
}

func TestExportRosterRoundTripsThroughImport(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", SerialNo: "101", Name: "Khan, Ahmed", FatherName: "Bilal Khan",
		Gender: "Male", Grade: models.Grade5,
		Results: models.StudentResults{Sem2: &models.SemesterResult{
			Semester: 2,
			Marks:    map[models.Subject]int{models.SubjectGeneralScience: 77},
		}},
	}}}
	service := newExportService(repo, &mockRenderer{})

	out, err := service.ExportRoster(context.Background())
	require.NoError(t, err)

	target := &mockStudentRepo{}
	importer := NewImportService(target, zap.NewNop())
	result, err := importer.ImportFiles(context.Background(), []ImportFile{{Name: "roster.csv", Content: out}})
	require.NoError(t, err)
	require.Len(t, result.Students, 1)
	assert.Equal(t, "Khan, Ahmed", result.Students[0].Name)
	require.NotNil(t, result.Students[0].Results.Sem2)
	assert.Equal(t, 77, result.Students[0].Results.Sem2.Marks[models.SubjectGeneralScience])
}

func TestTemplateKinds(t *testing.T) {
	service := newExportService(&mockStudentRepo{}, &mockRenderer{})

	bio, err := service.Template(models.TemplateBio)
	require.NoError(t, err)
	rows := csvio.Parse(bio)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ahmed Khan", rows[0]["name"])

	sem2, err := service.Template(models.TemplateSem2)
	require.NoError(t, err)
	rows = csvio.Parse(sem2)
	require.Len(t, rows, 1)
	assert.Equal(t, "85", rows[0]["sem2nazira"])

	_, err = service.Template(models.TemplateKind("annual"))
	require.Error(t, err)
}

func TestReportCardAnnual(t *testing.T) {
	renderer := &mockRenderer{}
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", SerialNo: "101", Name: "Ahmed Khan", Grade: models.Grade5,
		Results: models.StudentResults{
			Sem1: &models.SemesterResult{Semester: 1, Marks: map[models.Subject]int{models.SubjectMath: 80}},
			Sem2: &models.SemesterResult{Semester: 2, Marks: map[models.Subject]int{models.SubjectMath: 90}},
		},
	}}}
	service := newExportService(repo, renderer)

	pdf, err := service.ReportCard(context.Background(), "s1", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	assert.Equal(t, "Annual Result Card", renderer.card.Title)
	assert.Equal(t, "GPS Bazar No 1", renderer.card.SchoolName)
	require.Len(t, renderer.card.Rows, 9)

	var mathRow export.ReportCardRow
	for _, row := range renderer.card.Rows {
		if row.Subject == "Math" {
			mathRow = row
		}
	}
	assert.Equal(t, "80 / 90", mathRow.Obtained)
	assert.Equal(t, "86", mathRow.Weighted)
}

func TestReportCardSemester(t *testing.T) {
	renderer := &mockRenderer{}
	repo := &mockStudentRepo{students: []models.Student{{
		ID: "s1", Name: "Ahmed Khan", Grade: models.Grade5,
		Results: models.StudentResults{
			Sem1: &models.SemesterResult{Semester: 1, Marks: map[models.Subject]int{models.SubjectMath: 80}, Remarks: "solid"},
		},
	}}}
	service := newExportService(repo, renderer)

	_, err := service.ReportCard(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Semester 1 Result Card", renderer.card.Title)
	assert.Equal(t, "solid", renderer.card.Remarks)
	require.Len(t, renderer.card.Rows, 1)
	assert.Equal(t, "80", renderer.card.Rows[0].Obtained)
}

func TestReportCardNoMarks(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed Khan"}}}
	service := newExportService(repo, &mockRenderer{})

	_, err := service.ReportCard(context.Background(), "s1", 1)
	require.Error(t, err)
}

func TestReportCardBadSemester(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed Khan"}}}
	service := newExportService(repo, &mockRenderer{})

	_, err := service.ReportCard(context.Background(), "s1", 3)
	require.Error(t, err)
}

func TestReportCardStudentNotFound(t *testing.T) {
	service := newExportService(&mockStudentRepo{}, &mockRenderer{})

	_, err := service.ReportCard(context.Background(), "missing", 0)
	require.Error(t, err)
}
