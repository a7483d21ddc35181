package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/pkg/csvio"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/export"
)

type reportCardRenderer interface {
	RenderReportCard(card export.ReportCard) ([]byte, error)
}

// ExportConfig carries school identity stamped onto documents.
type ExportConfig struct {
	SchoolName  string
	SessionYear string
}

// ExportService produces roster CSV files, import templates and
// printable report cards.
type ExportService struct {
	repo       studentRepository
	transcript *TranscriptService
	pdf        reportCardRenderer
	logger     *zap.Logger
	cfg        ExportConfig
}

// NewExportService constructs the export service.
func NewExportService(repo studentRepository, transcript *TranscriptService, pdf reportCardRenderer, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if transcript == nil {
		transcript = NewTranscriptService()
	}
	return &ExportService{repo: repo, transcript: transcript, pdf: pdf, logger: logger, cfg: cfg}
}

// RosterHeaders returns the fixed export column order: biographical
// fields, then Sem1 marks per subject, then Sem2 marks per subject.
func RosterHeaders() []string {
	headers := []string{"SerialNo", "RegistrationNo", "Name", "FatherName", "Gender", "Grade", "DOB", "FormB", "Contact"}
	for _, subject := range models.Subjects {
		headers = append(headers, "Sem1_"+subject.Compact())
	}
	for _, subject := range models.Subjects {
		headers = append(headers, "Sem2_"+subject.Compact())
	}
	return headers
}

// ExportRoster serializes the full roster. What this writes, the
// import path reads back unchanged.
func (s *ExportService) ExportRoster(ctx context.Context) (string, error) {
	students, err := s.repo.LoadAll(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students for export")
	}

	rows := make([][]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, rosterRow(student))
	}
	return csvio.Serialize(RosterHeaders(), rows), nil
}

func rosterRow(student models.Student) []string {
	row := []string{
		student.SerialNo,
		student.RegistrationNo,
		student.Name,
		student.FatherName,
		student.Gender,
		string(student.Grade),
		student.DOB,
		student.FormB,
		student.Contact,
	}
	for _, semester := range []int{1, 2} {
		result := student.Results.Semester(semester)
		for _, subject := range models.Subjects {
			if mark, ok := result.Mark(subject); ok {
				row = append(row, strconv.Itoa(mark))
			} else {
				row = append(row, "")
			}
		}
	}
	return row
}

// Template generates a downloadable import template with one
// illustrative sample row.
func (s *ExportService) Template(kind models.TemplateKind) (string, error) {
	if !kind.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "template kind must be bio, sem1 or sem2")
	}

	switch kind {
	case models.TemplateBio:
		headers := []string{"SerialNo", "RegistrationNo", "Name", "FatherName", "Gender", "Grade", "DOB", "FormB", "Contact"}
		sample := []string{"101", "R-2024-001", "Ahmed Khan", "Bilal Khan", "Male", "5", "2015-05-12", "12345-1234567-1", "0300-1234567"}
		return csvio.Serialize(headers, [][]string{sample}), nil
	default:
		semester := "Sem1"
		if kind == models.TemplateSem2 {
			semester = "Sem2"
		}
		headers := []string{"SerialNo", "Name"}
		sample := []string{"101", "Ahmed Khan"}
		for _, subject := range models.Subjects {
			headers = append(headers, semester+"_"+subject.Compact())
			sample = append(sample, "85")
		}
		return csvio.Serialize(headers, [][]string{sample}), nil
	}
}

// ReportCard renders a printable PDF result card. Semester 0 renders
// the combined annual transcript.
func (s *ExportService) ReportCard(ctx context.Context, studentID string, semester int) ([]byte, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	card := export.ReportCard{
		SchoolName:  s.cfg.SchoolName,
		SessionYear: s.cfg.SessionYear,
		BioLines: [][2]string{
			{"Serial No", student.SerialNo},
			{"Registration No", student.RegistrationNo},
			{"Name", student.Name},
			{"Father Name", student.FatherName},
			{"Grade", string(student.Grade)},
		},
	}

	switch semester {
	case 0:
		transcript := s.transcript.Compute(student)
		card.Title = "Annual Result Card"
		for _, row := range transcript.Rows {
			card.Rows = append(card.Rows, export.ReportCardRow{
				Subject:  string(row.Subject),
				Obtained: formatOptionalMarks(row.Sem1Mark, row.Sem2Mark),
				Total:    strconv.Itoa(row.MaxWeighted),
				Weighted: strconv.Itoa(row.Weighted),
			})
		}
		card.SummaryRows = [][2]string{
			{"Grand Total", fmt.Sprintf("%d / %d", transcript.GrandTotal, transcript.MaxGrandTotal)},
			{"Percentage", fmt.Sprintf("%d%%", transcript.Percentage)},
			{"Grade", transcript.LetterGrade},
			{"Result", passLabel(transcript.Passed)},
		}
	case 1, 2:
		summary := s.transcript.SemesterView(student, semester)
		card.Title = fmt.Sprintf("Semester %d Result Card", semester)
		for _, row := range summary.Rows {
			card.Rows = append(card.Rows, export.ReportCardRow{
				Subject:  string(row.Subject),
				Obtained: strconv.Itoa(row.Obtained),
				Total:    strconv.Itoa(row.Total),
				Weighted: strconv.Itoa(row.Weighted),
			})
		}
		card.SummaryRows = [][2]string{
			{"Total", fmt.Sprintf("%d / %d", summary.RawTotal, summary.MaxTotal)},
			{"Percentage", fmt.Sprintf("%.0f%%", summary.Percentage)},
		}
		card.Remarks = summary.Remarks
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 0, 1 or 2")
	}

	if len(card.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no marks recorded for this student")
	}
	return s.pdf.RenderReportCard(card)
}

func formatOptionalMarks(sem1, sem2 *int) string {
	format := func(m *int) string {
		if m == nil {
			return "-"
		}
		return strconv.Itoa(*m)
	}
	return format(sem1) + " / " + format(sem2)
}

func passLabel(passed bool) string {
	if passed {
		return "Pass"
	}
	return "Fail"
}
