package service

import (
	"math"

	"github.com/gpsbazar/school-records-api/internal/models"
)

// Semester weights for the annual transcript. Applied per subject:
// each semester's mark is weighted and rounded independently, then the
// two halves are summed. Rounding per subject before summing is what
// keeps displayed figures reproducible.
const (
	Sem1Weight = 0.45
	Sem2Weight = 0.55
)

// SubjectPassMark is the informational per-subject pass threshold.
const SubjectPassMark = 40

// TranscriptService computes annual and single-semester results.
type TranscriptService struct{}

// NewTranscriptService constructs a TranscriptService.
func NewTranscriptService() *TranscriptService {
	return &TranscriptService{}
}

// WeightedScore combines one subject's two semester marks. A missing
// semester contributes zero; it never shrinks the scale.
func WeightedScore(sem1, sem2 *int) int {
	score := 0
	if sem1 != nil {
		score += int(math.Round(float64(*sem1) * Sem1Weight))
	}
	if sem2 != nil {
		score += int(math.Round(float64(*sem2) * Sem2Weight))
	}
	return score
}

// LetterGrade maps an integer percentage to the report letter.
func LetterGrade(percentage int) string {
	switch {
	case percentage >= 80:
		return "A+"
	case percentage >= 70:
		return "A"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

// Compute builds the annual transcript for a student. Either semester
// may be absent; every enumerated subject always appears and the
// percentage is taken against the full scale.
func (s *TranscriptService) Compute(student *models.Student) models.Transcript {
	transcript := models.Transcript{
		StudentID:     student.ID,
		Rows:          make([]models.TranscriptRow, 0, len(models.Subjects)),
		MaxGrandTotal: len(models.Subjects) * models.TotalMarksPerSubject,
	}

	for _, subject := range models.Subjects {
		row := models.TranscriptRow{Subject: subject, MaxWeighted: models.TotalMarksPerSubject}
		if mark, ok := student.Results.Sem1.Mark(subject); ok {
			m := mark
			row.Sem1Mark = &m
		}
		if mark, ok := student.Results.Sem2.Mark(subject); ok {
			m := mark
			row.Sem2Mark = &m
		}
		row.Weighted = WeightedScore(row.Sem1Mark, row.Sem2Mark)
		row.Passed = row.Weighted >= SubjectPassMark
		transcript.GrandTotal += row.Weighted
		transcript.Rows = append(transcript.Rows, row)
	}

	transcript.Percentage = int(math.Round(float64(transcript.GrandTotal) / float64(transcript.MaxGrandTotal) * 100))
	transcript.LetterGrade = LetterGrade(transcript.Percentage)
	transcript.Passed = transcript.LetterGrade != "F"
	return transcript
}

// SemesterView builds the single-semester summary. The percentage here
// is unweighted; the weighted column only shows each mark's eventual
// contribution to the annual transcript.
func (s *TranscriptService) SemesterView(student *models.Student, semester int) models.SemesterSummary {
	summary := models.SemesterSummary{
		StudentID: student.ID,
		Semester:  semester,
		MaxTotal:  len(models.Subjects) * models.TotalMarksPerSubject,
	}

	result := student.Results.Semester(semester)
	weight := Sem1Weight
	if semester == 2 {
		weight = Sem2Weight
	}

	for _, subject := range models.Subjects {
		mark, ok := result.Mark(subject)
		if !ok {
			continue
		}
		summary.Rows = append(summary.Rows, models.SemesterRow{
			Subject:  subject,
			Obtained: mark,
			Total:    models.TotalMarksPerSubject,
			Weighted: int(math.Round(float64(mark) * weight)),
		})
		summary.RawTotal += mark
	}

	summary.Percentage = float64(summary.RawTotal) / float64(summary.MaxTotal) * 100
	if result != nil {
		summary.Remarks = result.Remarks
		summary.Insight = result.GeneratedInsight
	}
	return summary
}
