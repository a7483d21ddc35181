package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
)

// FallbackInsight is returned whenever the text-generation call cannot
// produce a narrative. Generation failures never surface as errors.
const FallbackInsight = "Evaluation complete. Please review the profile manually for details."

// FallbackSummary replaces the school-wide narrative on failure.
const FallbackSummary = "Institutional performance analysis is not available right now."

type textGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// InsightService produces narrative report-card comments.
type InsightService struct {
	repo       studentRepository
	generator  textGenerator
	logger     *zap.Logger
	schoolName string
}

// NewInsightService constructs the insight service.
func NewInsightService(repo studentRepository, generator textGenerator, schoolName string, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{repo: repo, generator: generator, logger: logger, schoolName: schoolName}
}

// GenerateReport produces and stores a narrative comment for one
// semester's result. The text degrades to FallbackInsight when the
// gateway is unconfigured or fails; only the persistence write can
// error.
func (s *InsightService) GenerateReport(ctx context.Context, studentID string, semester int) (string, error) {
	if semester != 1 && semester != 2 {
		return "", appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	result := student.Results.Semester(semester)
	if result == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "no result data available for this semester")
	}

	text := s.generate(ctx, reportPrompt(s.schoolName, student, result))

	updated := student.Clone()
	updated.Results.Semester(semester).GeneratedInsight = text
	if err := s.repo.Save(ctx, &updated); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store insight")
	}
	return text, nil
}

// SchoolSummary narrates roster-level statistics. Nothing is stored.
func (s *InsightService) SchoolSummary(ctx context.Context, stats models.DashboardStats, sessionYear string) string {
	if s.generator == nil || !s.generator.Configured() {
		return FallbackSummary
	}
	text, err := s.generator.Generate(ctx, summaryPrompt(stats, sessionYear))
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("school summary generation failed", zap.Error(err))
		return FallbackSummary
	}
	return strings.TrimSpace(text)
}

func (s *InsightService) generate(ctx context.Context, prompt string) string {
	if s.generator == nil || !s.generator.Configured() {
		return FallbackInsight
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("insight generation failed", zap.Error(err))
		return FallbackInsight
	}
	return strings.TrimSpace(text)
}

func reportPrompt(schoolName string, student *models.Student, result *models.SemesterResult) string {
	marks := make([]string, 0, len(result.Marks))
	for subject, mark := range result.Marks {
		marks = append(marks, fmt.Sprintf("%s: %d", subject, mark))
	}
	sort.Strings(marks)

	var b strings.Builder
	fmt.Fprintf(&b, "Act as an experienced school principal at %s. ", schoolName)
	b.WriteString("Write an encouraging, personalized report card comment for:\n")
	fmt.Fprintf(&b, "Student: %s (Grade %s)\n", student.Name, student.Grade)
	fmt.Fprintf(&b, "Father's Name: %s\n", student.FatherName)
	fmt.Fprintf(&b, "Semester: %d\n", result.Semester)
	fmt.Fprintf(&b, "Marks out of %d: %s\n", models.TotalMarksPerSubject, strings.Join(marks, ", "))
	b.WriteString("Analyze strengths and areas needing attention in 3 concise, professional sentences. Return only the text, no markdown.")
	return b.String()
}

func summaryPrompt(stats models.DashboardStats, sessionYear string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze school statistics for session %s:\n", sessionYear)
	fmt.Fprintf(&b, "Total enrollment: %d\n", stats.TotalStudents)
	for _, gc := range stats.GradeDistribution {
		fmt.Fprintf(&b, "Grade %s: %d students\n", gc.Grade, gc.Count)
	}
	b.WriteString("Summarize institutional performance in 2 sentences. No markdown.")
	return b.String()
}
