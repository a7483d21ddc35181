package models

// GradeCount is one slice of the enrollment distribution.
type GradeCount struct {
	Grade Grade `json:"grade"`
	Count int   `json:"count"`
}

// DashboardStats aggregates roster figures for the admin dashboard.
type DashboardStats struct {
	TotalStudents     int          `json:"total_students"`
	GradeDistribution []GradeCount `json:"grade_distribution"`
	WithSem1Results   int          `json:"with_sem1_results"`
	WithSem2Results   int          `json:"with_sem2_results"`
}
