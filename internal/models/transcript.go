package models

// TranscriptRow holds one subject's contribution to the annual
// transcript. Sem1Mark/Sem2Mark are nil when that semester has no
// entry for the subject.
type TranscriptRow struct {
	Subject     Subject `json:"subject"`
	Sem1Mark    *int    `json:"sem1_mark,omitempty"`
	Sem2Mark    *int    `json:"sem2_mark,omitempty"`
	Weighted    int     `json:"weighted"`
	MaxWeighted int     `json:"max_weighted"`
	Passed      bool    `json:"passed"`
}

// Transcript is the combined annual result for one student.
type Transcript struct {
	StudentID     string          `json:"student_id"`
	Rows          []TranscriptRow `json:"rows"`
	GrandTotal    int             `json:"grand_total"`
	MaxGrandTotal int             `json:"max_grand_total"`
	Percentage    int             `json:"percentage"`
	LetterGrade   string          `json:"letter_grade"`
	Passed        bool            `json:"passed"`
}

// SemesterRow is one subject's entry in a single-semester view.
type SemesterRow struct {
	Subject  Subject `json:"subject"`
	Obtained int     `json:"obtained"`
	Total    int     `json:"total"`
	Weighted int     `json:"weighted"`
}

// SemesterSummary is the single-semester (unweighted) view.
type SemesterSummary struct {
	StudentID  string        `json:"student_id"`
	Semester   int           `json:"semester"`
	Rows       []SemesterRow `json:"rows"`
	RawTotal   int           `json:"raw_total"`
	MaxTotal   int           `json:"max_total"`
	Percentage float64       `json:"percentage"`
	Remarks    string        `json:"remarks,omitempty"`
	Insight    string        `json:"insight,omitempty"`
}
