package models

// SemesterResult captures one semester's subject marks for a student.
type SemesterResult struct {
	Semester         int             `json:"semester"`
	Marks            map[Subject]int `json:"marks"`
	Remarks          string          `json:"remarks,omitempty"`
	GeneratedInsight string          `json:"generated_insight,omitempty"`
}

// NewSemesterResult builds an empty result for semester 1 or 2.
func NewSemesterResult(sem int) *SemesterResult {
	return &SemesterResult{Semester: sem, Marks: make(map[Subject]int)}
}

// Mark returns the stored mark for a subject; ok is false when the
// subject has no entry.
func (r *SemesterResult) Mark(subject Subject) (int, bool) {
	if r == nil || r.Marks == nil {
		return 0, false
	}
	mark, ok := r.Marks[subject]
	return mark, ok
}

// RawTotal sums every stored mark.
func (r *SemesterResult) RawTotal() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, mark := range r.Marks {
		total += mark
	}
	return total
}

// Clone deep copies the result. A nil receiver clones to nil.
func (r *SemesterResult) Clone() *SemesterResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Marks = make(map[Subject]int, len(r.Marks))
	for subject, mark := range r.Marks {
		out.Marks[subject] = mark
	}
	return &out
}
