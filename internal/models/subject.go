package models

import "strings"

// Subject identifies one of the fixed taught subjects.
type Subject string

const (
	SubjectEnglish        Subject = "English"
	SubjectUrdu           Subject = "Urdu"
	SubjectPashto         Subject = "Pashto"
	SubjectMath           Subject = "Math"
	SubjectGeneralScience Subject = "General Science"
	SubjectSocialStudy    Subject = "Social Study"
	SubjectIslamiyat      Subject = "Islamiyat"
	SubjectNazira         Subject = "Nazira"
	SubjectDrawing        Subject = "Drawing"
)

// Subjects lists every taught subject in report order.
var Subjects = []Subject{
	SubjectEnglish,
	SubjectUrdu,
	SubjectPashto,
	SubjectMath,
	SubjectGeneralScience,
	SubjectSocialStudy,
	SubjectIslamiyat,
	SubjectNazira,
	SubjectDrawing,
}

// TotalMarksPerSubject is the maximum raw score for a single subject.
const TotalMarksPerSubject = 100

// Valid reports whether the subject belongs to the fixed set.
func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

// Key returns the normalized lookup form of the subject name:
// lowercase with all non-alphanumeric characters stripped.
func (s Subject) Key() string {
	var b strings.Builder
	for _, r := range strings.ToLower(string(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compact returns the subject name with spaces removed, used in CSV
// column headers ("General Science" -> "GeneralScience").
func (s Subject) Compact() string {
	return strings.ReplaceAll(string(s), " ", "")
}

// SubjectByKey resolves a normalized key back to its Subject. The
// second return is false for keys outside the fixed set.
func SubjectByKey(key string) (Subject, bool) {
	for _, s := range Subjects {
		if s.Key() == key {
			return s, true
		}
	}
	return "", false
}
