package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Grade identifies a class level.
type Grade string

const (
	Grade1 Grade = "1"
	Grade2 Grade = "2"
	Grade3 Grade = "3"
	Grade4 Grade = "4"
	Grade5 Grade = "5"
)

// Grades lists every class level in ascending order.
var Grades = []Grade{Grade1, Grade2, Grade3, Grade4, Grade5}

// DefaultGrade is assigned when an import row carries no class level.
const DefaultGrade = Grade1

// Valid reports whether the grade belongs to the fixed set.
func (g Grade) Valid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// Gender values accepted on the managed entry path. Import stores
// whatever the file carries after title-casing.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Student represents a learner registered in the school.
type Student struct {
	ID             string         `db:"id" json:"id"`
	SerialNo       string         `db:"serial_no" json:"serial_no"`
	RegistrationNo string         `db:"registration_no" json:"registration_no"`
	Name           string         `db:"name" json:"name"`
	FatherName     string         `db:"father_name" json:"father_name"`
	Gender         string         `db:"gender" json:"gender"`
	DOB            string         `db:"dob" json:"dob"`
	FormB          string         `db:"form_b" json:"form_b"`
	Contact        string         `db:"contact" json:"contact"`
	Grade          Grade          `db:"grade" json:"grade"`
	Results        StudentResults `db:"results" json:"results"`
	Attendance     AttendanceMap  `db:"attendance" json:"attendance"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// StudentResults holds the two semester results. Either pointer may be
// nil when marks have not been entered yet.
type StudentResults struct {
	Sem1 *SemesterResult `json:"sem1,omitempty"`
	Sem2 *SemesterResult `json:"sem2,omitempty"`
}

// Semester returns the result for semester 1 or 2, nil when absent.
func (r StudentResults) Semester(sem int) *SemesterResult {
	switch sem {
	case 1:
		return r.Sem1
	case 2:
		return r.Sem2
	default:
		return nil
	}
}

// SetSemester stores a result under semester 1 or 2.
func (r *StudentResults) SetSemester(sem int, result *SemesterResult) {
	switch sem {
	case 1:
		r.Sem1 = result
	case 2:
		r.Sem2 = result
	}
}

// Value marshals results to JSON for JSONB persistence.
func (r StudentResults) Value() (driver.Value, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal student results: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload into the results container.
func (r *StudentResults) Scan(value interface{}) error {
	if value == nil {
		*r = StudentResults{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StudentResults", value)
	}
	if len(data) == 0 {
		*r = StudentResults{}
		return nil
	}
	return json.Unmarshal(data, r)
}

// Clone returns a deep copy of the student. Mutating flows copy first
// so no caller ever aliases a stored record.
func (s Student) Clone() Student {
	out := s
	out.Results = StudentResults{
		Sem1: s.Results.Sem1.Clone(),
		Sem2: s.Results.Sem2.Clone(),
	}
	if s.Attendance != nil {
		out.Attendance = make(AttendanceMap, len(s.Attendance))
		for date, status := range s.Attendance {
			out.Attendance[date] = status
		}
	}
	return out
}

// StudentFilter encapsulates allowed search parameters for listings.
type StudentFilter struct {
	Search    string
	Grade     Grade
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
