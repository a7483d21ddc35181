package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AttendanceStatus is the recorded state for one (student, date) pair.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "P"
	AttendanceAbsent  AttendanceStatus = "A"
	AttendanceLeave   AttendanceStatus = "L"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	default:
		return false
	}
}

// AttendanceMap stores statuses keyed by ISO date (YYYY-MM-DD). A date
// with no entry means unmarked, not absent.
type AttendanceMap map[string]AttendanceStatus

// Value marshals the map to JSON for JSONB persistence.
func (m AttendanceMap) Value() (driver.Value, error) {
	if m == nil {
		m = AttendanceMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal attendance: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload into the map.
func (m *AttendanceMap) Scan(value interface{}) error {
	if value == nil {
		*m = AttendanceMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for AttendanceMap", value)
	}
	if len(data) == 0 {
		*m = AttendanceMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// AttendanceSummary aggregates marked days for one student. Unmarked
// dates appear in neither the counts nor the percentage.
type AttendanceSummary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Leave      int     `json:"leave"`
	MarkedDays int     `json:"marked_days"`
	Percent    float64 `json:"percent"`
}
