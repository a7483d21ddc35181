package models

// ImportSummary reports per-batch reconciliation counts. Rows are
// applied one at a time; Errors counts files that failed to parse plus
// rows whose persistence write failed.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Add accumulates another summary into the receiver.
func (s *ImportSummary) Add(other ImportSummary) {
	s.Created += other.Created
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

// TemplateKind selects which import template to generate.
type TemplateKind string

const (
	TemplateBio  TemplateKind = "bio"
	TemplateSem1 TemplateKind = "sem1"
	TemplateSem2 TemplateKind = "sem2"
)

// Valid reports whether the kind is a supported template.
func (k TemplateKind) Valid() bool {
	switch k {
	case TemplateBio, TemplateSem1, TemplateSem2:
		return true
	default:
		return false
	}
}
