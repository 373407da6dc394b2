package models

// DocumentFormat identifies the source format of an uploaded CV.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
)

// NormalizedDocument is the plain-text view of an uploaded file, produced once
// per upload and never mutated afterwards.
type NormalizedDocument struct {
	Text      string         `json:"text"`
	Format    DocumentFormat `json:"format"`
	PageCount int            `json:"page_or_paragraph_count"`
}

// Contact holds the first match per contact field. Absent fields stay empty.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// CandidateProfile is the structured read-only view derived from a
// NormalizedDocument by the fact extractor.
type CandidateProfile struct {
	Filename        string         `json:"filename"`
	Format          DocumentFormat `json:"format"`
	Text            string         `json:"-"`
	TextLength      int            `json:"text_length"`
	Name            string         `json:"name,omitempty"`
	Skills          []string       `json:"skills"`
	Contact         Contact        `json:"contact"`
	Education       []string       `json:"education"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
	Industry        string         `json:"detected_industry"`
}
