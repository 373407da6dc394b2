package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Header is the contact block of a tailored CV.
type Header struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// EducationEntry is one education record in a tailored CV.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Location    string `json:"location,omitempty"`
	Dates       string `json:"dates,omitempty"`
}

// ExperienceEntry is one role with its achievement bullets.
type ExperienceEntry struct {
	Title    string   `json:"title,omitempty"`
	Company  string   `json:"company,omitempty"`
	Location string   `json:"location,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// ProjectEntry is one project record.
type ProjectEntry struct {
	Name         string `json:"name,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Dates        string `json:"dates,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Certification supports both the rich name/issuer/year object and the
// legacy bare-string form the oracle sometimes emits.
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`

	// Plain is set when the entry arrived as a bare string.
	Plain bool `json:"-"`
}

func (c *Certification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		c.Plain = true
		return nil
	}
	type certObject Certification
	var obj certObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = Certification(obj)
	return nil
}

// SectionContent is the value of a free-form additional section: either a
// list of bullet items or a single paragraph.
type SectionContent struct {
	Items []string
	Text  string
}

// IsList reports whether the content should render as bullet lines.
func (s SectionContent) IsList() bool { return s.Items != nil }

func (s *SectionContent) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		s.Items = make([]string, 0, len(items))
		for _, raw := range items {
			var str string
			if err := json.Unmarshal(raw, &str); err == nil {
				s.Items = append(s.Items, str)
				continue
			}
			s.Items = append(s.Items, strings.Trim(string(raw), `"`))
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Text = str
		return nil
	}
	// Scalar of another shape; keep its textual form.
	s.Text = string(data)
	return nil
}

func (s SectionContent) MarshalJSON() ([]byte, error) {
	if s.IsList() {
		return json.Marshal(s.Items)
	}
	return json.Marshal(s.Text)
}

// ImprovementReport is the tailoring engine's closing self-report.
type ImprovementReport struct {
	OriginalScore FlexScore `json:"original_score"`
	NewScore      FlexScore `json:"new_score"`
	SkillsAdded   []string  `json:"skills_added"`
	RemainingGaps []string  `json:"remaining_gaps"`
}

// TailoredCV is the rewrite's structured output. Sections the source CV
// lacked are simply absent; the renderer emits only populated sections.
type TailoredCV struct {
	Header             Header                    `json:"header"`
	Summary            string                    `json:"summary,omitempty"`
	Education          []EducationEntry          `json:"education,omitempty"`
	Skills             map[string][]string       `json:"skills,omitempty"`
	Experience         []ExperienceEntry         `json:"experience,omitempty"`
	Projects           []ProjectEntry            `json:"projects,omitempty"`
	Certifications     []Certification           `json:"certifications,omitempty"`
	AdditionalSections map[string]SectionContent `json:"additional_sections,omitempty"`
	ImprovementReport  ImprovementReport         `json:"improvement_report"`

	// GapAnalysis is derived after tailoring for legacy consumers; it is
	// not part of the oracle contract.
	GapAnalysis string `json:"gap_analysis,omitempty"`
}

// HasSkill reports whether the skill appears in any skills category
// (case-insensitive). Used to flag improvement-report inconsistencies.
func (cv *TailoredCV) HasSkill(skill string) bool {
	for _, list := range cv.Skills {
		for _, s := range list {
			if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(skill)) {
				return true
			}
		}
	}
	return false
}

// PDFFilename builds the sanitized download filename for a tailored CV.
func PDFFilename(companyName, jobTitle string) string {
	sanitize := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				b.WriteRune(r)
			case r == ' ' || r == '-' || r == '_':
				b.WriteRune(r)
			default:
				b.WriteRune('_')
			}
		}
		return b.String()
	}
	name := fmt.Sprintf("CV_%s_%s.pdf", sanitize(companyName), sanitize(jobTitle))
	return strings.ReplaceAll(name, " ", "_")
}
