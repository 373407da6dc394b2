package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DomainMatch classifies how well the candidate's background field aligns
// with the target role's field.
type DomainMatch string

const (
	DomainCompleteMismatch DomainMatch = "complete_mismatch"
	DomainWeakMatch        DomainMatch = "weak_match"
	DomainGoodMatch        DomainMatch = "good_match"
)

// ScoreBand returns the inclusive overall-score band the scoring rubric
// dictates for the category, and whether the category is a known one.
func (d DomainMatch) ScoreBand() (min, max int, ok bool) {
	switch d {
	case DomainCompleteMismatch:
		return 15, 29, true
	case DomainWeakMatch:
		return 30, 59, true
	case DomainGoodMatch:
		return 60, 100, true
	}
	return 0, 0, false
}

// FlexScore decodes a score the oracle may emit as a JSON number or as a
// numeric string (possibly with a trailing percent sign). Anything else
// leaves the score unset instead of failing the decode.
type FlexScore struct {
	Value int
	Set   bool
}

func (s *FlexScore) UnmarshalJSON(data []byte) error {
	// Decoding through a pointer keeps a JSON null unset.
	var n *float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n != nil {
			s.Value = int(math.Round(*n))
			s.Set = true
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "%"))
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			s.Value = int(math.Round(f))
			s.Set = true
		}
	}
	return nil
}

func (s FlexScore) MarshalJSON() ([]byte, error) {
	if !s.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.Value)), nil
}

// String renders the score for headers and progress lines.
func (s FlexScore) String() string {
	if !s.Set {
		return "N/A"
	}
	return strconv.Itoa(s.Value)
}

// ExtractedKeywords is the job-side keyword split produced by the scorer.
type ExtractedKeywords struct {
	MustHave         []string `json:"must_have"`
	NiceToHave       []string `json:"nice_to_have"`
	CriticalKeywords []string `json:"critical_keywords"`
}

// JobAnalysis captures the requirements the oracle extracted from the job
// description before scoring.
type JobAnalysis struct {
	JobTitle           string            `json:"job_title"`
	RequiredExperience string            `json:"required_experience"`
	RequiredEducation  string            `json:"required_education"`
	ExtractedKeywords  ExtractedKeywords `json:"extracted_keywords"`
	SoftSkills         []string          `json:"soft_skills"`
}

// FactorScore is one weighted scoring factor.
type FactorScore struct {
	Score         FlexScore `json:"score"`
	Weight        int       `json:"weight"`
	WeightedScore float64   `json:"weighted_score"`
	Details       string    `json:"details,omitempty"`
}

// KeywordMatchFactor extends FactorScore with the keyword lists the
// tailoring engine seeds its prompt from.
type KeywordMatchFactor struct {
	FactorScore
	MatchedKeywords         []string `json:"matched_keywords"`
	MissingCriticalKeywords []string `json:"missing_critical_keywords"`
}

// ScoreBreakdown holds the six rubric factors.
type ScoreBreakdown struct {
	KeywordMatch           KeywordMatchFactor `json:"keyword_match"`
	JobTitleAlignment      FactorScore        `json:"job_title_alignment"`
	SkillsCoverage         FactorScore        `json:"skills_coverage"`
	ExperienceLevel        FactorScore        `json:"experience_level"`
	EducationCertification FactorScore        `json:"education_certification"`
	FormattingReadability  FactorScore        `json:"formatting_readability"`
}

// FitReport is the fit scorer's structured output, decoded from the oracle's
// JSON payload. The oracle is untrusted: omitted fields stay zero-valued and
// the report is validated, never repaired, after decoding.
type FitReport struct {
	IsValidCV              *bool          `json:"is_valid_cv,omitempty"`
	RejectionReason        string         `json:"rejection_reason,omitempty"`
	JobAnalysis            *JobAnalysis   `json:"job_analysis,omitempty"`
	DomainMatch            DomainMatch    `json:"domain_match"`
	OverallScore           FlexScore      `json:"overall_ats_score"`
	Score                  int            `json:"score"`
	ScoreInterpretation    string         `json:"score_interpretation,omitempty"`
	Breakdown              ScoreBreakdown `json:"breakdown"`
	MatchingSkills         []string       `json:"matching_skills"`
	MissingSkills          []string       `json:"missing_skills"`
	Advice                 []string       `json:"advice"`
	ProjectRecommendations []string       `json:"project_recommendations"`
	Summary                string         `json:"summary,omitempty"`
}

// CompactJSON renders the report as single-line JSON for prompt embedding.
func (r *FitReport) CompactJSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(data)
}
