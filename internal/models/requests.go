package models

// UploadResponse is returned after a successful CV upload and analysis.
type UploadResponse struct {
	Success         bool           `json:"success"`
	CVID            string         `json:"cv_id"`
	Filename        string         `json:"filename"`
	Format          DocumentFormat `json:"format"`
	TextLength      int            `json:"text_length"`
	Skills          []string       `json:"skills"`
	SkillsCount     int            `json:"skills_count"`
	Contact         Contact        `json:"contact"`
	Education       []string       `json:"education"`
	Name            string         `json:"name,omitempty"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
	Industry        string         `json:"detected_industry"`
	Preview         string         `json:"preview"`
}

// GenerateRequest drives the analyze, generate and generate/pdf endpoints.
type GenerateRequest struct {
	CVID           string     `json:"cv_id"`
	JobTitle       string     `json:"job_title"`
	JobDescription string     `json:"job_description"`
	CompanyName    string     `json:"company_name"`
	ATSAnalysis    *FitReport `json:"ats_analysis,omitempty"`
}

// AnalyzeResponse wraps a fit report for the analyze endpoint.
type AnalyzeResponse struct {
	Success  bool       `json:"success"`
	Analysis *FitReport `json:"analysis"`
	Industry string     `json:"detected_industry"`
}

// GenerateResponse is the text preview returned by the generate endpoint.
type GenerateResponse struct {
	Success    bool   `json:"success"`
	TailoredCV string `json:"tailored_cv"`
	JobTitle   string `json:"job_title"`
	Company    string `json:"company"`
}

// ReviewRequest creates a new review.
type ReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
