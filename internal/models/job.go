package models

// Job is a job posting normalized from the Reed API shape.
type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryDisplay  string   `json:"salary_display"`
	ContractType   string   `json:"contract_type"`
	ContractTime   string   `json:"contract_time"`
	Category       string   `json:"category"`
	RedirectURL    string   `json:"redirect_url"`
	Created        string   `json:"created"`
	DateDisplay    string   `json:"date_display"`
	ExpirationDate string   `json:"expiration_date"`
	PostedBy       string   `json:"posted_by"`
	Source         string   `json:"source"`

	// Populated only on the details endpoint.
	Applications       int    `json:"applications,omitempty"`
	EmployerProfileURL string `json:"employer_profile_url,omitempty"`
}

// JobSearchResult is a page of normalized jobs plus pagination metadata.
type JobSearchResult struct {
	Count          int   `json:"count"`
	Page           int   `json:"page"`
	ResultsPerPage int   `json:"results_per_page"`
	Jobs           []Job `json:"jobs"`
}
