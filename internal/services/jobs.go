package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/manojthapa/neuroarc/internal/models"
)

const reedBaseURL = "https://www.reed.co.uk/api/1.0"

// Reed caps a single search request at 100 results.
const reedMaxPerRequest = 100

// JobSearchOptions are the optional search filters passed through to Reed.
type JobSearchOptions struct {
	Location       string
	Page           int
	ResultsPerPage int
	FullTime       *bool
	PartTime       *bool
	Permanent      *bool
	Contract       *bool
}

// JobService searches jobs on Reed, the UK job board.
type JobService interface {
	Search(ctx context.Context, query string, opts JobSearchOptions) (*models.JobSearchResult, error)
	Details(ctx context.Context, jobID string) (*models.Job, error)
}

type jobService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewJobService(apiKey string, logger *zap.Logger) JobService {
	return &jobService{
		apiKey:  apiKey,
		baseURL: reedBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// reedJob mirrors the wire format of a Reed search result.
type reedJob struct {
	JobID              int64    `json:"jobId"`
	JobTitle           string   `json:"jobTitle"`
	EmployerName       string   `json:"employerName"`
	LocationName       string   `json:"locationName"`
	JobDescription     string   `json:"jobDescription"`
	MinimumSalary      *float64 `json:"minimumSalary"`
	MaximumSalary      *float64 `json:"maximumSalary"`
	ContractType       string   `json:"contractType"`
	JobType            string   `json:"jobType"`
	JobURL             string   `json:"jobUrl"`
	Date               string   `json:"date"`
	ExpirationDate     string   `json:"expirationDate"`
	FullTime           bool     `json:"fullTime"`
	PartTime           bool     `json:"partTime"`
	Applications       int      `json:"applications"`
	EmployerProfileURL string   `json:"employerProfileUrl"`
}

type reedSearchResponse struct {
	Results      []reedJob `json:"results"`
	TotalResults int       `json:"totalResults"`
}

func (s *jobService) Search(ctx context.Context, query string, opts JobSearchOptions) (*models.JobSearchResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("API Key missing. Please set REED_API_KEY in environment variables")
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.ResultsPerPage
	if perPage < 1 {
		perPage = reedMaxPerRequest
	}

	skip := (page - 1) * perPage
	fetched := 0
	totalFound := 0
	seen := make(map[int64]struct{})
	var jobs []models.Job

	for fetched < perPage {
		take := perPage - fetched
		if take > reedMaxPerRequest {
			take = reedMaxPerRequest
		}

		params := url.Values{}
		params.Set("keywords", query)
		params.Set("resultsToTake", strconv.Itoa(take))
		params.Set("resultsToSkip", strconv.Itoa(skip+fetched))
		if opts.Location != "" {
			params.Set("locationName", opts.Location)
			params.Set("distanceFromLocation", "0")
		}
		setBoolParam(params, "fullTime", opts.FullTime)
		setBoolParam(params, "partTime", opts.PartTime)
		setBoolParam(params, "permanent", opts.Permanent)
		setBoolParam(params, "contract", opts.Contract)

		var resp reedSearchResponse
		if err := s.get(ctx, "/search?"+params.Encode(), &resp); err != nil {
			return nil, err
		}

		totalFound = resp.TotalResults
		if len(resp.Results) == 0 {
			break
		}

		for _, raw := range resp.Results {
			// Reed's location matching is fuzzy; verify client-side.
			if opts.Location != "" &&
				!strings.Contains(strings.ToLower(raw.LocationName), strings.ToLower(opts.Location)) {
				continue
			}
			if _, dup := seen[raw.JobID]; dup {
				continue
			}
			seen[raw.JobID] = struct{}{}
			jobs = append(jobs, normalizeReedJob(raw, false))
		}

		fetched += len(resp.Results)
		if len(resp.Results) < take {
			break
		}
	}

	s.logger.Info("reed search completed",
		zap.String("query", query),
		zap.Int("unique_jobs", len(jobs)),
		zap.Int("total_available", totalFound))

	return &models.JobSearchResult{
		Count:          totalFound,
		Page:           page,
		ResultsPerPage: perPage,
		Jobs:           jobs,
	}, nil
}

func (s *jobService) Details(ctx context.Context, jobID string) (*models.Job, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("API Key missing. Please set REED_API_KEY in environment variables")
	}

	var raw reedJob
	if err := s.get(ctx, "/jobs/"+url.PathEscape(jobID), &raw); err != nil {
		return nil, err
	}

	job := normalizeReedJob(raw, true)
	return &job, nil
}

func (s *jobService) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	// Reed uses basic auth with the API key as username and no password.
	credentials := base64.StdEncoding.EncodeToString([]byte(s.apiKey + ":"))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("reed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Reed API Error: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode reed response: %w", err)
	}
	return nil
}

func setBoolParam(params url.Values, name string, value *bool) {
	if value != nil {
		params.Set(name, strconv.FormatBool(*value))
	}
}

func normalizeReedJob(raw reedJob, fullDetails bool) models.Job {
	contractTime := "Unknown"
	switch {
	case raw.FullTime && raw.PartTime:
		contractTime = "Full Time / Part Time"
	case raw.FullTime:
		contractTime = "Full Time"
	case raw.PartTime:
		contractTime = "Part Time"
	}

	title := raw.JobTitle
	if title == "" {
		title = "Unknown Title"
	}
	company := raw.EmployerName
	if company == "" {
		company = "Unknown Company"
	}
	location := raw.LocationName
	if location == "" {
		location = "Unknown Location"
	}

	job := models.Job{
		ID:             strconv.FormatInt(raw.JobID, 10),
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    raw.JobDescription,
		SalaryMin:      raw.MinimumSalary,
		SalaryMax:      raw.MaximumSalary,
		SalaryDisplay:  formatSalary(raw.MinimumSalary, raw.MaximumSalary),
		ContractType:   raw.ContractType,
		ContractTime:   contractTime,
		Category:       raw.JobType,
		RedirectURL:    raw.JobURL,
		Created:        isoDate(raw.Date),
		DateDisplay:    raw.Date,
		ExpirationDate: raw.ExpirationDate,
		PostedBy:       raw.EmployerName,
		Source:         "Reed.co.uk",
	}

	if fullDetails {
		job.Applications = raw.Applications
		job.EmployerProfileURL = raw.EmployerProfileURL
	}
	return job
}

// isoDate converts Reed's DD/MM/YYYY dates to ISO form, passing anything
// unrecognized through unchanged.
func isoDate(date string) string {
	if date == "" {
		return ""
	}
	if t, err := time.Parse("02/01/2006", date); err == nil {
		return t.Format("2006-01-02T15:04:05")
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("2006-01-02T15:04:05")
	}
	return date
}

// formatSalary renders a display string with a unit guessed from the
// magnitude. Values under 100 read as hourly rates, under 1000 daily,
// anything else annual.
func formatSalary(min, max *float64) string {
	unitFor := func(v float64) string {
		switch {
		case v < 100:
			return "per hour"
		case v < 1000:
			return "per day"
		default:
			return "per annum"
		}
	}
	money := func(v float64, unit string) string {
		if unit == "per hour" {
			return "£" + commaFormat(v, 2)
		}
		return "£" + commaFormat(v, 0)
	}

	switch {
	case min == nil && max == nil:
		return "Salary not specified"
	case min != nil && max != nil:
		unit := unitFor(*min)
		if *min == *max {
			return fmt.Sprintf("%s %s", money(*min, unit), unit)
		}
		return fmt.Sprintf("%s - %s %s", money(*min, unit), money(*max, unit), unit)
	case min != nil:
		unit := unitFor(*min)
		return fmt.Sprintf("From £%s %s", commaFormat(*min, 0), unit)
	default:
		unit := unitFor(*max)
		return fmt.Sprintf("Up to £%s %s", commaFormat(*max, 0), unit)
	}
}

// commaFormat renders v with thousands separators and the given number of
// decimal places.
func commaFormat(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intPart := s
	frac := ""
	if i := strings.Index(s, "."); i != -1 {
		intPart, frac = s[:i], s[i:]
	}

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	var sb strings.Builder
	n := len(intPart)
	for i, r := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + frac
}
