package models

import "errors"

// Sentinel errors shared across services and handlers. Wrap with
// fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	// Extraction layer.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyInput        = errors.New("empty file received")
	ErrFileTooLarge      = errors.New("file too large")
	ErrDecode            = errors.New("file is not valid UTF-8 text")

	// Oracle layer.
	ErrNotConfigured     = errors.New("AI service not configured. Set GITHUB_TOKEN environment variable")
	ErrAuth              = errors.New("invalid API token. Please check your GITHUB_TOKEN")
	ErrOracleUnavailable = errors.New("server is busy due to high demand. Please try again later")
	ErrMalformedOutput   = errors.New("failed to parse AI response as JSON")
	ErrInvalidCV         = errors.New("the provided document does not appear to be a CV or Resume. Please upload a valid CV or Resume")

	// Store layer.
	ErrNotFound = errors.New("CV not found or expired. Please upload again")
)
