package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when no job matches the given ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJobID is returned when a job is created with an ID already in the store.
	ErrDuplicateJobID = errors.New("job id already exists")

	// ErrAnalysisNotConfigured is returned when the completion service has no credential.
	ErrAnalysisNotConfigured = errors.New("OpenAI API key is not configured. Please add your API key to continue.")

	// ErrAnalysisQuotaExceeded is returned when the completion account is out of quota.
	ErrAnalysisQuotaExceeded = errors.New("OpenAI API quota exceeded. Please check your OpenAI account.")

	// ErrAnalysisRateLimited is returned when the completion service throttles us.
	ErrAnalysisRateLimited = errors.New("Rate limit exceeded. Please wait a moment and try again.")

	// ErrAnalysisFailed is the generic, retryable analysis failure.
	ErrAnalysisFailed = errors.New("Failed to analyze job description. Please try again.")

	// ErrInvalidAnalysisFormat is returned when a reply is valid JSON but lacks
	// a summary string or a keySkills list.
	ErrInvalidAnalysisFormat = errors.New("invalid response format from completion service")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// IsAuthorizationError reports whether err means the deployment lacks a credential.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrAnalysisNotConfigured)
}
