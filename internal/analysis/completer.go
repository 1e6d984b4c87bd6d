package analysis

import (
	"context"
	"fmt"
)

// CompletionRequest is a single system+user exchange with a text-completion service.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer sends one completion request and returns the raw reply text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// UpstreamError is a non-success reply from the completion service.
type UpstreamError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("completion service returned HTTP %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("completion service returned HTTP %d: %s", e.StatusCode, e.Message)
}
